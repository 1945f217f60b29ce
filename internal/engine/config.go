package engine

import "time"

// Config хранит параметры запуска движка
type Config struct {
	// Seed - зерно генератора для целей RandomEntity. Пишется в реплей.
	Seed int64
	// TickInterval - пауза между тиками, если уровень не задает свою.
	TickInterval time.Duration
	// Token - имя локального клиента для команд, пришедших не по сети (реплей, TUI).
	Token string
	// ReplayDir - каталог для .pcrp файлов завершенных сессий.
	ReplayDir string
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:         time.Now().UnixNano(),
		TickInterval: DefaultTickInterval,
		Token:        "local",
		ReplayDir:    "replays",
	}
}
