package handlers

import (
	"encoding/json"

	"photocrop-server/internal/domain"
	"photocrop-server/internal/systems"
)

// Session описывает игровую сессию уровня, которой управляют команды ввода.
// engine.Level неявно реализует этот интерфейс.
type Session interface {
	Select(delta int) error
	SelectIndex(index int) error
	RotateCurrent() error
	PlaceCurrent(anchor domain.Position) error
	CropCurrent(anchor domain.Position, window systems.CropWindow) (domain.CropOutcome, error)
	Reset() error
	ReadyForSimulation() bool
}

// Context передает хендлеру состояние сессии.
type Context struct {
	Session Session
	Token   string // клиент, приславший команду
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string          // Текст лога
	MsgType string          // Тип лога (INFO, ERROR)
	Event   json.RawMessage // Сырые данные события для обработки движком
}

// HandlerFunc - это контракт для любой команды (PLACE, CROP, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// EventResult упаковывает событие для движка
func EventResult(event string, msg string) Result {
	raw, _ := json.Marshal(map[string]string{"event": event})
	return Result{Msg: msg, MsgType: "INFO", Event: raw}
}
