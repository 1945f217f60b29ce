package domain

// Правила прогона
const (
	// MaxConsecutiveFailures - сколько тиков подряд без движения терпит сущность до отписки
	MaxConsecutiveFailures = 2
)
