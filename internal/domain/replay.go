package domain

import "encoding/json"

// ReplayAction - это запись одной команды ввода от игрока
type ReplayAction struct {
	Seq     int             `json:"seq"`
	Token   string          `json:"token"`   // Кто сделал
	Action  InputAction     `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - полная запись прохождения уровня
type ReplaySession struct {
	World       World          `json:"world"`
	LevelNumber int            `json:"levelNumber"`
	Seed        int64          `json:"seed"` // Зерно для RandomEntity-целей
	Timestamp   int64          `json:"timestamp"`
	Actions     []ReplayAction `json:"actions"`
}
