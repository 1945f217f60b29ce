package input

import "photocrop-server/internal/engine/handlers"

// EventForceStart - запуск симуляции с оставшимися фигурами
const EventForceStart = "FORCE_START"

func HandleStart(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EventResult(EventForceStart, "Симуляция запущена."), nil
}
