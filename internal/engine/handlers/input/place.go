package input

import (
	"photocrop-server/internal/domain"
	"photocrop-server/internal/engine/handlers"
	"photocrop-server/pkg/api"
)

// EventSimulationReady - лунка готова, движок запускает симуляцию
const EventSimulationReady = "SIMULATION_READY"

func HandlePlace(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	if err := ctx.Session.PlaceCurrent(domain.Position{X: p.X, Y: p.Y}); err != nil {
		return handlers.EmptyResult(), err
	}
	return afterPlacement(ctx, "Фигура установлена.")
}

// afterPlacement сообщает движку, что пора запускать симуляцию
func afterPlacement(ctx handlers.Context, msg string) (handlers.Result, error) {
	if ctx.Session.ReadyForSimulation() {
		return handlers.EventResult(EventSimulationReady, msg), nil
	}
	return handlers.Result{Msg: msg, MsgType: "INFO"}, nil
}
