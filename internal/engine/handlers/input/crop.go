package input

import (
	"fmt"

	"photocrop-server/internal/domain"
	"photocrop-server/internal/engine/handlers"
	"photocrop-server/internal/systems"
	"photocrop-server/pkg/api"
)

func HandleCrop(ctx handlers.Context, p api.CropPayload) (handlers.Result, error) {
	window := systems.CropWindow{MinX: p.MinX, MaxX: p.MaxX, MinY: p.MinY, MaxY: p.MaxY}

	outcome, err := ctx.Session.CropCurrent(domain.Position{X: p.X, Y: p.Y}, window)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	msg := fmt.Sprintf("Обрезано фигур: %d, в лунке: %d, возвращено: %d.", outcome.Pieces, outcome.Placed, outcome.Returned)
	return afterPlacement(ctx, msg)
}
