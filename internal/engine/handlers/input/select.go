package input

import (
	"photocrop-server/internal/engine/handlers"
	"photocrop-server/pkg/api"
)

func HandleSelect(ctx handlers.Context, p api.SelectPayload) (handlers.Result, error) {
	if p.Index != nil {
		return handlers.EmptyResult(), ctx.Session.SelectIndex(*p.Index)
	}
	return handlers.EmptyResult(), ctx.Session.Select(p.Delta)
}
