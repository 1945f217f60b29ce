package input

import "photocrop-server/internal/engine/handlers"

func HandleRotate(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EmptyResult(), ctx.Session.RotateCurrent()
}
