package input

import "photocrop-server/internal/engine/handlers"

func HandleReset(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Session.Reset(); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.Result{Msg: "Уровень перезапущен.", MsgType: "INFO"}, nil
}
