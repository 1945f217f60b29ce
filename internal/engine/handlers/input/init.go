package input

import "photocrop-server/internal/engine/handlers"

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Сессия подключена.",
		MsgType: "INFO",
	}, nil
}
