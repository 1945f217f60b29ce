package agent

import (
	"context"
	"encoding/json"

	"photocrop-server/internal/domain"
	"photocrop-server/internal/engine"
	"photocrop-server/pkg/api"
	"photocrop-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Он подписывается на рассылку сервиса так же, как обычный клиент,
// и на каждый снимок стадии BUILDING отвечает одной командой.
//
// Жизненный цикл:
//  1. NewBot -> Регистрация в хабе сервера, получение личного канала (Inbox).
//  2. Run -> Запуск в отдельной горутине, слушает свой Inbox.
//  3. На снимок стройки вызывается makeMove: PLACE, SELECT, ROTATE или START.
//  4. После RESULT бот отписывается и завершается.
type Bot struct {
	Token   string
	Service *engine.GameService
	Inbox   chan api.ServerResponse

	stage  string // стадия из последнего снимка
	forced bool   // START после отказа уже отправлен

	log *logrus.Entry
}

func NewBot(token string, service *engine.GameService) *Bot {
	b := &Bot{
		Token:   token,
		Service: service,
		// Бот регистрируется в хабе как обычный клиент и получает свой канал для обновлений.
		Inbox: service.Hub.Register(token),
		log:   logger.For("bot").WithField("token", token),
	}
	b.log.Info("Agent created")
	return b
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Service.Hub.Unregister(b.Token, b.Inbox)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-b.Inbox:
			if !ok {
				return
			}
			switch {
			case event.Type == api.MsgResult:
				b.log.WithField("completed", event.Result != nil && event.Result.Completed).Info("Agent finished")
				return
			case event.Type == api.MsgError:
				// Сервер отклонил ход: дальше угадывать бессмысленно
				if b.stage == "BUILDING" && !b.forced {
					b.forced = true
					b.send(domain.InputStart, nil)
				}
			default:
				b.stage = event.Stage
				if event.Stage == "BUILDING" {
					b.makeMove(event)
				}
			}
		}
	}
}

// makeMove выбирает одну команду по снимку лунки
func (b *Bot) makeMove(state api.ServerResponse) {
	if state.Grid == nil || len(state.Shapes) == 0 {
		b.send(domain.InputStart, nil)
		return
	}

	grid, err := buildLocalGrid(state)
	if err != nil {
		b.log.WithError(err).Warn("Bad snapshot, forcing start")
		b.send(domain.InputStart, nil)
		return
	}

	// 1. Текущая фигура как есть
	current := state.Current
	if current < 0 || current >= len(state.Shapes) {
		current = 0
	}
	if anchor, ok := findAnchor(grid, state.Shapes[current], 0); ok {
		b.send(domain.InputPlace, api.PositionPayload{X: anchor.X, Y: anchor.Y})
		return
	}

	// 2. Другая фигура, которая влезает без поворота
	for i, view := range state.Shapes {
		if i == current {
			continue
		}
		if _, ok := findAnchor(grid, view, 0); ok {
			index := i
			b.send(domain.InputSelect, api.SelectPayload{Index: &index})
			return
		}
	}

	// 3. Поворот текущей. Следующий снимок придет уже с повернутой фигурой.
	for turns := 1; turns < 4; turns++ {
		if _, ok := findAnchor(grid, state.Shapes[current], turns); ok {
			b.send(domain.InputRotate, nil)
			return
		}
	}

	b.send(domain.InputStart, nil)
}

// buildLocalGrid восстанавливает содержимое лунки из DTO
func buildLocalGrid(state api.ServerResponse) (*domain.Grid, error) {
	grid := domain.NewGrid(state.Grid.Width, state.Grid.Height)
	for _, tv := range state.Map {
		content, err := domain.ParseContentType(tv.Content)
		if err != nil {
			return nil, err
		}
		if err := grid.SetContent(domain.Position{X: tv.X, Y: tv.Y}, content); err != nil {
			return nil, err
		}
	}
	return grid, nil
}

// buildLocalShape восстанавливает фигуру и поворачивает ее turns раз по часовой
func buildLocalShape(view api.ShapeView, turns int) (*domain.Shape, error) {
	shape := domain.NewShape(view.Size)
	for _, tv := range view.Cells {
		content, err := domain.ParseContentType(tv.Content)
		if err != nil {
			return nil, err
		}
		if err := shape.Set(domain.Position{X: tv.X, Y: tv.Y}, content); err != nil {
			return nil, err
		}
	}
	for i := 0; i < turns; i++ {
		domain.RotateClockwise(shape)
	}
	return shape, nil
}

// findAnchor ищет первую точку привязки снизу вверх, слева направо
func findAnchor(grid *domain.Grid, view api.ShapeView, turns int) (domain.Position, bool) {
	shape, err := buildLocalShape(view, turns)
	if err != nil {
		return domain.Position{}, false
	}
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			anchor := domain.Position{X: x, Y: y}
			// Проба на копии: TryPlaceShape меняет сетку при успехе
			if domain.TryPlaceShape(grid.Clone(), shape, anchor) {
				return anchor, true
			}
		}
	}
	return domain.Position{}, false
}

// --- Хелперы для отправки команд на сервер ---

func (b *Bot) send(action domain.InputAction, payload interface{}) {
	cmd := api.ClientCommand{Action: action.String(), Token: b.Token}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			b.log.WithError(err).Error("Error marshalling payload")
			return
		}
		cmd.Payload = raw
	}
	if err := b.Service.ProcessCommand(cmd); err != nil {
		b.log.WithError(err).Warn("Command rejected")
	}
}
