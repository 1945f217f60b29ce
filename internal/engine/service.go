package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"photocrop-server/internal/domain"
	"photocrop-server/internal/engine/handlers"
	"photocrop-server/internal/engine/handlers/input"
	"photocrop-server/internal/network"
	"photocrop-server/pkg/api"
	"photocrop-server/pkg/levels"
	"photocrop-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrReplayLevel   = errors.New("replay belongs to another level")
)

const maxPlaybackTicks = 10000

// ProgressRecorder хранит выполненные цели уровня.
type ProgressRecorder interface {
	Load(world domain.World, number int) (domain.LevelProgress, error)
	Record(result domain.LevelResult) (domain.LevelProgress, error)
}

// ReplayStore сохраняет записанные сессии.
type ReplayStore interface {
	Save(session *domain.ReplaySession) (string, error)
}

// GameService ведет одну сессию уровня: принимает команды ввода,
// гоняет симуляцию и рассылает снимки подписчикам.
type GameService struct {
	mu sync.RWMutex

	cfg      Config
	level    *Level
	sim      *Simulation
	rng      *rand.Rand
	interval time.Duration
	result   *domain.LevelResult

	Logs []api.LogEntry

	CommandChan chan domain.InternalCommand
	Hub         *network.Broadcaster

	// Необязательные хранилища
	Progress ProgressRecorder
	Replays  ReplayStore

	replay    *domain.ReplaySession
	recording bool
	lastState *api.ServerResponse

	handlers map[domain.InputAction]handlers.HandlerFunc
	log      *logrus.Entry
}

func NewService(cfg Config, data *levels.LevelData) (*GameService, error) {
	level, err := NewLevel(data)
	if err != nil {
		return nil, err
	}

	interval := cfg.TickInterval
	if data.TickIntervalMs > 0 {
		interval = time.Duration(data.TickIntervalMs) * time.Millisecond
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	s := &GameService{
		cfg:         cfg,
		level:       level,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		interval:    interval,
		Logs:        []api.LogEntry{},
		CommandChan: make(chan domain.InternalCommand, 100),
		Hub:         network.NewBroadcaster(),
		handlers:    make(map[domain.InputAction]handlers.HandlerFunc),
		recording:   true,
		log: logger.For("service").WithFields(logrus.Fields{
			"world": data.World.String(),
			"level": data.Number,
		}),
	}
	s.replay = s.newReplaySession()

	s.registerHandlers()
	return s, nil
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.InputInit] = handlers.WithEmptyPayload(input.HandleInit)
	s.handlers[domain.InputSelect] = handlers.WithPayload(input.HandleSelect)
	s.handlers[domain.InputRotate] = handlers.WithEmptyPayload(input.HandleRotate)
	s.handlers[domain.InputPlace] = handlers.WithPayload(input.HandlePlace)
	s.handlers[domain.InputCrop] = handlers.WithPayload(input.HandleCrop)
	s.handlers[domain.InputStart] = handlers.WithEmptyPayload(input.HandleStart)
	s.handlers[domain.InputReset] = handlers.WithEmptyPayload(input.HandleReset)
}

func (s *GameService) newReplaySession() *domain.ReplaySession {
	data := s.level.Data()
	return &domain.ReplaySession{
		World:       data.World,
		LevelNumber: data.Number,
		Seed:        s.cfg.Seed,
		Timestamp:   time.Now().Unix(),
		Actions:     make([]domain.ReplayAction, 0),
	}
}

// Interval - пауза между тиками симуляции
func (s *GameService) Interval() time.Duration { return s.interval }

// ProcessCommand принимает команду от внешнего мира (WebSocket)
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) error {
	action := domain.ParseInput(externalCmd.Action)
	if action == domain.InputUnknown {
		s.log.WithField("action", externalCmd.Action).Warn("Unknown action")
		return fmt.Errorf("%w: %s", ErrUnknownAction, externalCmd.Action)
	}

	s.CommandChan <- domain.InternalCommand{
		Action:  action,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}
	return nil
}

// Run - цикл сессии: команды из CommandChan и тики симуляции по таймеру.
func (s *GameService) Run(ctx context.Context) error {
	s.log.WithField("interval", s.interval).Info("Session loop started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.mu.Lock()
	s.publishUpdate(api.MsgUpdate, nil)
	s.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Session loop stopped")
			return ctx.Err()
		case cmd := <-s.CommandChan:
			_ = s.Execute(cmd)
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Execute применяет команду синхронно. Ошибка уходит отправителю как ERROR.
func (s *GameService) Execute(cmd domain.InternalCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.execute(cmd)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"action": cmd.Action.String(),
			"token":  cmd.Token,
		}).WithError(err).Warn("Command rejected")
		s.Hub.SendTo(cmd.Token, s.errorResponse(err))
		return err
	}

	s.publishUpdate(api.MsgUpdate, nil)
	return nil
}

func (s *GameService) execute(cmd domain.InternalCommand) error {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, cmd.Action.String())
	}

	ctx := handlers.Context{Session: s.level, Token: cmd.Token}
	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		return err
	}

	if cmd.Action == domain.InputReset {
		s.sim = nil
		s.result = nil
	}
	if len(result.Event) > 0 {
		if err := s.processEvent(result.Event); err != nil {
			return err
		}
	}

	if s.recording && cmd.Action.IsRecorded() {
		s.replay.Actions = append(s.replay.Actions, domain.ReplayAction{
			Seq:     len(s.replay.Actions) + 1,
			Token:   cmd.Token,
			Action:  cmd.Action,
			Payload: cmd.Payload,
		})
	}
	if result.Msg != "" {
		s.AddLog(result.Msg, result.MsgType)
	}
	return nil
}

// Tick продвигает симуляцию на один тик. Возвращает false, если симуляции нет.
func (s *GameService) Tick(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick(ctx)
}

func (s *GameService) tick(ctx context.Context) bool {
	if s.sim == nil || s.level.Stage() != StageSimulating {
		return false
	}

	report, ok := s.sim.Step(ctx)
	if ok {
		s.publishUpdate(api.MsgTick, &report)
	}
	if !s.sim.Running() {
		s.finish()
	}
	return true
}

// finish подводит итог, сохраняет прогресс и реплей.
func (s *GameService) finish() {
	result := s.level.Finish(s.priorProgress())
	s.result = &result

	if result.Completed {
		s.AddLog("Уровень пройден!", "SIMULATION")
	} else {
		s.AddLog("Уровень не пройден.", "SIMULATION")
	}

	if s.Progress != nil {
		if _, err := s.Progress.Record(result); err != nil {
			s.log.WithError(err).Error("Failed to save progress")
		}
	}
	if s.Replays != nil && s.recording {
		path, err := s.Replays.Save(s.replay)
		if err != nil {
			s.log.WithError(err).Error("Failed to save replay")
		} else {
			s.log.WithField("path", path).Info("Replay saved")
		}
	}

	s.publishUpdate(api.MsgResult, nil)
}

// priorProgress - прогресс прошлых прохождений. Реплей от него не зависит.
func (s *GameService) priorProgress() domain.LevelProgress {
	data := s.level.Data()
	empty := domain.LevelProgress{World: data.World, LevelNumber: data.Number}
	if s.Progress == nil || !s.recording {
		return empty
	}
	p, err := s.Progress.Load(data.World, data.Number)
	if err != nil {
		s.log.WithError(err).Warn("Failed to load progress")
		return empty
	}
	return p
}

// Playback прогоняет записанную сессию без пауз и возвращает итог.
// Сервис должен быть создан для того же уровня и с тем же Seed.
func (s *GameService) Playback(ctx context.Context, session *domain.ReplaySession) (*domain.LevelResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.level.Data()
	if session.World != data.World || session.LevelNumber != data.Number {
		return nil, fmt.Errorf("%w: %s %d", ErrReplayLevel, session.World.String(), session.LevelNumber)
	}

	s.recording = false
	defer func() { s.recording = true }()

	for _, act := range session.Actions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := s.execute(domain.InternalCommand{Action: act.Action, Token: act.Token, Payload: act.Payload})
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"seq":    act.Seq,
				"action": act.Action.String(),
			}).WithError(err).Warn("Replay command rejected")
		}
		for ticks := 0; s.tick(ctx); ticks++ {
			if ticks >= maxPlaybackTicks {
				return nil, fmt.Errorf("replay did not finish within %d ticks", maxPlaybackTicks)
			}
		}
	}

	if s.result == nil {
		return nil, fmt.Errorf("replay ended before the simulation finished")
	}
	result := *s.result
	return &result, nil
}

// --- Снимки для отладки и клиентов ---

// Snapshot возвращает текущий снимок сессии.
func (s *GameService) Snapshot() api.ServerResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.buildState(api.MsgUpdate, nil)
}

// LastState - последний разосланный снимок (nil до первой рассылки)
func (s *GameService) LastState() *api.ServerResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastState
}

// Result - итог уровня или nil, если симуляция не завершена
func (s *GameService) Result() *domain.LevelResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

// ReplaySession возвращает копию записанной сессии.
func (s *GameService) ReplaySession() domain.ReplaySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := *s.replay
	r.Actions = append([]domain.ReplayAction(nil), s.replay.Actions...)
	return r
}

// DebugLevel - сводка уровня для /debug/level
func (s *GameService) DebugLevel() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := s.level.Data()
	return map[string]interface{}{
		"world":      data.World.String(),
		"level":      data.Number,
		"name":       data.Name,
		"stage":      s.level.Stage().String(),
		"anchor":     s.level.Anchor(),
		"current":    s.level.CurrentIndex(),
		"shapesLeft": len(s.level.Shapes()),
		"emptyCells": s.level.Grid().EmptyCount(),
		"stats":      s.level.Stats(),
		"seed":       s.cfg.Seed,
		"interval":   s.interval.String(),
		"replayLen":  len(s.replay.Actions),
		"result":     s.result,
	}
}

// DebugEntities - все сущности уровня, включая вытесненных
func (s *GameService) DebugEntities() []api.EntityView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]api.EntityView, 0, len(s.level.Roster()))
	for _, e := range s.level.Roster() {
		out = append(out, toEntityView(e))
	}
	return out
}

// DebugScheduler - состояние планировщика (пусто до старта симуляции)
func (s *GameService) DebugScheduler() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.sim == nil {
		return map[string]interface{}{"running": false}
	}
	return s.sim.Scheduler().DebugDump()
}
