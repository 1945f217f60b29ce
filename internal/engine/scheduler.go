package engine

import (
	"context"
	"sort"
	"time"

	"photocrop-server/internal/domain"
	"photocrop-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// DefaultTickInterval is the pause between two scheduler ticks.
const DefaultTickInterval = 500 * time.Millisecond

// Subscriber is a scheduled (entity, action) pair.
type Subscriber struct {
	Entity   *domain.CellEntity
	Action   domain.ActionType
	Order    int
	Category domain.TickCategory
}

// TickFunc executes one subscriber's action.
type TickFunc func(ctx context.Context, sub Subscriber)

type pendingOp struct {
	subscribe bool
	sub       Subscriber
}

// Scheduler runs subscribed actions one tick at a time.
//
// Priority subscribers run one per tick in order, then insertion subscribers
// one per tick in FIFO order. When both lists are exhausted every simultaneous
// subscriber runs within a single tick and both cursors reset. A scheduler
// with no subscribers stops itself at the start of the next tick.
//
// Scheduler is not safe for concurrent use; it belongs to the loop that steps it.
type Scheduler struct {
	interval time.Duration
	dispatch TickFunc

	priority     []Subscriber
	insertion    []Subscriber
	simultaneous []Subscriber

	priorityCursor  int
	insertionCursor int

	running bool
	inTick  bool
	tick    int
	pending []pendingOp

	log *logrus.Entry
}

// NewScheduler creates an idle scheduler.
func NewScheduler(interval time.Duration, dispatch TickFunc) *Scheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Scheduler{
		interval: interval,
		dispatch: dispatch,
		log:      logger.For("scheduler"),
	}
}

// Interval returns the pause between ticks used by Run.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// SetInterval changes the tick interval.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// IsRunning reports whether the scheduler is ticking.
func (s *Scheduler) IsRunning() bool { return s.running }

// TickCount returns the number of ticks since StartTicking.
func (s *Scheduler) TickCount() int { return s.tick }

// Len returns the number of subscribers across all categories.
func (s *Scheduler) Len() int {
	return len(s.priority) + len(s.insertion) + len(s.simultaneous)
}

// Subscribe registers an action. Duplicates and nil entities are ignored.
// During a tick the change is buffered until the tick ends.
func (s *Scheduler) Subscribe(e *domain.CellEntity, action domain.ActionType, order int, category domain.TickCategory) {
	if e == nil {
		s.log.Warn("Subscribe called with nil entity")
		return
	}
	sub := Subscriber{Entity: e, Action: action, Order: order, Category: category}
	if s.inTick {
		s.pending = append(s.pending, pendingOp{subscribe: true, sub: sub})
		return
	}
	s.subscribeNow(sub)
}

// Unsubscribe removes the first matching action. Missing entries are ignored.
// During a tick the change is buffered until the tick ends.
func (s *Scheduler) Unsubscribe(e *domain.CellEntity, action domain.ActionType, category domain.TickCategory) {
	if e == nil {
		return
	}
	sub := Subscriber{Entity: e, Action: action, Category: category}
	if s.inTick {
		s.pending = append(s.pending, pendingOp{sub: sub})
		return
	}
	s.unsubscribeNow(sub)
}

// StartTicking moves the scheduler to Running.
func (s *Scheduler) StartTicking() {
	if s.running {
		s.log.Warn("StartTicking called while already running")
		return
	}
	s.running = true
	s.log.WithField("subscribers", s.Len()).Info("Scheduler started")
}

// StopTicking moves the scheduler to Idle and resets the tick counter and cursors.
func (s *Scheduler) StopTicking() {
	if !s.running {
		return
	}
	s.running = false
	s.log.WithField("ticks", s.tick).Info("Scheduler stopped")
	s.tick = 0
	s.priorityCursor = 0
	s.insertionCursor = 0
}

// Step runs a single tick. It returns false when the scheduler is idle
// or stopped itself because no subscribers remain.
func (s *Scheduler) Step(ctx context.Context) bool {
	if !s.running {
		return false
	}
	if s.Len() == 0 {
		s.StopTicking()
		return false
	}

	s.inTick = true
	switch {
	case s.priorityCursor < len(s.priority):
		sub := s.priority[s.priorityCursor]
		s.priorityCursor++
		s.run(ctx, sub)

	case s.insertionCursor < len(s.insertion):
		sub := s.insertion[s.insertionCursor]
		s.insertionCursor++
		s.run(ctx, sub)

	case len(s.simultaneous) > 0:
		batch := append([]Subscriber(nil), s.simultaneous...)
		for _, sub := range batch {
			s.run(ctx, sub)
		}
		s.priorityCursor = 0
		s.insertionCursor = 0

	default:
		// Round finished without simultaneous subscribers
		s.priorityCursor = 0
		s.insertionCursor = 0
		if len(s.priority) > 0 {
			s.priorityCursor = 1
			s.run(ctx, s.priority[0])
		} else {
			s.insertionCursor = 1
			s.run(ctx, s.insertion[0])
		}
	}
	s.inTick = false

	s.tick++
	s.flush()
	return true
}

// Run steps the scheduler until it goes idle or ctx is cancelled,
// waiting the interval between ticks.
func (s *Scheduler) Run(ctx context.Context) error {
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		if !s.Step(ctx) {
			return nil
		}

		timer.Reset(s.interval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// DebugDump returns a snapshot of the subscriber lists.
func (s *Scheduler) DebugDump() map[string]interface{} {
	dump := func(list []Subscriber) []map[string]interface{} {
		result := make([]map[string]interface{}, 0, len(list))
		for _, sub := range list {
			result = append(result, map[string]interface{}{
				"id":     sub.Entity.ID,
				"name":   sub.Entity.Name,
				"action": sub.Action.String(),
				"order":  sub.Order,
			})
		}
		return result
	}

	return map[string]interface{}{
		"running":         s.running,
		"tick":            s.tick,
		"priorityCursor":  s.priorityCursor,
		"insertionCursor": s.insertionCursor,
		"priority":        dump(s.priority),
		"insertion":       dump(s.insertion),
		"simultaneous":    dump(s.simultaneous),
	}
}

func (s *Scheduler) run(ctx context.Context, sub Subscriber) {
	if s.dispatch != nil {
		s.dispatch(ctx, sub)
	}
}

func (s *Scheduler) flush() {
	ops := s.pending
	s.pending = nil
	for _, op := range ops {
		if op.subscribe {
			s.subscribeNow(op.sub)
		} else {
			s.unsubscribeNow(op.sub)
		}
	}
}

func (s *Scheduler) list(category domain.TickCategory) (*[]Subscriber, *int) {
	switch category {
	case domain.TickPriority:
		return &s.priority, &s.priorityCursor
	case domain.TickSimultaneous:
		return &s.simultaneous, nil
	default:
		return &s.insertion, &s.insertionCursor
	}
}

func indexOf(list []Subscriber, e *domain.CellEntity, action domain.ActionType) int {
	for i, sub := range list {
		if sub.Entity == e && sub.Action == action {
			return i
		}
	}
	return -1
}

func (s *Scheduler) subscribeNow(sub Subscriber) {
	list, cursor := s.list(sub.Category)
	if indexOf(*list, sub.Entity, sub.Action) >= 0 {
		return
	}

	pos := len(*list)
	if sub.Category == domain.TickPriority {
		// Stable: after every entry with order <= sub.Order
		pos = sort.Search(len(*list), func(i int) bool { return (*list)[i].Order > sub.Order })
	}

	*list = append(*list, Subscriber{})
	copy((*list)[pos+1:], (*list)[pos:])
	(*list)[pos] = sub

	if cursor != nil && pos < *cursor {
		*cursor++
	}
}

func (s *Scheduler) unsubscribeNow(sub Subscriber) {
	list, cursor := s.list(sub.Category)
	idx := indexOf(*list, sub.Entity, sub.Action)
	if idx < 0 {
		return
	}

	*list = append((*list)[:idx], (*list)[idx+1:]...)
	if cursor != nil && idx < *cursor {
		*cursor--
	}
}
