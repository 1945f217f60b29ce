package engine

import (
	"context"
	"math/rand"
	"time"

	"photocrop-server/internal/domain"
	"photocrop-server/internal/systems"
	"photocrop-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TickContext is what a tick handler may touch.
type TickContext struct {
	Grid      *domain.Grid
	Roster    []*domain.CellEntity
	Scheduler *Scheduler
	Rng       *rand.Rand
	Report    *domain.TickReport
}

// TickHandler performs one entity action for the current tick.
type TickHandler func(tc *TickContext, sub Subscriber)

// Simulation drives grid entities through the scheduler.
type Simulation struct {
	grid      *domain.Grid
	roster    []*domain.CellEntity
	scheduler *Scheduler
	rng       *rand.Rand
	handlers  map[domain.ActionType]TickHandler

	report *domain.TickReport
	log    *logrus.Entry
}

// NewSimulation creates a simulation over a grid and its entity roster.
func NewSimulation(grid *domain.Grid, roster []*domain.CellEntity, rng *rand.Rand, interval time.Duration) *Simulation {
	sim := &Simulation{
		grid:   grid,
		roster: roster,
		rng:    rng,
		log:    logger.For("simulation"),
	}
	sim.scheduler = NewScheduler(interval, sim.dispatch)
	sim.handlers = map[domain.ActionType]TickHandler{
		domain.ActionMoveToTarget:   sim.handleMoveToTarget,
		domain.ActionAttackToTarget: sim.handleAttackToTarget,
	}
	return sim
}

// Scheduler exposes the underlying scheduler.
func (sim *Simulation) Scheduler() *Scheduler { return sim.scheduler }

// Running reports whether ticks are being produced.
func (sim *Simulation) Running() bool { return sim.scheduler.IsRunning() }

// Begin subscribes every live entity with an action and starts ticking.
// It returns the number of subscribed entities.
func (sim *Simulation) Begin() int {
	count := 0
	for _, e := range sim.roster {
		if e.Removed || e.Action == domain.ActionNone {
			continue
		}
		e.FailureCount = 0
		sim.scheduler.Subscribe(e, e.Action, e.TickOrder, e.TickCategory)
		count++
	}
	sim.scheduler.StartTicking()
	sim.log.WithField("entities", count).Info("Simulation started")
	return count
}

// Stop halts the scheduler.
func (sim *Simulation) Stop() {
	sim.scheduler.StopTicking()
}

// Step runs one tick and returns what changed. ok is false when no tick ran.
func (sim *Simulation) Step(ctx context.Context) (report domain.TickReport, ok bool) {
	sim.report = &domain.TickReport{Tick: sim.scheduler.TickCount() + 1}
	ok = sim.scheduler.Step(ctx)
	report = *sim.report
	sim.report = nil

	if !ok {
		report.Tick = 0
	}
	report.SchedulerIdle = !sim.scheduler.IsRunning()
	return report, ok
}

func (sim *Simulation) tickContext() *TickContext {
	return &TickContext{
		Grid:      sim.grid,
		Roster:    sim.roster,
		Scheduler: sim.scheduler,
		Rng:       sim.rng,
		Report:    sim.report,
	}
}

func (sim *Simulation) dispatch(_ context.Context, sub Subscriber) {
	e := sub.Entity

	if e.Removed {
		sim.unsubscribe(sub, "removed")
		return
	}
	if e.FailureCount >= domain.MaxConsecutiveFailures {
		sim.unsubscribe(sub, "failure limit")
		return
	}

	handler, ok := sim.handlers[sub.Action]
	if !ok {
		sim.log.WithFields(logrus.Fields{
			"entity": e.ID.String(),
			"action": sub.Action.String(),
		}).Warn("No handler for action")
		sim.unsubscribe(sub, "no handler")
		return
	}

	handler(sim.tickContext(), sub)
}

func (sim *Simulation) handleMoveToTarget(tc *TickContext, sub Subscriber) {
	e := sub.Entity
	from := e.Pos

	choice := systems.SelectTarget(tc.Grid, e, tc.Roster, tc.Rng)
	if !choice.Found {
		sim.afterAction(tc, sub, from, nil)
		return
	}
	if e.Pos == choice.Goal {
		e.FailureCount = 0
		sim.unsubscribe(sub, "target reached")
		return
	}

	res := systems.ExecuteMovement(tc.Grid, e, choice.Path)
	sim.record(tc, e, res)
	sim.afterAction(tc, sub, from, &choice.Goal)
}

func (sim *Simulation) handleAttackToTarget(tc *TickContext, sub Subscriber) {
	e := sub.Entity
	from := e.Pos

	plan := systems.ResolveAttack(tc.Grid, e)
	if plan == nil {
		sim.handleMoveToTarget(tc, sub)
		return
	}

	res := systems.ExecuteAttack(tc.Grid, e, plan)
	sim.record(tc, e, res)
	sim.afterAction(tc, sub, from, nil)
}

// afterAction applies the failure rules. goal is nil when reaching a position does not end the action.
func (sim *Simulation) afterAction(tc *TickContext, sub Subscriber, from domain.Position, goal *domain.Position) {
	e := sub.Entity
	e.ActionsPerformed++

	if goal != nil && e.Pos == *goal {
		e.FailureCount = 0
		sim.unsubscribe(sub, "target reached")
		return
	}

	if e.Pos != from {
		e.FailureCount = 0
		return
	}

	e.FailureCount++
	if e.FailureCount >= domain.MaxConsecutiveFailures {
		sim.unsubscribe(sub, "failure limit")
	}
}

func (sim *Simulation) record(tc *TickContext, e *domain.CellEntity, res systems.MovementResult) {
	if res.HasMoved() && tc.Report != nil {
		tc.Report.Moves = append(tc.Report.Moves, domain.MoveEvent{
			EntityID: e.ID,
			From:     res.From,
			To:       res.To,
			Steps:    res.Steps,
		})
	}

	for _, victim := range res.Evicted {
		if tc.Report != nil {
			tc.Report.Evictions = append(tc.Report.Evictions, domain.EvictionEvent{
				EntityID: victim.ID,
				By:       e.ID,
				At:       victim.Pos,
			})
		}
		sim.log.WithFields(logrus.Fields{
			"entity": victim.ID.String(),
			"by":     e.ID.String(),
			"at":     victim.Pos,
		}).Info("Entity evicted")

		if victim.Action != domain.ActionNone {
			sim.unsubscribe(Subscriber{Entity: victim, Action: victim.Action, Category: victim.TickCategory}, "evicted")
		}
	}
}

func (sim *Simulation) unsubscribe(sub Subscriber, reason string) {
	sim.scheduler.Unsubscribe(sub.Entity, sub.Action, sub.Category)
	if sim.report != nil && !containsID(sim.report.Unsubscribed, sub.Entity.ID) {
		sim.report.Unsubscribed = append(sim.report.Unsubscribed, sub.Entity.ID)
	}

	sim.log.WithFields(logrus.Fields{
		"entity":  sub.Entity.ID.String(),
		"name":    sub.Entity.Name,
		"reason":  reason,
		"actions": sub.Entity.ActionsPerformed,
	}).Info("Entity unsubscribed")
}

func containsID(ids []domain.EntityID, id domain.EntityID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}
	return false
}
