package systems

import (
	"testing"

	"photocrop-server/internal/domain"
)

func TestExecuteMovement(t *testing.T) {
	t.Run("Range limits steps per tick", func(t *testing.T) {
		g := createTestGrid(6, 1, domain.ContentWhite)
		mover := newMover(g, t, domain.Position{X: 0, Y: 0}, func(e *domain.CellEntity) {
			e.MovementRange = 2
		})

		path := PlanPath(g, mover, domain.Position{X: 5, Y: 0})
		res := ExecuteMovement(g, mover, path)

		if res.To != (domain.Position{X: 2, Y: 0}) || mover.Pos != res.To {
			t.Errorf("expected mover at (2,0), got %v", mover.Pos)
		}
		if len(g.EntitiesAt(domain.Position{X: 0, Y: 0})) != 0 {
			t.Error("old cell still holds the mover")
		}
		if len(g.EntitiesAt(res.To)) != 1 {
			t.Error("new cell does not hold the mover")
		}
	})

	t.Run("Stops before direction change", func(t *testing.T) {
		g := createTestGrid(5, 5, domain.ContentWhite)
		mover := newMover(g, t, domain.Position{X: 0, Y: 0}, func(e *domain.CellEntity) {
			e.CanChangeDirection = false
		})

		path := PlanPath(g, mover, domain.Position{X: 3, Y: 4})
		res := ExecuteMovement(g, mover, path)

		if !res.StoppedByTurn {
			t.Error("expected movement to stop at the turn")
		}
		if runs := runCount(t, res.From, res.Steps); runs != 1 {
			t.Errorf("expected a single straight run, got %v", res.Steps)
		}
		if mover.Pos == (domain.Position{X: 3, Y: 4}) {
			t.Error("mover should not reach target in one tick")
		}
	})

	t.Run("Combat mover evicts removable occupant", func(t *testing.T) {
		g := createTestGrid(3, 1, domain.ContentWhite)
		mover := newMover(g, t, domain.Position{X: 0, Y: 0}, func(e *domain.CellEntity) {
			e.Action = domain.ActionAttackToTarget
		})
		victim := newMover(g, t, domain.Position{X: 1, Y: 0}, func(e *domain.CellEntity) {
			e.Name = "victim"
			e.Kind = domain.KindStationary
			e.CanBeRemoved = true
		})

		res := ExecuteMovement(g, mover, Path{Steps: []domain.Position{{X: 1, Y: 0}, {X: 2, Y: 0}}})

		if len(res.Evicted) != 1 || res.Evicted[0] != victim {
			t.Fatalf("expected victim evicted, got %v", res.Evicted)
		}
		if !victim.Removed {
			t.Error("victim not flagged removed")
		}
		if len(g.EntitiesAt(domain.Position{X: 1, Y: 0})) != 0 {
			t.Error("victim still on the grid")
		}
		if mover.Pos != (domain.Position{X: 2, Y: 0}) {
			t.Errorf("mover at %v", mover.Pos)
		}
	})

	t.Run("Shareable occupant coexists", func(t *testing.T) {
		g := createTestGrid(2, 1, domain.ContentWhite)
		mover := newMover(g, t, domain.Position{X: 0, Y: 0}, nil)
		newMover(g, t, domain.Position{X: 1, Y: 0}, func(e *domain.CellEntity) {
			e.Name = "ghost"
			e.CanSharePosition = true
		})

		res := ExecuteMovement(g, mover, Path{Steps: []domain.Position{{X: 1, Y: 0}}})
		if !res.HasMoved() || len(g.EntitiesAt(domain.Position{X: 1, Y: 0})) != 2 {
			t.Errorf("expected both entities in (1,0), got %d", len(g.EntitiesAt(domain.Position{X: 1, Y: 0})))
		}
	})
}
