package systems

import (
	"testing"

	"photocrop-server/internal/domain"
)

// createTestGrid creates a grid fully filled with the given content.
func createTestGrid(w, h int, content domain.ContentType) *domain.Grid {
	g := domain.NewGrid(w, h)
	for i := range g.Cells {
		g.Cells[i].Content = content
	}
	return g
}

func newMover(g *domain.Grid, t *testing.T, pos domain.Position, mutate func(e *domain.CellEntity)) *domain.CellEntity {
	t.Helper()
	e := &domain.CellEntity{
		Name:               "mover",
		Kind:               domain.KindMoving,
		Group:              domain.GroupPlayerA,
		MoveDirections:     domain.OrthogonalDirections,
		AttackDirections:   domain.OrthogonalDirections,
		MovementRange:      10,
		CanChangeDirection: true,
		Action:             domain.ActionMoveToTarget,
	}
	if mutate != nil {
		mutate(e)
	}
	if err := g.PlaceEntity(e, pos); err != nil {
		t.Fatalf("place %s: %v", e.Name, err)
	}
	return e
}

// runCount counts maximal straight runs in a step sequence.
func runCount(t *testing.T, start domain.Position, steps []domain.Position) int {
	t.Helper()
	runs := 0
	prev := start
	var last domain.Direction
	for i, s := range steps {
		dir, ok := prev.DirectionTo(s)
		if !ok {
			t.Fatalf("step %d %v -> %v is not a unit step", i, prev, s)
		}
		if i == 0 || dir != last {
			runs++
		}
		last = dir
		prev = s
	}
	return runs
}
