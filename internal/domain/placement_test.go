package domain

import "testing"

func TestTryPlaceShape_Success(t *testing.T) {
	g := createTestGrid(4, 4)
	s := shapeFromRows(t,
		".R.",
		"RRR",
		"...",
	)
	rider := &CellEntity{ID: 1}
	_ = s.AttachEntity(rider, Position{X: 0, Y: 1})

	if !TryPlaceShape(g, s, Position{X: 1, Y: 1}) {
		t.Fatal("placement should succeed")
	}

	for _, p := range []Position{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}} {
		if g.At(p).Content != ContentRed {
			t.Errorf("cell %v should be red", p)
		}
	}
	if g.EmptyCount() != 12 {
		t.Errorf("EmptyCount = %d, want 12", g.EmptyCount())
	}
	if rider.Pos != (Position{X: 1, Y: 2}) {
		t.Errorf("rider should land at (1,2), got %v", rider.Pos)
	}
	if got := g.EntitiesAt(Position{X: 1, Y: 2}); len(got) != 1 || got[0] != rider {
		t.Error("rider must be in grid occupancy")
	}
}

func TestTryPlaceShape_RejectionLeavesGridUntouched(t *testing.T) {
	tests := []struct {
		name   string
		anchor Position
	}{
		{"occupied target cell", Position{X: 1, Y: 1}},
		{"out of bounds", Position{X: 0, Y: 0}},
		{"far out of bounds", Position{X: 10, Y: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := createTestGrid(4, 4)
			_ = g.SetContent(Position{X: 2, Y: 1}, ContentWall)
			blocker := &CellEntity{ID: 9}
			_ = g.PlaceEntity(blocker, Position{X: 3, Y: 3})

			s := shapeFromRows(t,
				".R.",
				"RRR",
				"...",
			)
			rider := &CellEntity{ID: 1}
			_ = s.AttachEntity(rider, Position{X: 0, Y: 0})

			before := g.Clone()
			if TryPlaceShape(g, s, tt.anchor) {
				t.Fatal("placement should be rejected")
			}
			if !g.Equal(before) {
				t.Error("grid changed after rejected placement")
			}
			if rider.Pos != (Position{X: 0, Y: 0}) {
				t.Error("rider must stay on the shape")
			}
		})
	}
}
