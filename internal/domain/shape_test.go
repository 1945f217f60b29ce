package domain

import (
	"sort"
	"testing"
)

func sortedOffsets(s *Shape) []Position {
	out := s.FilledOffsets()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func TestNormalizeShapeSize(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 3}, {3, 3}, {4, 5}, {5, 5}, {6, 5}, {9, 5},
	}
	for _, tt := range tests {
		if got := NormalizeShapeSize(tt.in); got != tt.want {
			t.Errorf("NormalizeShapeSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRotateClockwise_MapsCells(t *testing.T) {
	s := shapeFromRows(t,
		".R.",
		"...",
		"...",
	)
	rider := &CellEntity{ID: 7}
	if err := s.AttachEntity(rider, Position{X: 0, Y: 1}); err != nil {
		t.Fatal(err)
	}

	RotateClockwise(s)

	// (0,1) -> (1,0)
	if s.At(Position{X: 1, Y: 0}).Content != ContentRed {
		t.Error("top cell should rotate to the right")
	}
	if s.At(Position{X: 0, Y: 1}).Content != ContentEmpty {
		t.Error("old slot must become empty")
	}
	if rider.Pos != (Position{X: 1, Y: 0}) {
		t.Errorf("rider should follow its cell, got %v", rider.Pos)
	}
	if len(s.At(Position{X: 1, Y: 0}).Occupants) != 1 {
		t.Error("rider must be attached to the new slot")
	}
}

func TestRotateClockwise_FourTimesIsIdentity(t *testing.T) {
	shapes := []*Shape{
		shapeFromRows(t, "RR.", ".R.", ".RG"),
		shapeFromRows(t, "R....", ".B...", "..Y..", "...W.", "....K"),
		shapeFromRows(t, "G"),
	}

	for i, s := range shapes {
		before := sortedOffsets(s)
		contents := map[Position]ContentType{}
		for _, p := range before {
			contents[p] = s.At(p).Content
		}

		for n := 0; n < 4; n++ {
			RotateClockwise(s)
		}

		after := sortedOffsets(s)
		if len(after) != len(before) {
			t.Fatalf("shape %d: filled count changed %d -> %d", i, len(before), len(after))
		}
		for j := range before {
			if before[j] != after[j] || contents[before[j]] != s.At(after[j]).Content {
				t.Errorf("shape %d: cell %v differs after 4 rotations", i, before[j])
			}
		}
	}
}

func TestShape_IsEmpty(t *testing.T) {
	s := NewShape(3)
	if !s.IsEmpty() {
		t.Error("new shape must be empty")
	}
	_ = s.Set(Position{X: -1, Y: -1}, ContentBlue)
	if s.IsEmpty() {
		t.Error("shape with a filled cell is not empty")
	}
	if s.Set(Position{X: 2, Y: 0}, ContentBlue) != ErrOutOfBounds {
		t.Error("offset outside layout must fail")
	}
}
