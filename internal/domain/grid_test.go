package domain

import "testing"

func TestGrid_PlaceMoveRemoveEntity(t *testing.T) {
	g := createTestGrid(4, 4)
	e := &CellEntity{ID: PackEntityID(GroupPlayerA, 1, 1)}

	if err := g.PlaceEntity(e, Position{X: 1, Y: 1}); err != nil {
		t.Fatalf("PlaceEntity: %v", err)
	}
	if len(g.EntitiesAt(Position{X: 1, Y: 1})) != 1 {
		t.Fatal("entity should be in cell (1,1)")
	}

	if err := g.MoveEntity(e, Position{X: 2, Y: 3}); err != nil {
		t.Fatalf("MoveEntity: %v", err)
	}
	if e.Pos != (Position{X: 2, Y: 3}) {
		t.Errorf("entity pos = %v, want (2,3)", e.Pos)
	}
	if len(g.EntitiesAt(Position{X: 1, Y: 1})) != 0 {
		t.Error("old cell must be vacated")
	}
	if got := g.EntitiesAt(Position{X: 2, Y: 3}); len(got) != 1 || got[0] != e {
		t.Error("new cell must contain the entity")
	}

	if err := g.MoveEntity(e, Position{X: 9, Y: 9}); err != ErrOutOfBounds {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}

	if !g.RemoveEntity(e) {
		t.Error("RemoveEntity should report success")
	}
	if len(g.Entities()) != 0 {
		t.Error("grid should have no entities")
	}
}

func TestGrid_IsCompletelyFilled(t *testing.T) {
	g := createTestGrid(2, 2)
	if g.IsCompletelyFilled() {
		t.Fatal("new grid is empty")
	}
	for i := range g.Cells {
		g.Cells[i].Content = ContentRed
	}
	if !g.IsCompletelyFilled() {
		t.Error("grid without empty cells must be filled")
	}
	g.Cells[3].Content = ContentEmpty
	if g.EmptyCount() != 1 {
		t.Errorf("EmptyCount = %d, want 1", g.EmptyCount())
	}
}

func TestGroupConnectedCells(t *testing.T) {
	// y=2: R R B
	// y=1: . R B
	// y=0: R . B
	g := createTestGrid(3, 3)
	layout := map[Position]ContentType{
		{X: 0, Y: 2}: ContentRed, {X: 1, Y: 2}: ContentRed, {X: 2, Y: 2}: ContentBlue,
		{X: 1, Y: 1}: ContentRed, {X: 2, Y: 1}: ContentBlue,
		{X: 0, Y: 0}: ContentRed, {X: 2, Y: 0}: ContentBlue,
	}
	for p, c := range layout {
		_ = g.SetContent(p, c)
	}

	groups := GroupConnectedCells(g)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	// Обход построчный: первой встречается (0,0) - одиночный красный (диагональ не связывает)
	if len(groups[0]) != 1 || groups[0][0].Pos != (Position{X: 0, Y: 0}) {
		t.Errorf("first group should be lone red at (0,0), got %v", groups[0])
	}
	if len(groups[1]) != 3 || groups[1][0].Content != ContentBlue {
		t.Errorf("second group should be 3 blue cells, got %d of %v", len(groups[1]), groups[1][0].Content)
	}
	if len(groups[2]) != 3 || groups[2][0].Content != ContentRed {
		t.Errorf("third group should be 3 red cells, got %d", len(groups[2]))
	}
}

func TestGrid_CloneEqual(t *testing.T) {
	g := createTestGrid(3, 3)
	_ = g.SetContent(Position{X: 1, Y: 1}, ContentWall)
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone must be equal")
	}
	_ = c.SetContent(Position{X: 0, Y: 0}, ContentRed)
	if g.Equal(c) {
		t.Error("clone must be independent")
	}
}
