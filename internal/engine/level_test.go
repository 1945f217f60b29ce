package engine

import (
	"errors"
	"testing"

	"photocrop-server/internal/domain"
	"photocrop-server/internal/systems"
	"photocrop-server/pkg/levels"
)

func loadLevel(t *testing.T, world domain.World, number int) *Level {
	t.Helper()
	data, err := levels.Find(world, number)
	if err != nil {
		t.Fatalf("find level: %v", err)
	}
	lvl, err := NewLevel(data)
	if err != nil {
		t.Fatalf("NewLevel: %v", err)
	}
	return lvl
}

func TestLevelPlacement(t *testing.T) {
	t.Run("Piece fills the hole", func(t *testing.T) {
		lvl := loadLevel(t, domain.WorldBricks, 1)

		if len(lvl.OnGrid()) != 1 {
			t.Fatalf("riders of unplaced pieces must not be on the grid, got %d", len(lvl.OnGrid()))
		}
		if lvl.ReadyForSimulation() {
			t.Fatal("level is not ready before placement")
		}

		if err := lvl.PlaceCurrent(domain.Position{X: 2, Y: 1}); err != nil {
			t.Fatalf("PlaceCurrent: %v", err)
		}

		if !lvl.Grid().IsCompletelyFilled() {
			t.Error("hole should be filled")
		}
		if lvl.CurrentShape() != nil || len(lvl.Shapes()) != 0 {
			t.Error("placed piece must leave the set")
		}
		if lvl.Stats().ShapesPlaced != 1 {
			t.Errorf("ShapesPlaced = %d", lvl.Stats().ShapesPlaced)
		}
		if !lvl.ReadyForSimulation() {
			t.Error("level should be ready")
		}

		onGrid := lvl.OnGrid()
		if len(onGrid) != 2 {
			t.Fatalf("expected golem and mason on the grid, got %d", len(onGrid))
		}
		for _, e := range onGrid {
			if e.Name == levels.Mason.Name && e.Pos != (domain.Position{X: 3, Y: 1}) {
				t.Errorf("mason at %v, want (3,1)", e.Pos)
			}
		}
	})

	t.Run("Rejected placement keeps the piece", func(t *testing.T) {
		lvl := loadLevel(t, domain.WorldBricks, 1)

		err := lvl.PlaceCurrent(domain.Position{X: 0, Y: 0})
		if !errors.Is(err, ErrPlacementRejected) {
			t.Fatalf("expected ErrPlacementRejected, got %v", err)
		}
		if len(lvl.Shapes()) != 1 || lvl.Stats().ShapesPlaced != 0 {
			t.Error("rejected placement changed the level")
		}
	})
}

func TestLevelSelect(t *testing.T) {
	lvl := loadLevel(t, domain.WorldBricks, 2)

	if err := lvl.Select(-1); err != nil {
		t.Fatal(err)
	}
	if lvl.CurrentIndex() != 1 {
		t.Errorf("Select(-1) from 0 = %d, want 1", lvl.CurrentIndex())
	}
	if err := lvl.Select(1); err != nil {
		t.Fatal(err)
	}
	if lvl.CurrentIndex() != 0 {
		t.Errorf("Select(1) from 1 = %d, want 0", lvl.CurrentIndex())
	}
	if err := lvl.SelectIndex(5); !errors.Is(err, ErrNoActiveShape) {
		t.Errorf("expected ErrNoActiveShape, got %v", err)
	}
	if err := lvl.RotateCurrent(); err != nil {
		t.Errorf("RotateCurrent: %v", err)
	}
}

func TestLevelCrop(t *testing.T) {
	t.Run("Cut row lands in the hole", func(t *testing.T) {
		lvl := loadLevel(t, domain.WorldBricks, 2)
		anchor := domain.Position{X: 2, Y: 1}

		outcome, err := lvl.CropCurrent(anchor, systems.CropWindow{MinX: -1, MaxX: 1, MinY: 0, MaxY: 0})
		if err != nil {
			t.Fatalf("CropCurrent: %v", err)
		}
		want := domain.CropOutcome{Pieces: 1, Placed: 1}
		if outcome != want {
			t.Errorf("outcome = %+v, want %+v", outcome, want)
		}
		if lvl.Stats().CropsUsed != 1 {
			t.Errorf("CropsUsed = %d", lvl.Stats().CropsUsed)
		}

		if err := lvl.PlaceCurrent(anchor); err != nil {
			t.Fatalf("place remaining row: %v", err)
		}
		if !lvl.Grid().IsCompletelyFilled() || !lvl.ReadyForSimulation() {
			t.Error("hole should be filled")
		}
		if len(lvl.OnGrid()) != 3 {
			t.Errorf("expected golem, pillar and mason, got %d", len(lvl.OnGrid()))
		}
	})

	t.Run("Piece that does not fit returns", func(t *testing.T) {
		lvl := loadLevel(t, domain.WorldBricks, 2)
		second := lvl.Shapes()[1]

		// Window over the empty bottom row cuts the whole piece off
		outcome, err := lvl.CropCurrent(domain.Position{X: 2, Y: 0}, systems.CropWindow{MinX: -1, MaxX: 1, MinY: -1, MaxY: -1})
		if err != nil {
			t.Fatalf("CropCurrent: %v", err)
		}
		want := domain.CropOutcome{Pieces: 1, Returned: 1, Exhausted: true}
		if outcome != want {
			t.Errorf("outcome = %+v, want %+v", outcome, want)
		}
		if len(lvl.Shapes()) != 2 || lvl.Shapes()[0] != second {
			t.Errorf("expected [second, returned piece], got %d shapes", len(lvl.Shapes()))
		}
		if got := len(lvl.Shapes()[1].FilledOffsets()); got != 6 {
			t.Errorf("returned piece has %d cells, want 6", got)
		}
	})

	t.Run("Window outside layout", func(t *testing.T) {
		lvl := loadLevel(t, domain.WorldBricks, 2)
		_, err := lvl.CropCurrent(domain.Position{}, systems.CropWindow{MinX: -2, MaxX: 0, MinY: 0, MaxY: 0})
		if err == nil {
			t.Error("expected error for window wider than the piece")
		}
		if lvl.Stats().CropsUsed != 0 {
			t.Error("invalid crop must not count")
		}
	})
}

func TestLevelLifecycle(t *testing.T) {
	lvl := loadLevel(t, domain.WorldBricks, 1)
	if err := lvl.PlaceCurrent(domain.Position{X: 2, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if err := lvl.BeginSimulation(); err != nil {
		t.Fatal(err)
	}

	if err := lvl.Select(1); !errors.Is(err, ErrSimulationRunning) {
		t.Errorf("Select while simulating: %v", err)
	}
	if err := lvl.Reset(); !errors.Is(err, ErrSimulationRunning) {
		t.Errorf("Reset while simulating: %v", err)
	}

	result := lvl.Finish(domain.LevelProgress{})
	if !result.Completed {
		t.Error("filled hole with one piece should complete the level")
	}
	if len(result.CompletedGoals()) != 2 {
		t.Errorf("expected both goals, got %v", result.CompletedGoals())
	}
	if result.Survivors != 2 {
		t.Errorf("Survivors = %d", result.Survivors)
	}
	if err := lvl.RotateCurrent(); !errors.Is(err, ErrLevelFinished) {
		t.Errorf("Rotate after finish: %v", err)
	}

	if err := lvl.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if lvl.Stage() != StageBuilding || len(lvl.Shapes()) != 1 || lvl.Grid().IsCompletelyFilled() {
		t.Error("reset must restore the initial layout")
	}
	if lvl.Stats().ShapesPlaced != 0 {
		t.Error("reset must clear counters")
	}
}

func TestLevelGoalsPartial(t *testing.T) {
	lvl := loadLevel(t, domain.WorldBricks, 2)
	if err := lvl.BeginSimulation(); err != nil {
		t.Fatal(err)
	}

	result := lvl.Finish(domain.LevelProgress{})
	// Hole is not filled but no crops were used
	if !result.Completed {
		t.Error("one met goal completes the level")
	}
	got := result.CompletedGoals()
	if len(got) != 1 || got[0] != domain.GoalWithinCropLimit {
		t.Errorf("CompletedGoals = %v", got)
	}
}

func TestLevelGoalsFromProgress(t *testing.T) {
	finish := func(prior domain.LevelProgress) domain.LevelResult {
		lvl := loadLevel(t, domain.WorldChess, 2)
		if err := lvl.BeginSimulation(); err != nil {
			t.Fatal(err)
		}
		return lvl.Finish(prior)
	}

	if finish(domain.LevelProgress{}).Completed {
		t.Fatal("unfilled hole without stored progress must not complete")
	}

	result := finish(domain.LevelProgress{
		World:          domain.WorldChess,
		LevelNumber:    2,
		GoalsCompleted: []domain.GoalType{domain.GoalFillEntireGrid},
	})
	if !result.Completed {
		t.Error("goal completed earlier must complete the level")
	}
	if result.Stats.GridFilled {
		t.Error("hole is not filled in this run")
	}
	got := result.CompletedGoals()
	if len(got) != 1 || got[0] != domain.GoalFillEntireGrid {
		t.Errorf("CompletedGoals = %v", got)
	}
}
