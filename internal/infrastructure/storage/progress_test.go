package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"photocrop-server/internal/domain"

	"github.com/quasilyte/gdata/v2"
)

func openTestManager(t *testing.T) *gdata.Manager {
	appName := fmt.Sprintf("photocrop_test_%d", time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return manager
}

func chessResult(goals ...domain.Goal) domain.LevelResult {
	return domain.LevelResult{World: domain.WorldChess, LevelNumber: 1, Goals: goals}
}

func testProgress(t *testing.T, store *ProgressStore) {
	p, err := store.Load(domain.WorldChess, 1)
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if len(p.GoalsCompleted) != 0 {
		t.Fatalf("expected empty progress, got %v", p.GoalsCompleted)
	}

	_, err = store.Record(chessResult(
		domain.Goal{Type: domain.GoalFillEntireGrid, Completed: true},
		domain.Goal{Type: domain.GoalWithinCropLimit, Completed: false},
	))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	// Худшее прохождение не стирает цели
	_, err = store.Record(chessResult(
		domain.Goal{Type: domain.GoalFillEntireGrid, Completed: false},
		domain.Goal{Type: domain.GoalWithinCropLimit, Completed: true},
	))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	p, err = store.Load(domain.WorldChess, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !p.HasGoal(domain.GoalFillEntireGrid) || !p.HasGoal(domain.GoalWithinCropLimit) {
		t.Errorf("expected both goals, got %v", p.GoalsCompleted)
	}
	if len(p.GoalsCompleted) != 2 {
		t.Errorf("goals duplicated: %v", p.GoalsCompleted)
	}

	other, _ := store.Load(domain.WorldBricks, 1)
	if len(other.GoalsCompleted) != 0 {
		t.Errorf("progress leaked to another level: %v", other.GoalsCompleted)
	}
}

func TestProgressStoreMemory(t *testing.T) {
	testProgress(t, NewProgressStore(nil))
}

func TestProgressStoreGdata(t *testing.T) {
	manager := openTestManager(t)
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}
	testProgress(t, NewProgressStore(manager))
}
