package domain

import "testing"

func TestGoal_Evaluate(t *testing.T) {
	tests := []struct {
		name  string
		goal  Goal
		stats LevelStats
		want  bool
	}{
		{"filled grid", Goal{Type: GoalFillEntireGrid}, LevelStats{GridFilled: true}, true},
		{"unfilled grid", Goal{Type: GoalFillEntireGrid}, LevelStats{}, false},
		{"shapes within limit", Goal{Type: GoalWithinShapeLimit, Limit: 3}, LevelStats{ShapesPlaced: 3}, true},
		{"shapes over limit", Goal{Type: GoalWithinShapeLimit, Limit: 3}, LevelStats{ShapesPlaced: 4}, false},
		{"crops within limit", Goal{Type: GoalWithinCropLimit, Limit: 0}, LevelStats{CropsUsed: 0}, true},
		{"crops over limit", Goal{Type: GoalWithinCropLimit, Limit: 1}, LevelStats{CropsUsed: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.goal
			if got := g.Evaluate(tt.stats); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
			if g.Completed != tt.want {
				t.Error("Completed flag must follow Evaluate result")
			}
		})
	}
}

func TestLevelProgress_Merge(t *testing.T) {
	p := LevelProgress{World: WorldChess, LevelNumber: 2, GoalsCompleted: []GoalType{GoalFillEntireGrid}}
	p.Merge([]GoalType{GoalFillEntireGrid, GoalWithinCropLimit})

	if len(p.GoalsCompleted) != 2 {
		t.Fatalf("expected 2 goals, got %v", p.GoalsCompleted)
	}
	if !p.HasGoal(GoalWithinCropLimit) || p.HasGoal(GoalWithinShapeLimit) {
		t.Error("merge result is wrong")
	}
}

func TestEntityID_Pack(t *testing.T) {
	id := PackEntityID(GroupRivalA, 3, 42)
	if id.Group() != GroupRivalA || id.Level() != 3 || id.Index() != 42 {
		t.Errorf("unpacked %v", id)
	}
	if id.String() != "[RIVAL_A:3:42]" {
		t.Errorf("String() = %q", id.String())
	}
}
