package domain

import (
	"fmt"
	"strings"
)

// GoalType - тип цели уровня
type GoalType uint8

const (
	GoalFillEntireGrid GoalType = iota
	GoalWithinShapeLimit
	GoalWithinCropLimit
)

var goalStringToType = map[string]GoalType{
	"FILL_ENTIRE_GRID":   GoalFillEntireGrid,
	"WITHIN_SHAPE_LIMIT": GoalWithinShapeLimit,
	"WITHIN_CROP_LIMIT":  GoalWithinCropLimit,
}

var goalTypeToString = map[GoalType]string{
	GoalFillEntireGrid:   "FILL_ENTIRE_GRID",
	GoalWithinShapeLimit: "WITHIN_SHAPE_LIMIT",
	GoalWithinCropLimit:  "WITHIN_CROP_LIMIT",
}

// ParseGoalType конвертирует строку в GoalType
func ParseGoalType(s string) (GoalType, error) {
	if val, ok := goalStringToType[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return val, nil
	}
	return GoalFillEntireGrid, fmt.Errorf("unknown goal type %q", s)
}

func (g GoalType) String() string {
	if val, ok := goalTypeToString[g]; ok {
		return val
	}
	return "UNKNOWN"
}

// Goal - цель уровня
type Goal struct {
	Type        GoalType `json:"type"`
	Description string   `json:"description,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Completed   bool     `json:"completed"`
}

// LevelStats - счетчики, по которым проверяются цели
type LevelStats struct {
	ShapesPlaced int  `json:"shapesPlaced"`
	CropsUsed    int  `json:"cropsUsed"`
	GridFilled   bool `json:"gridFilled"`
}

// LevelResult - итог уровня после симуляции
type LevelResult struct {
	World       World      `json:"world"`
	LevelNumber int        `json:"level"`
	Completed   bool       `json:"completed"`
	Goals       []Goal     `json:"goals"`
	Stats       LevelStats `json:"stats"`
	Survivors   int        `json:"survivors"`
}

// CompletedGoals - типы выполненных целей
func (r *LevelResult) CompletedGoals() []GoalType {
	var out []GoalType
	for _, g := range r.Goals {
		if g.Completed {
			out = append(out, g.Type)
		}
	}
	return out
}

// Evaluate проверяет цель и запоминает результат
func (g *Goal) Evaluate(stats LevelStats) bool {
	switch g.Type {
	case GoalFillEntireGrid:
		g.Completed = stats.GridFilled
	case GoalWithinShapeLimit:
		g.Completed = stats.ShapesPlaced <= g.Limit
	case GoalWithinCropLimit:
		g.Completed = stats.CropsUsed <= g.Limit
	}
	return g.Completed
}

// LevelProgress - сохраненный прогресс по уровню
type LevelProgress struct {
	World          World      `yaml:"world" json:"world"`
	LevelNumber    int        `yaml:"level" json:"level"`
	GoalsCompleted []GoalType `yaml:"goals_completed" json:"goalsCompleted"`
}

// Merge объединяет выполненные цели (прогресс не теряется при худшем прохождении)
func (p *LevelProgress) Merge(goals []GoalType) {
	for _, g := range goals {
		if !p.HasGoal(g) {
			p.GoalsCompleted = append(p.GoalsCompleted, g)
		}
	}
}

// HasGoal - выполнена ли цель раньше
func (p *LevelProgress) HasGoal(g GoalType) bool {
	for _, done := range p.GoalsCompleted {
		if done == g {
			return true
		}
	}
	return false
}

// MarshalText отдает тип строкой (JSON/YAML)
func (g GoalType) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText парсит тип из строки
func (g *GoalType) UnmarshalText(text []byte) error {
	v, err := ParseGoalType(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}
