package engine

import (
	"errors"
	"fmt"

	"photocrop-server/internal/domain"
	"photocrop-server/internal/systems"
	"photocrop-server/pkg/levels"
	"photocrop-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoActiveShape     = errors.New("no active shape")
	ErrSimulationRunning = errors.New("simulation is running")
	ErrPlacementRejected = errors.New("placement rejected")
	ErrLevelFinished     = errors.New("level is finished")
)

// Stage is the level lifecycle.
type Stage uint8

const (
	StageBuilding Stage = iota
	StageSimulating
	StageFinished
)

var stageNames = map[Stage]string{
	StageBuilding:   "BUILDING",
	StageSimulating: "SIMULATING",
	StageFinished:   "FINISHED",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Level is a single play session of a level: the hole, the pieces left
// to place and the counters the goals are judged on.
type Level struct {
	data   *levels.LevelData
	layout *levels.Layout

	current      int
	anchor       domain.Position
	shapesPlaced int
	cropsUsed    int
	stage        Stage

	log *logrus.Entry
}

// NewLevel builds a fresh session from level data.
func NewLevel(data *levels.LevelData) (*Level, error) {
	l := &Level{
		data: data,
		log: logger.For("level").WithFields(logrus.Fields{
			"world": data.World.String(),
			"level": data.Number,
		}),
	}
	if err := l.rebuild(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Level) rebuild() error {
	layout, err := levels.Build(l.data)
	if err != nil {
		return fmt.Errorf("build level: %w", err)
	}
	l.layout = layout
	l.current = 0
	l.shapesPlaced = 0
	l.cropsUsed = 0
	l.stage = StageBuilding
	l.anchor = domain.Position{X: layout.Grid.Width / 2, Y: layout.Grid.Height / 2}
	return nil
}

// Accessors

func (l *Level) Data() *levels.LevelData      { return l.data }
func (l *Level) Grid() *domain.Grid           { return l.layout.Grid }
func (l *Level) Shapes() []*domain.Shape      { return l.layout.Shapes }
func (l *Level) Roster() []*domain.CellEntity { return l.layout.Roster }
func (l *Level) Goals() []domain.Goal         { return l.layout.Goals }
func (l *Level) Stage() Stage                 { return l.stage }
func (l *Level) Anchor() domain.Position      { return l.anchor }
func (l *Level) CurrentIndex() int            { return l.current }
func (l *Level) Stats() domain.LevelStats {
	return domain.LevelStats{
		ShapesPlaced: l.shapesPlaced,
		CropsUsed:    l.cropsUsed,
		GridFilled:   l.layout.Grid.IsCompletelyFilled(),
	}
}

// CurrentShape returns the selected piece or nil when none are left.
func (l *Level) CurrentShape() *domain.Shape {
	if len(l.layout.Shapes) == 0 {
		return nil
	}
	return l.layout.Shapes[l.current]
}

func (l *Level) checkBuilding() error {
	switch l.stage {
	case StageSimulating:
		return ErrSimulationRunning
	case StageFinished:
		return ErrLevelFinished
	}
	return nil
}

// Select cycles through the pieces with wrap-around.
func (l *Level) Select(delta int) error {
	if err := l.checkBuilding(); err != nil {
		return err
	}
	n := len(l.layout.Shapes)
	if n == 0 {
		return ErrNoActiveShape
	}
	l.current = ((l.current+delta)%n + n) % n
	return nil
}

// SelectIndex selects a piece by index.
func (l *Level) SelectIndex(index int) error {
	if err := l.checkBuilding(); err != nil {
		return err
	}
	if index < 0 || index >= len(l.layout.Shapes) {
		return fmt.Errorf("%w: index %d", ErrNoActiveShape, index)
	}
	l.current = index
	return nil
}

// SetAnchor moves the placement anchor, clamped to the hole.
func (l *Level) SetAnchor(p domain.Position) {
	g := l.layout.Grid
	l.anchor = domain.Position{X: clamp(p.X, 0, g.Width-1), Y: clamp(p.Y, 0, g.Height-1)}
}

// RotateCurrent rotates the selected piece clockwise.
func (l *Level) RotateCurrent() error {
	if err := l.checkBuilding(); err != nil {
		return err
	}
	shape := l.CurrentShape()
	if shape == nil {
		return ErrNoActiveShape
	}
	domain.RotateClockwise(shape)
	return nil
}

// PlaceCurrent drops the selected piece into the hole at anchor.
func (l *Level) PlaceCurrent(anchor domain.Position) error {
	if err := l.checkBuilding(); err != nil {
		return err
	}
	shape := l.CurrentShape()
	if shape == nil {
		return ErrNoActiveShape
	}

	l.SetAnchor(anchor)
	if !domain.TryPlaceShape(l.layout.Grid, shape, anchor) {
		return fmt.Errorf("%w at %v", ErrPlacementRejected, anchor)
	}

	l.shapesPlaced++
	l.removeShape(l.current)
	l.log.WithFields(logrus.Fields{
		"anchor": anchor,
		"placed": l.shapesPlaced,
		"left":   len(l.layout.Shapes),
	}).Info("Shape placed")
	return nil
}

// CropCurrent cuts the selected piece to window. Cut-off pieces are dropped
// into the hole at anchor; pieces that do not fit go back to the piece set.
func (l *Level) CropCurrent(anchor domain.Position, window systems.CropWindow) (domain.CropOutcome, error) {
	var outcome domain.CropOutcome
	if err := l.checkBuilding(); err != nil {
		return outcome, err
	}
	shape := l.CurrentShape()
	if shape == nil {
		return outcome, ErrNoActiveShape
	}
	if err := window.Validate(shape.Size); err != nil {
		return outcome, err
	}

	l.SetAnchor(anchor)
	source := shape
	pieces := systems.Crop(shape, window.Offsets())
	l.cropsUsed++
	outcome.Pieces = len(pieces)

	for _, piece := range pieces {
		if domain.TryPlaceShape(l.layout.Grid, piece, anchor) {
			outcome.Placed++
			continue
		}
		l.layout.Shapes = append(l.layout.Shapes, piece)
		outcome.Returned++
	}

	if source.IsEmpty() {
		for i, s := range l.layout.Shapes {
			if s == source {
				l.removeShape(i)
				break
			}
		}
		outcome.Exhausted = true
	}

	l.log.WithFields(logrus.Fields{
		"anchor":    anchor,
		"pieces":    outcome.Pieces,
		"placed":    outcome.Placed,
		"returned":  outcome.Returned,
		"exhausted": outcome.Exhausted,
	}).Info("Shape cropped")
	return outcome, nil
}

func (l *Level) removeShape(i int) {
	shapes := l.layout.Shapes
	l.layout.Shapes = append(shapes[:i], shapes[i+1:]...)
	if i < l.current {
		l.current--
	}
	if l.current >= len(l.layout.Shapes) {
		l.current = 0
	}
}

// OnGrid returns the live entities that are in the hole, in roster order.
// Riders of pieces that were never placed are skipped.
func (l *Level) OnGrid() []*domain.CellEntity {
	var out []*domain.CellEntity
	for _, e := range l.layout.Roster {
		if !e.Removed && containsEntity(l.layout.Grid.EntitiesAt(e.Pos), e) {
			out = append(out, e)
		}
	}
	return out
}

// ReadyForSimulation reports whether the building stage is over.
func (l *Level) ReadyForSimulation() bool {
	return len(l.layout.Shapes) == 0 || l.layout.Grid.IsCompletelyFilled()
}

// BeginSimulation switches the level to the simulating stage.
func (l *Level) BeginSimulation() error {
	if err := l.checkBuilding(); err != nil {
		return err
	}
	l.stage = StageSimulating
	return nil
}

// Finish evaluates the goals. The level counts as completed when at least one goal is met
// now or was met in an earlier run recorded in prior. Goals from prior are not re-evaluated.
func (l *Level) Finish(prior domain.LevelProgress) domain.LevelResult {
	l.stage = StageFinished
	stats := l.Stats()

	result := domain.LevelResult{
		World:       l.data.World,
		LevelNumber: l.data.Number,
		Stats:       stats,
	}
	for i := range l.layout.Goals {
		g := &l.layout.Goals[i]
		if prior.HasGoal(g.Type) {
			g.Completed = true
			result.Completed = true
			continue
		}
		if g.Evaluate(stats) {
			result.Completed = true
		}
	}
	result.Goals = append([]domain.Goal(nil), l.layout.Goals...)

	result.Survivors = len(l.OnGrid())

	l.log.WithFields(logrus.Fields{
		"completed": result.Completed,
		"placed":    stats.ShapesPlaced,
		"crops":     stats.CropsUsed,
		"filled":    stats.GridFilled,
	}).Info("Level finished")
	return result
}

// Reset rebuilds the level from its data. Entities of the previous run are dropped.
func (l *Level) Reset() error {
	if l.stage == StageSimulating {
		return ErrSimulationRunning
	}
	if err := l.rebuild(); err != nil {
		return err
	}
	l.log.Info("Level reset")
	return nil
}

func containsEntity(list []*domain.CellEntity, e *domain.CellEntity) bool {
	for _, other := range list {
		if other == e {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
