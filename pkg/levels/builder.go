package levels

import (
	"fmt"

	"photocrop-server/internal/domain"
)

// Layout - собранный уровень, готовый к игровой сессии
type Layout struct {
	World  domain.World
	Number int
	Grid   *domain.Grid
	Shapes []*domain.Shape
	Roster []*domain.CellEntity
	Goals  []domain.Goal
}

// Builder предоставляет fluent API для сборки уровня.
// Первая ошибка запоминается, последующие вызовы ничего не делают.
type Builder struct {
	world     domain.World
	number    int
	grid      *domain.Grid
	shapes    []*domain.Shape
	roster    []*domain.CellEntity
	goals     []domain.Goal
	templates map[string]domain.EntityTemplate
	nextIndex map[domain.Group]uint64
	err       error
}

// NewBuilder создает builder для уровня
func NewBuilder(world domain.World, number int) *Builder {
	return &Builder{
		world:     world,
		number:    number,
		templates: BuiltinTemplates,
		nextIndex: make(map[domain.Group]uint64),
	}
}

// WithTemplates задает набор шаблонов сущностей
func (b *Builder) WithTemplates(templates map[string]domain.EntityTemplate) *Builder {
	b.templates = templates
	return b
}

// WithHole создает лунку из строк раскладки (сверху вниз)
func (b *Builder) WithHole(width, height int, rows []string) *Builder {
	if b.err != nil {
		return b
	}

	b.grid = domain.NewGrid(width, height)
	for r, raw := range rows {
		y := height - 1 - r
		for x, ch := range cleanRow(raw) {
			content, err := domain.ParseContentGlyph(ch)
			if err != nil {
				b.err = fmt.Errorf("hole row %d: %w", r, err)
				return b
			}
			if err := b.grid.SetContent(domain.Position{X: x, Y: y}, content); err != nil {
				b.err = fmt.Errorf("hole row %d: %w", r, err)
				return b
			}
		}
	}
	return b
}

// SpawnEntity ставит сущность из шаблона в клетку лунки
func (b *Builder) SpawnEntity(templateName string, pos domain.Position) *Builder {
	if b.err != nil {
		return b
	}
	if b.grid == nil {
		b.err = fmt.Errorf("spawn %q before hole", templateName)
		return b
	}

	e, err := b.spawn(templateName, pos)
	if err != nil {
		b.err = err
		return b
	}
	if err := b.grid.PlaceEntity(e, pos); err != nil {
		b.err = fmt.Errorf("spawn %q at %v: %w", templateName, pos, err)
	}
	return b
}

// AddShape добавляет фигуру игрока с сущностями-пассажирами
func (b *Builder) AddShape(size int, rows []string, riders []Placement) *Builder {
	if b.err != nil {
		return b
	}

	s := domain.NewShape(size)
	c := s.Center()
	for r, raw := range rows {
		y := c - r
		for col, ch := range cleanRow(raw) {
			content, err := domain.ParseContentGlyph(ch)
			if err != nil {
				b.err = fmt.Errorf("shape %d row %d: %w", len(b.shapes), r, err)
				return b
			}
			if err := s.Set(domain.Position{X: col - c, Y: y}, content); err != nil {
				b.err = fmt.Errorf("shape %d row %d: %w", len(b.shapes), r, err)
				return b
			}
		}
	}

	for _, p := range riders {
		offset := domain.Position{X: p.X, Y: p.Y}
		e, err := b.spawn(p.Template, offset)
		if err != nil {
			b.err = err
			return b
		}
		if err := s.AttachEntity(e, offset); err != nil {
			b.err = fmt.Errorf("shape %d rider %q: %w", len(b.shapes), p.Template, err)
			return b
		}
	}

	b.shapes = append(b.shapes, s)
	return b
}

// WithGoal добавляет цель уровня
func (b *Builder) WithGoal(t domain.GoalType, limit int, description string) *Builder {
	b.goals = append(b.goals, domain.Goal{Type: t, Limit: limit, Description: description})
	return b
}

// Build возвращает собранный уровень
func (b *Builder) Build() (*Layout, error) {
	if b.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, b.err)
	}
	if b.grid == nil {
		return nil, fmt.Errorf("%w: no hole", ErrInvalidLevel)
	}
	return &Layout{
		World:  b.world,
		Number: b.number,
		Grid:   b.grid,
		Shapes: b.shapes,
		Roster: b.roster,
		Goals:  b.goals,
	}, nil
}

func (b *Builder) spawn(templateName string, pos domain.Position) (*domain.CellEntity, error) {
	t, ok := b.templates[templateName]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", templateName)
	}

	idx := b.nextIndex[t.Group]
	b.nextIndex[t.Group] = idx + 1

	e := t.Spawn(domain.PackEntityID(t.Group, int16(b.number), idx), pos)
	b.roster = append(b.roster, e)
	return e, nil
}

// Build собирает уровень из описания. Каждый вызов создает новые сущности.
func Build(data *LevelData) (*Layout, error) {
	templates, err := data.templateSet()
	if err != nil {
		return nil, err
	}

	b := NewBuilder(data.World, data.Number).
		WithTemplates(templates).
		WithHole(data.Hole.Width, data.Hole.Height, data.Hole.Layout)

	for _, p := range data.Hole.Entities {
		b.SpawnEntity(p.Template, domain.Position{X: p.X, Y: p.Y})
	}
	for _, s := range data.Shapes {
		b.AddShape(s.Size, s.Layout, s.Entities)
	}
	for _, g := range data.Goals {
		b.WithGoal(g.Type, g.Limit, g.Description)
	}

	return b.Build()
}
