package levels

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"photocrop-server/internal/domain"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel - файл уровня не прошел проверку
var ErrInvalidLevel = errors.New("invalid level")

// LevelData - описание уровня в YAML
type LevelData struct {
	World          domain.World            `yaml:"world"`
	Number         int                     `yaml:"level"`
	Name           string                  `yaml:"name,omitempty"`
	TickIntervalMs int                     `yaml:"tick_interval_ms,omitempty"`
	Hole           HoleData                `yaml:"hole"`
	Shapes         []ShapeData             `yaml:"shapes"`
	Goals          []GoalData              `yaml:"goals"`
	Templates      map[string]TemplateData `yaml:"templates,omitempty"`
}

// HoleData - лунка. Строки layout идут сверху вниз: первая строка - максимальный y.
type HoleData struct {
	Width    int         `yaml:"width"`
	Height   int         `yaml:"height"`
	Layout   []string    `yaml:"layout"`
	Entities []Placement `yaml:"entities,omitempty"`
}

// ShapeData - фигура игрока. Координаты сущностей - относительно центра.
type ShapeData struct {
	Size     int         `yaml:"size"`
	Layout   []string    `yaml:"layout"`
	Entities []Placement `yaml:"entities,omitempty"`
}

// Placement - сущность из шаблона в точке
type Placement struct {
	Template string `yaml:"template"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
}

// GoalData - цель уровня
type GoalData struct {
	Type        domain.GoalType `yaml:"type"`
	Limit       int             `yaml:"limit,omitempty"`
	Description string          `yaml:"description,omitempty"`
}

// LoadFile читает и проверяет уровень с диска
func LoadFile(path string) (*LevelData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	data, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return data, nil
}

// Parse разбирает YAML, проставляет значения по умолчанию и проверяет уровень
func Parse(raw []byte) (*LevelData, error) {
	var data LevelData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	data.applyDefaults()
	if err := data.validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Marshal сериализует уровень обратно в YAML
func (d *LevelData) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

func (d *LevelData) applyDefaults() {
	if d.Hole.Height == 0 {
		d.Hole.Height = len(d.Hole.Layout)
	}
	if d.Hole.Width == 0 && len(d.Hole.Layout) > 0 {
		d.Hole.Width = len(cleanRow(d.Hole.Layout[0]))
	}
	// Без раскладки лунка пустая
	if len(d.Hole.Layout) == 0 {
		for y := 0; y < d.Hole.Height; y++ {
			d.Hole.Layout = append(d.Hole.Layout, strings.Repeat(".", d.Hole.Width))
		}
	}

	for i := range d.Shapes {
		s := &d.Shapes[i]
		if s.Size == 0 {
			s.Size = len(s.Layout)
		}
		// Нечетный размер: недостающие строки и столбцы дополняются пустыми клетками
		if len(s.Layout) <= domain.MaxShapeSize {
			s.Size = domain.NormalizeShapeSize(s.Size)
			for r := range s.Layout {
				row := cleanRow(s.Layout[r])
				if len(row) < s.Size {
					row += strings.Repeat(".", s.Size-len(row))
				}
				s.Layout[r] = row
			}
			for len(s.Layout) < s.Size {
				s.Layout = append(s.Layout, strings.Repeat(".", s.Size))
			}
		}
	}

	if len(d.Goals) == 0 {
		d.Goals = []GoalData{{Type: domain.GoalFillEntireGrid}}
	}
}

func (d *LevelData) validate() error {
	if d.Number < 0 {
		return fmt.Errorf("%w: negative level number %d", ErrInvalidLevel, d.Number)
	}
	if d.Hole.Width <= 0 || d.Hole.Height <= 0 {
		return fmt.Errorf("%w: hole size %dx%d", ErrInvalidLevel, d.Hole.Width, d.Hole.Height)
	}
	if err := checkRows(d.Hole.Layout, d.Hole.Width, d.Hole.Height); err != nil {
		return fmt.Errorf("%w: hole: %v", ErrInvalidLevel, err)
	}

	templates, err := d.templateSet()
	if err != nil {
		return err
	}

	for _, p := range d.Hole.Entities {
		if _, ok := templates[p.Template]; !ok {
			return fmt.Errorf("%w: hole: unknown template %q", ErrInvalidLevel, p.Template)
		}
		if p.X < 0 || p.X >= d.Hole.Width || p.Y < 0 || p.Y >= d.Hole.Height {
			return fmt.Errorf("%w: hole: entity %q at (%d,%d) out of bounds", ErrInvalidLevel, p.Template, p.X, p.Y)
		}
		if glyphAt(d.Hole.Layout, d.Hole.Height-1-p.Y, p.X) == '.' {
			return fmt.Errorf("%w: hole: entity %q at (%d,%d) on empty cell", ErrInvalidLevel, p.Template, p.X, p.Y)
		}
	}

	for i, s := range d.Shapes {
		if len(s.Layout) > domain.MaxShapeSize {
			return fmt.Errorf("%w: shape %d: layout has %d rows, max %d", ErrInvalidLevel, i, len(s.Layout), domain.MaxShapeSize)
		}
		if err := checkRows(s.Layout, s.Size, s.Size); err != nil {
			return fmt.Errorf("%w: shape %d: %v", ErrInvalidLevel, i, err)
		}
		c := s.Size / 2
		for _, p := range s.Entities {
			if _, ok := templates[p.Template]; !ok {
				return fmt.Errorf("%w: shape %d: unknown template %q", ErrInvalidLevel, i, p.Template)
			}
			if p.X < -c || p.X > c || p.Y < -c || p.Y > c {
				return fmt.Errorf("%w: shape %d: entity %q at (%d,%d) outside layout", ErrInvalidLevel, i, p.Template, p.X, p.Y)
			}
			// Пассажир без клетки потеряется при повороте
			if glyphAt(s.Layout, c-p.Y, p.X+c) == '.' {
				return fmt.Errorf("%w: shape %d: entity %q at (%d,%d) on empty cell", ErrInvalidLevel, i, p.Template, p.X, p.Y)
			}
		}
	}

	for _, g := range d.Goals {
		if g.Type != domain.GoalFillEntireGrid && g.Limit < 0 {
			return fmt.Errorf("%w: goal %s has negative limit", ErrInvalidLevel, g.Type)
		}
	}

	return nil
}

// templateSet - встроенные шаблоны, дополненные шаблонами уровня
func (d *LevelData) templateSet() (map[string]domain.EntityTemplate, error) {
	set := make(map[string]domain.EntityTemplate, len(BuiltinTemplates)+len(d.Templates))
	for name, t := range BuiltinTemplates {
		set[name] = t
	}
	for name, td := range d.Templates {
		t, err := td.ToTemplate()
		if err != nil {
			return nil, fmt.Errorf("%w: template %q: %v", ErrInvalidLevel, name, err)
		}
		set[name] = t
	}
	return set, nil
}

func checkRows(rows []string, width, height int) error {
	if len(rows) != height {
		return fmt.Errorf("layout has %d rows, want %d", len(rows), height)
	}
	for i, r := range rows {
		row := cleanRow(r)
		if len(row) != width {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), width)
		}
		for _, ch := range row {
			if _, err := domain.ParseContentGlyph(ch); err != nil {
				return fmt.Errorf("row %d: %v", i, err)
			}
		}
	}
	return nil
}

// glyphAt - символ раскладки в строке row, столбце col
func glyphAt(rows []string, row, col int) rune {
	return rune(cleanRow(rows[row])[col])
}

// cleanRow убирает пробелы-разделители из строки раскладки
func cleanRow(row string) string {
	return strings.ReplaceAll(row, " ", "")
}
