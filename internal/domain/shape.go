package domain

// MaxShapeSize - максимальная сторона раскладки фигуры
const MaxShapeSize = 5

// Shape - фигура игрока: квадратная раскладка нечетного размера
// в координатах относительно центра (от -Size/2 до Size/2).
type Shape struct {
	Size  int    `json:"size"`
	Cells []Cell `json:"cells"`
}

// NormalizeShapeSize приводит сторону к нечетной и не больше MaxShapeSize
func NormalizeShapeSize(n int) int {
	if n < 1 {
		n = 1
	}
	if n > MaxShapeSize {
		n = MaxShapeSize
	}
	if n%2 == 0 {
		n++
	}
	return n
}

// NewShape создает фигуру, заполненную пустыми клетками
func NewShape(size int) *Shape {
	size = NormalizeShapeSize(size)
	s := &Shape{Size: size, Cells: make([]Cell, size*size)}
	c := size / 2
	for i := range s.Cells {
		s.Cells[i].Pos = Position{X: i%size - c, Y: i/size - c}
	}
	return s
}

// Center - смещение индекса от центра
func (s *Shape) Center() int {
	return s.Size / 2
}

func (s *Shape) index(offset Position) int {
	c := s.Center()
	return (offset.Y+c)*s.Size + (offset.X + c)
}

// InLayout проверяет, лежит ли смещение внутри раскладки
func (s *Shape) InLayout(offset Position) bool {
	c := s.Center()
	return offset.X >= -c && offset.X <= c && offset.Y >= -c && offset.Y <= c
}

// At возвращает клетку по смещению от центра или nil
func (s *Shape) At(offset Position) *Cell {
	if !s.InLayout(offset) {
		return nil
	}
	return &s.Cells[s.index(offset)]
}

// Set задает тип клетки по смещению
func (s *Shape) Set(offset Position, content ContentType) error {
	cell := s.At(offset)
	if cell == nil {
		return ErrOutOfBounds
	}
	cell.Content = content
	return nil
}

// AttachEntity сажает сущность на клетку фигуры. Позиция сущности - смещение в фигуре.
func (s *Shape) AttachEntity(e *CellEntity, offset Position) error {
	cell := s.At(offset)
	if cell == nil {
		return ErrOutOfBounds
	}
	e.Pos = offset
	cell.Occupants = append(cell.Occupants, e)
	return nil
}

// IsEmpty возвращает true, если в раскладке не осталось заполненных клеток
func (s *Shape) IsEmpty() bool {
	for i := range s.Cells {
		if !s.Cells[i].IsEmpty() {
			return false
		}
	}
	return true
}

// FilledOffsets возвращает смещения заполненных клеток в порядке раскладки
func (s *Shape) FilledOffsets() []Position {
	var out []Position
	for i := range s.Cells {
		if !s.Cells[i].IsEmpty() {
			out = append(out, s.Cells[i].Pos)
		}
	}
	return out
}

// Entities - сущности, которые едут на фигуре
func (s *Shape) Entities() []*CellEntity {
	var out []*CellEntity
	for i := range s.Cells {
		out = append(out, s.Cells[i].Occupants...)
	}
	return out
}

// Clone копирует раскладку (ссылки на сущности сохраняются)
func (s *Shape) Clone() *Shape {
	c := &Shape{Size: s.Size, Cells: make([]Cell, len(s.Cells))}
	for i, cell := range s.Cells {
		c.Cells[i] = Cell{Pos: cell.Pos, Content: cell.Content}
		if len(cell.Occupants) > 0 {
			c.Cells[i].Occupants = append([]*CellEntity(nil), cell.Occupants...)
		}
	}
	return c
}

// RotateClockwise поворачивает фигуру на 90° по часовой: (x, y) -> (y, -x).
// Пустые слоты становятся пустыми клетками, сущности переезжают вместе с клеткой.
func RotateClockwise(s *Shape) {
	rotated := NewShape(s.Size)

	for i := range s.Cells {
		cell := &s.Cells[i]
		if cell.IsEmpty() {
			continue
		}

		newPos := Position{X: cell.Pos.Y, Y: -cell.Pos.X}
		target := rotated.At(newPos)
		if target == nil {
			continue
		}

		target.Content = cell.Content
		target.Occupants = cell.Occupants
		for _, e := range target.Occupants {
			e.Pos = newPos
		}
	}

	s.Cells = rotated.Cells
}
