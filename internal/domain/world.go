package domain

// Position - целочисленная координата клетки. Ось Y направлена вверх.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Cell - клетка сетки (лунки или фигуры).
// Occupants принадлежит сетке: позиция сущности всегда совпадает с Pos ровно одной клетки,
// в списке которой она находится.
type Cell struct {
	Pos       Position      `json:"pos"`
	Content   ContentType   `json:"content"`
	Occupants []*CellEntity `json:"-"`
}

// IsEmpty возвращает true, если клетка не заполнена.
func (c *Cell) IsEmpty() bool {
	return c.Content == ContentEmpty
}

// Grid - прямоугольная сетка фиксированного размера.
// Клетки хранятся плоским массивом, индекс: y*Width + x.
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"`
}
