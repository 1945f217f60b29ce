package domain

import (
	"errors"

	"github.com/zyedidia/generic/mapset"
)

var ErrOutOfBounds = errors.New("position out of bounds")

// NewGrid создает пустую сетку width x height
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Cells[g.Index(x, y)].Pos = Position{X: x, Y: y}
		}
	}
	return g
}

// Index - плоский индекс клетки
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// InBounds проверяет, лежит ли позиция внутри сетки
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// At возвращает клетку по позиции или nil за пределами сетки
func (g *Grid) At(p Position) *Cell {
	if !g.InBounds(p) {
		return nil
	}
	return &g.Cells[g.Index(p.X, p.Y)]
}

// SetContent меняет тип клетки
func (g *Grid) SetContent(p Position, content ContentType) error {
	cell := g.At(p)
	if cell == nil {
		return ErrOutOfBounds
	}
	cell.Content = content
	return nil
}

// EntitiesAt возвращает список сущностей в конкретной клетке
func (g *Grid) EntitiesAt(p Position) []*CellEntity {
	cell := g.At(p)
	if cell == nil {
		return nil
	}
	return cell.Occupants
}

// PlaceEntity кладет сущность в клетку и обновляет ее позицию
func (g *Grid) PlaceEntity(e *CellEntity, p Position) error {
	cell := g.At(p)
	if cell == nil {
		return ErrOutOfBounds
	}
	e.Pos = p
	cell.Occupants = append(cell.Occupants, e)
	return nil
}

// RemoveEntity удаляет сущность из клетки ее текущей позиции.
// Порядок остальных жильцов сохраняется.
func (g *Grid) RemoveEntity(e *CellEntity) bool {
	cell := g.At(e.Pos)
	if cell == nil {
		return false
	}
	for i, other := range cell.Occupants {
		if other == e {
			cell.Occupants = append(cell.Occupants[:i:i], cell.Occupants[i+1:]...)
			return true
		}
	}
	return false
}

// MoveEntity перемещает сущность: старая клетка, позиция и новая клетка меняются вместе
func (g *Grid) MoveEntity(e *CellEntity, to Position) error {
	if !g.InBounds(to) {
		return ErrOutOfBounds
	}
	g.RemoveEntity(e)
	return g.PlaceEntity(e, to)
}

// IsCompletelyFilled возвращает true, если в сетке не осталось пустых клеток
func (g *Grid) IsCompletelyFilled() bool {
	return g.EmptyCount() == 0
}

// EmptyCount считает пустые клетки
func (g *Grid) EmptyCount() int {
	n := 0
	for i := range g.Cells {
		if g.Cells[i].IsEmpty() {
			n++
		}
	}
	return n
}

// Entities собирает всех жильцов сетки в порядке обхода клеток
func (g *Grid) Entities() []*CellEntity {
	var out []*CellEntity
	for i := range g.Cells {
		out = append(out, g.Cells[i].Occupants...)
	}
	return out
}

// Clone делает снимок сетки. Сущности не копируются, копируются только списки ссылок.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Cells: make([]Cell, len(g.Cells))}
	for i, cell := range g.Cells {
		c.Cells[i] = Cell{Pos: cell.Pos, Content: cell.Content}
		if len(cell.Occupants) > 0 {
			c.Cells[i].Occupants = append([]*CellEntity(nil), cell.Occupants...)
		}
	}
	return c
}

// Equal сравнивает содержимое и жильцов двух сеток
func (g *Grid) Equal(other *Grid) bool {
	if g.Width != other.Width || g.Height != other.Height || len(g.Cells) != len(other.Cells) {
		return false
	}
	for i := range g.Cells {
		a, b := &g.Cells[i], &other.Cells[i]
		if a.Pos != b.Pos || a.Content != b.Content || len(a.Occupants) != len(b.Occupants) {
			return false
		}
		for j := range a.Occupants {
			if a.Occupants[j] != b.Occupants[j] {
				return false
			}
		}
	}
	return true
}

// GroupConnectedCells разбивает непустые клетки на компоненты связности
// одного типа (4 направления). Обход построчный, начиная с y = 0.
func GroupConnectedCells(g *Grid) [][]*Cell {
	visited := mapset.New[Position]()
	var groups [][]*Cell

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			start := g.At(Position{X: x, Y: y})
			if start.IsEmpty() || visited.Has(start.Pos) {
				continue
			}

			group := []*Cell{}
			stack := []Position{start.Pos}
			visited.Put(start.Pos)

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cell := g.At(p)
				group = append(group, cell)

				for _, dir := range OrthogonalDirections {
					next := p.Step(dir)
					nc := g.At(next)
					if nc == nil || visited.Has(next) || nc.Content != start.Content {
						continue
					}
					visited.Put(next)
					stack = append(stack, next)
				}
			}

			groups = append(groups, group)
		}
	}

	return groups
}
