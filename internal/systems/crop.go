package systems

import (
	"fmt"

	"photocrop-server/internal/domain"

	"github.com/zyedidia/generic/mapset"
)

// CropWindow - прямоугольник смещений (включительно), который остается в фигуре
type CropWindow struct {
	MinX int `json:"minX"`
	MaxX int `json:"maxX"`
	MinY int `json:"minY"`
	MaxY int `json:"maxY"`
}

// DefaultCropWindow - окно во всю раскладку (ничего не обрезает)
func DefaultCropWindow(size int) CropWindow {
	c := domain.NormalizeShapeSize(size) / 2
	return CropWindow{MinX: -c, MaxX: c, MinY: -c, MaxY: c}
}

// Validate проверяет, что окно непустое и лежит внутри раскладки
func (w CropWindow) Validate(size int) error {
	c := size / 2
	if w.MinX > w.MaxX || w.MinY > w.MaxY {
		return fmt.Errorf("crop window is empty: %+v", w)
	}
	if w.MinX < -c || w.MaxX > c || w.MinY < -c || w.MaxY > c {
		return fmt.Errorf("crop window %+v exceeds shape of size %d", w, size)
	}
	return nil
}

// Contains - смещение внутри окна
func (w CropWindow) Contains(p domain.Position) bool {
	return p.X >= w.MinX && p.X <= w.MaxX && p.Y >= w.MinY && p.Y <= w.MaxY
}

// Offsets - все смещения окна построчно
func (w CropWindow) Offsets() []domain.Position {
	var out []domain.Position
	for y := w.MinY; y <= w.MaxY; y++ {
		for x := w.MinX; x <= w.MaxX; x++ {
			out = append(out, domain.Position{X: x, Y: y})
		}
	}
	return out
}

// Crop очищает заполненные клетки фигуры вне окна и собирает их
// в новые фигуры того же размера: по одной на каждую 8-связную группу.
// Сущности переезжают в новые фигуры вместе с клетками.
func Crop(s *domain.Shape, window []domain.Position) []*domain.Shape {
	keep := mapset.New[domain.Position]()
	for _, p := range window {
		keep.Put(p)
	}

	// 1. Вырезаем клетки вне окна
	var removed []domain.Cell
	for i := range s.Cells {
		cell := &s.Cells[i]
		if cell.IsEmpty() || keep.Has(cell.Pos) {
			continue
		}
		removed = append(removed, *cell)
		s.Cells[i] = domain.Cell{Pos: cell.Pos, Content: domain.ContentEmpty}
	}

	if len(removed) == 0 {
		return nil
	}

	// 2. Группируем по 8-связности
	byPos := make(map[domain.Position]domain.Cell, len(removed))
	for _, c := range removed {
		byPos[c.Pos] = c
	}

	visited := mapset.New[domain.Position]()
	var pieces []*domain.Shape

	for _, seed := range removed {
		if visited.Has(seed.Pos) {
			continue
		}

		piece := domain.NewShape(s.Size)
		stack := []domain.Position{seed.Pos}
		visited.Put(seed.Pos)

		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			src := byPos[p]
			dst := piece.At(p)
			dst.Content = src.Content
			dst.Occupants = src.Occupants

			for _, dir := range domain.AllDirections {
				n := p.Step(dir)
				if _, ok := byPos[n]; ok && !visited.Has(n) {
					visited.Put(n)
					stack = append(stack, n)
				}
			}
		}

		pieces = append(pieces, piece)
	}

	return pieces
}
