package domain

import "math"

// DistanceTo возвращает точное (евклидово) расстояние до другой точки
func (p Position) DistanceTo(other Position) float64 {
	return math.Sqrt(float64(p.DistanceSquaredTo(other)))
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (p Position) IsAdjacent(other Position) bool {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

// Shift возвращает новую позицию со смещением
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Add прибавляет смещение клетки фигуры к якорю
func (p Position) Add(offset Position) Position {
	return Position{X: p.X + offset.X, Y: p.Y + offset.Y}
}

// Step делает шаг в направлении dir
func (p Position) Step(dir Direction) Position {
	v := dir.Vector()
	return Position{X: p.X + v.X, Y: p.Y + v.Y}
}

// StepToward делает единичный шаг к цели по каждой оси (зажатый линейный шаг).
func (p Position) StepToward(target Position) Position {
	return Position{X: p.X + sign(target.X-p.X), Y: p.Y + sign(target.Y-p.Y)}
}

// DirectionTo возвращает направление единичного шага from -> to.
// ok == false, если точки не соседние.
func (p Position) DirectionTo(next Position) (Direction, bool) {
	return DirectionFromVector(next.X-p.X, next.Y-p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
