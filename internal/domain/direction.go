package domain

import (
	"fmt"
	"strings"
)

// Direction - одно из восьми направлений движения
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirRight
	DirLeft
	DirUpRight
	DirUpLeft
	DirDownRight
	DirDownLeft
)

// Векторы направлений. Y растет вверх.
var directionVectors = [...]Position{
	DirUp:        {X: 0, Y: 1},
	DirDown:      {X: 0, Y: -1},
	DirRight:     {X: 1, Y: 0},
	DirLeft:      {X: -1, Y: 0},
	DirUpRight:   {X: 1, Y: 1},
	DirUpLeft:    {X: -1, Y: 1},
	DirDownRight: {X: 1, Y: -1},
	DirDownLeft:  {X: -1, Y: -1},
}

var directionNames = [...]string{
	DirUp:        "UP",
	DirDown:      "DOWN",
	DirRight:     "RIGHT",
	DirLeft:      "LEFT",
	DirUpRight:   "UP_RIGHT",
	DirUpLeft:    "UP_LEFT",
	DirDownRight: "DOWN_RIGHT",
	DirDownLeft:  "DOWN_LEFT",
}

// Готовые наборы направлений
var (
	OrthogonalDirections = []Direction{DirUp, DirDown, DirRight, DirLeft}
	DiagonalDirections   = []Direction{DirUpRight, DirUpLeft, DirDownRight, DirDownLeft}
	AllDirections        = []Direction{DirUp, DirDown, DirRight, DirLeft, DirUpRight, DirUpLeft, DirDownRight, DirDownLeft}
)

// Vector возвращает единичное смещение направления
func (d Direction) Vector() Position {
	if int(d) < len(directionVectors) {
		return directionVectors[d]
	}
	return Position{}
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "UNKNOWN"
}

// ParseDirection конвертирует строку в Direction
func ParseDirection(s string) (Direction, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range directionNames {
		if name == upper {
			return Direction(i), nil
		}
	}
	return DirUp, fmt.Errorf("unknown direction %q", s)
}

// DirectionFromVector ищет направление по единичному вектору
func DirectionFromVector(dx, dy int) (Direction, bool) {
	for i, v := range directionVectors {
		if v.X == dx && v.Y == dy {
			return Direction(i), true
		}
	}
	return DirUp, false
}
