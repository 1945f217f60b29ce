package domain

import "testing"

// shapeFromRows строит фигуру из строк раскладки: первая строка - верхний ряд (y = +c)
func shapeFromRows(t *testing.T, rows ...string) *Shape {
	t.Helper()
	s := NewShape(len(rows))
	c := s.Center()
	for r, row := range rows {
		for col, ch := range row {
			content, err := ParseContentGlyph(ch)
			if err != nil {
				t.Fatalf("bad glyph: %v", err)
			}
			if err := s.Set(Position{X: col - c, Y: c - r}, content); err != nil {
				t.Fatalf("set: %v", err)
			}
		}
	}
	return s
}

func createTestGrid(w, h int) *Grid {
	return NewGrid(w, h)
}
