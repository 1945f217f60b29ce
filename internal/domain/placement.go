package domain

// TryPlaceShape кладет фигуру в сетку так, что центр фигуры попадает в anchor.
// Сначала проверяются все заполненные клетки (в границах и пустые в сетке),
// и только если проверка прошла целиком, сетка меняется. При отказе сетка не трогается.
func TryPlaceShape(g *Grid, s *Shape, anchor Position) bool {
	// 1. Валидация
	for i := range s.Cells {
		cell := &s.Cells[i]
		if cell.IsEmpty() {
			continue
		}
		target := g.At(anchor.Add(cell.Pos))
		if target == nil || !target.IsEmpty() {
			return false
		}
	}

	// 2. Коммит: тип клетки и пассажиры
	for i := range s.Cells {
		cell := &s.Cells[i]
		if cell.IsEmpty() {
			continue
		}
		p := anchor.Add(cell.Pos)
		target := g.At(p)
		target.Content = cell.Content

		for _, e := range cell.Occupants {
			e.Pos = p
			target.Occupants = append(target.Occupants, e)
		}
		cell.Occupants = nil
	}

	return true
}
