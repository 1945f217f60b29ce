package systems

import "photocrop-server/internal/domain"

// CanEnter - общий предикат проходимости для планировщика путей и сканера атак.
// phase - номер шага в цикле Traversable (используется при AlternateTraversal).
func CanEnter(g *domain.Grid, mover *domain.CellEntity, p domain.Position, phase int) bool {
	cell := g.At(p)
	if cell == nil {
		return false
	}
	if !ContentAllowed(mover, cell.Content, phase) {
		return false
	}
	return !IsBlocked(cell, mover)
}

// ContentAllowed проверяет тип клетки.
// Пустой список Traversable означает любую заполненную клетку, кроме стены.
func ContentAllowed(mover *domain.CellEntity, content domain.ContentType, phase int) bool {
	if len(mover.Traversable) == 0 {
		return content != domain.ContentEmpty && content != domain.ContentWall
	}
	if mover.AlternateTraversal {
		return content == mover.Traversable[phase%len(mover.Traversable)]
	}
	for _, t := range mover.Traversable {
		if t == content {
			return true
		}
	}
	return false
}

// IsBlocked - есть ли в клетке жилец, который не пускает mover
func IsBlocked(cell *domain.Cell, mover *domain.CellEntity) bool {
	for _, o := range cell.Occupants {
		if o.BlocksFor(mover) {
			return true
		}
	}
	return false
}

// nextPhase сдвигает фазу чередования после шага
func nextPhase(mover *domain.CellEntity, phase int) int {
	if !mover.AlternateTraversal || len(mover.Traversable) == 0 {
		return phase
	}
	return (phase + 1) % len(mover.Traversable)
}
