package systems

import (
	"photocrop-server/internal/domain"
)

// MovementResult - результат исполнения маршрута за один тик
type MovementResult struct {
	From          domain.Position
	To            domain.Position
	Steps         []domain.Position    // реально пройденные клетки
	Evicted       []*domain.CellEntity // вытесненные по пути
	StoppedByTurn bool                 // остановились перед сменой направления
}

// HasMoved - позиция изменилась
func (r MovementResult) HasMoved() bool {
	return r.From != r.To
}

// ExecuteMovement двигает сущность по маршруту не дальше MovementRange шагов.
// Меняет состояние сетки: занятость клеток и позицию сущности.
func ExecuteMovement(g *domain.Grid, mover *domain.CellEntity, path Path) MovementResult {
	res := MovementResult{From: mover.Pos, To: mover.Pos}

	limit := mover.MovementRange
	if limit > len(path.Steps) {
		limit = len(path.Steps)
	}

	var runDir domain.Direction
	hasDir := false
	phase := 0
	prev := mover.Pos

	for i := 0; i < limit; i++ {
		next := path.Steps[i]

		// 1. Шаг должен быть единичным
		dir, ok := prev.DirectionTo(next)
		if !ok {
			break
		}

		// 2. Смена направления посреди пробега
		if hasDir && dir != runDir && !mover.CanChangeDirection {
			res.StoppedByTurn = true
			break
		}
		runDir, hasDir = dir, true

		// 3. Клетка могла измениться с момента планирования
		if !CanEnter(g, mover, next, phase) {
			break
		}
		phase = nextPhase(mover, phase)

		res.Evicted = append(res.Evicted, evictRemovable(g, mover, next)...)
		if err := g.MoveEntity(mover, next); err != nil {
			break
		}

		res.Steps = append(res.Steps, next)
		prev = next
	}

	res.To = mover.Pos
	return res
}

// evictRemovable убирает из клетки removable-жильцов, мешающих боевой сущности
func evictRemovable(g *domain.Grid, mover *domain.CellEntity, p domain.Position) []*domain.CellEntity {
	if !mover.IsCombatCapable() {
		return nil
	}

	cell := g.At(p)
	if cell == nil {
		return nil
	}

	var evicted []*domain.CellEntity
	// Копия: RemoveEntity меняет слайс жильцов
	occupants := append([]*domain.CellEntity(nil), cell.Occupants...)
	for _, o := range occupants {
		if o == mover || o.CanSharePosition || !o.CanBeRemoved {
			continue
		}
		evict(g, o)
		evicted = append(evicted, o)
	}
	return evicted
}

func evict(g *domain.Grid, e *domain.CellEntity) {
	g.RemoveEntity(e)
	e.Removed = true
}
