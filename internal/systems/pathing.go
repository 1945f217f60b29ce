package systems

import (
	"photocrop-server/internal/domain"

	"github.com/zyedidia/generic/mapset"
)

// Path - маршрут без стартовой клетки.
// Unblocked == false: цель недостижима, маршрут ведет к ближайшей (по прямой) достижимой клетке.
type Path struct {
	Steps     []domain.Position `json:"steps"`
	Unblocked bool              `json:"unblocked"`
}

// Len - число шагов
func (p Path) Len() int {
	return len(p.Steps)
}

// End - конечная точка маршрута (или start для пустого)
func (p Path) End(start domain.Position) domain.Position {
	if len(p.Steps) == 0 {
		return start
	}
	return p.Steps[len(p.Steps)-1]
}

// searchState - вершина поиска: клетка + фаза чередования типов
type searchState struct {
	Pos   domain.Position
	Phase int
}

// PlanPath выбирает алгоритм по флагу CanChangeDirection
func PlanPath(g *domain.Grid, mover *domain.CellEntity, target domain.Position) Path {
	if mover.CanChangeDirection {
		return FindPathBFS(g, mover, target)
	}
	return FindPathFewestTurns(g, mover, target)
}

// FindPathBFS - поиск в ширину по разрешенным направлениям движения.
// Возвращает кратчайший путь до цели, иначе путь до ближайшей к цели посещенной клетки.
func FindPathBFS(g *domain.Grid, mover *domain.CellEntity, target domain.Position) Path {
	start := searchState{Pos: mover.Pos}
	if start.Pos == target {
		return Path{Unblocked: true}
	}

	visited := mapset.New[searchState]()
	visited.Put(start)
	cameFrom := make(map[searchState]searchState)
	queue := []searchState{start}

	best := start
	bestDist := start.Pos.DistanceSquaredTo(target)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.Pos == target {
			return Path{Steps: rebuildBFS(cameFrom, start, current), Unblocked: true}
		}

		for _, dir := range mover.MoveDirections {
			next := searchState{Pos: current.Pos.Step(dir), Phase: nextPhase(mover, current.Phase)}
			if visited.Has(next) || !CanEnter(g, mover, next.Pos, current.Phase) {
				continue
			}

			visited.Put(next)
			cameFrom[next] = current
			queue = append(queue, next)

			// При равенстве остается более ранняя (более короткая) вершина
			if d := next.Pos.DistanceSquaredTo(target); d < bestDist {
				best, bestDist = next, d
			}
		}
	}

	return Path{Steps: rebuildBFS(cameFrom, start, best), Unblocked: false}
}

func rebuildBFS(cameFrom map[searchState]searchState, start, end searchState) []domain.Position {
	var steps []domain.Position
	for step := end; step != start; step = cameFrom[step] {
		steps = append(steps, step.Pos)
	}
	// Разворачиваем: от старта к цели
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}

// turnKey - закрытое множество поиска с минимумом поворотов
type turnKey struct {
	Pos   domain.Position
	Dir   int
	Phase int
}

// FindPathFewestTurns - поиск с минимальным числом смен направления.
// Порядок: (повороты, расстояние до цели, y, x). Из каждой вершины тянутся прямые
// пробеги по всем разрешенным направлениям до упора, поворот засчитывается, только если
// направление отличается от шага, которым пришли в вершину.
func FindPathFewestTurns(g *domain.Grid, mover *domain.CellEntity, target domain.Position) Path {
	start := &turnNode{Pos: mover.Pos, Dir: noDirection, Dist: mover.Pos.DistanceSquaredTo(target)}
	if start.Pos == target {
		return Path{Unblocked: true}
	}

	open := newTurnQueue()
	open.push(start)
	closed := mapset.New[turnKey]()

	best := start

	for open.Len() > 0 {
		current := open.pop()
		key := turnKey{Pos: current.Pos, Dir: current.Dir, Phase: current.Phase}
		if closed.Has(key) {
			continue
		}
		closed.Put(key)

		if current.Dist < best.Dist {
			best = current
		}

		if current.Pos == target {
			return Path{Steps: expandRuns(mover.Pos, current), Unblocked: true}
		}

		for _, dir := range mover.MoveDirections {
			turns := current.Turns
			if current.Dir != noDirection && int(dir) != current.Dir {
				turns++
			}

			// Прямой пробег до упора, каждая клетка пробега - вершина
			p, phase := current.Pos, current.Phase
			for {
				next := p.Step(dir)
				if !CanEnter(g, mover, next, phase) {
					break
				}
				p, phase = next, nextPhase(mover, phase)

				if closed.Has(turnKey{Pos: p, Dir: int(dir), Phase: phase}) {
					continue
				}
				open.push(&turnNode{
					Pos:    p,
					Dir:    int(dir),
					Phase:  phase,
					Turns:  turns,
					Dist:   p.DistanceSquaredTo(target),
					Parent: current,
				})
			}
		}
	}

	return Path{Steps: expandRuns(mover.Pos, best), Unblocked: false}
}

// expandRuns собирает концы пробегов от старта к end и
// раскладывает каждый пробег на единичные шаги.
func expandRuns(start domain.Position, end *turnNode) []domain.Position {
	var waypoints []domain.Position
	for n := end; n != nil && n.Parent != nil; n = n.Parent {
		waypoints = append(waypoints, n.Pos)
	}

	var steps []domain.Position
	prev := start
	for i := len(waypoints) - 1; i >= 0; i-- {
		wp := waypoints[i]
		for prev != wp {
			prev = prev.StepToward(wp)
			steps = append(steps, prev)
		}
	}
	return steps
}
