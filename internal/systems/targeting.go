package systems

import (
	"math/rand"

	"photocrop-server/internal/domain"
)

// TargetChoice - результат выбора цели движения
type TargetChoice struct {
	Target *domain.CellEntity // nil для ручной цели
	Goal   domain.Position
	Path   Path
	Found  bool
}

// SelectTarget выбирает цель движения по TargetPolicy.
// Для групповых политик предпочитается кратчайший достижимый путь, затем кратчайший запасной.
// roster - все сущности прогона; удаленные и сам mover пропускаются.
func SelectTarget(g *domain.Grid, mover *domain.CellEntity, roster []*domain.CellEntity, rng *rand.Rand) TargetChoice {
	switch mover.TargetPolicy {
	case domain.TargetManual:
		if mover.ManualTarget == nil {
			return TargetChoice{}
		}
		goal := *mover.ManualTarget
		return TargetChoice{Goal: goal, Path: PlanPath(g, mover, goal), Found: true}

	case domain.TargetRandomEntity:
		return selectRandom(g, mover, candidatesFor(mover, roster), rng)

	default:
		return selectNearest(g, mover, candidatesFor(mover, roster))
	}
}

func candidatesFor(mover *domain.CellEntity, roster []*domain.CellEntity) []*domain.CellEntity {
	var out []*domain.CellEntity
	for _, other := range roster {
		if other == mover || other.Removed {
			continue
		}
		switch mover.TargetPolicy {
		case domain.TargetOpposingGroup:
			if other.Group == mover.Group {
				continue
			}
		case domain.TargetSameGroup:
			if other.Group != mover.Group {
				continue
			}
		}
		out = append(out, other)
	}
	return out
}

func selectNearest(g *domain.Grid, mover *domain.CellEntity, candidates []*domain.CellEntity) TargetChoice {
	var best TargetChoice
	for _, c := range candidates {
		path := PlanPath(g, mover, c.Pos)
		if !best.Found || better(path, best.Path) {
			best = TargetChoice{Target: c, Goal: c.Pos, Path: path, Found: true}
		}
	}
	return best
}

// better: достижимый путь лучше недостижимого, затем короче
func better(a, b Path) bool {
	if a.Unblocked != b.Unblocked {
		return a.Unblocked
	}
	return a.Len() < b.Len()
}

func selectRandom(g *domain.Grid, mover *domain.CellEntity, candidates []*domain.CellEntity, rng *rand.Rand) TargetChoice {
	if len(candidates) == 0 {
		return TargetChoice{}
	}

	paths := make([]Path, len(candidates))
	var reachable []int
	for i, c := range candidates {
		paths[i] = PlanPath(g, mover, c.Pos)
		if paths[i].Unblocked {
			reachable = append(reachable, i)
		}
	}

	var idx int
	if len(reachable) > 0 {
		idx = reachable[rng.Intn(len(reachable))]
	} else {
		idx = rng.Intn(len(candidates))
	}

	c := candidates[idx]
	return TargetChoice{Target: c, Goal: c.Pos, Path: paths[idx], Found: true}
}
