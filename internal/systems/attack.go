package systems

import (
	"photocrop-server/internal/domain"
	"photocrop-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// AttackPlan - выбранная цель атаки и маршрут до ее клетки включительно
type AttackPlan struct {
	Target *domain.CellEntity
	Path   Path
}

// IsValidTarget проверяет цель по политике атакующего
func IsValidTarget(attacker, other *domain.CellEntity) bool {
	if other == attacker || other.Removed || !other.CanBeRemoved {
		return false
	}

	switch attacker.TargetPolicy {
	case domain.TargetOpposingGroup:
		return other.Group != attacker.Group
	case domain.TargetSameGroup:
		return other.Group == attacker.Group
	case domain.TargetRandomEntity:
		return true
	case domain.TargetManual:
		return attacker.ManualTarget != nil && other.Pos == *attacker.ManualTarget
	}
	return false
}

// ResolveAttack ищет цели в пределах MovementRange.
// Без смены направления - прямые лучи по AttackDirections, иначе - поиск в ширину.
// Из кандидатов выбирается минимальный TargetedValue, при равенстве - найденный первым.
func ResolveAttack(g *domain.Grid, attacker *domain.CellEntity) *AttackPlan {
	if !attacker.IsCombatCapable() || attacker.MovementRange <= 0 {
		return nil
	}

	var candidates []AttackPlan
	if attacker.CanChangeDirection {
		candidates = scanExpanding(g, attacker)
	} else {
		candidates = scanRays(g, attacker)
	}

	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Target.TargetedValue < best.Target.TargetedValue {
			best = c
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "attack_system",
		"attacker":   attacker.ID.String(),
		"target":     best.Target.ID.String(),
		"candidates": len(candidates),
	}).Debug("Attack target resolved")

	return &best
}

// firstTarget - первый подходящий жилец клетки в порядке добавления
func firstTarget(cell *domain.Cell, attacker *domain.CellEntity) *domain.CellEntity {
	for _, o := range cell.Occupants {
		if IsValidTarget(attacker, o) {
			return o
		}
	}
	return nil
}

// scanRays - прямые лучи, луч обрывается на блокирующем жильце или непроходимой клетке
func scanRays(g *domain.Grid, attacker *domain.CellEntity) []AttackPlan {
	var candidates []AttackPlan

	for _, dir := range attacker.AttackDirections {
		p := attacker.Pos
		phase := 0
		var steps []domain.Position

		for k := 0; k < attacker.MovementRange; k++ {
			p = p.Step(dir)
			cell := g.At(p)
			if cell == nil || !ContentAllowed(attacker, cell.Content, phase) || IsBlocked(cell, attacker) {
				break
			}
			steps = append(steps, p)

			if target := firstTarget(cell, attacker); target != nil {
				candidates = append(candidates, AttackPlan{
					Target: target,
					Path:   Path{Steps: steps, Unblocked: true},
				})
				break
			}
			phase = nextPhase(attacker, phase)
		}
	}

	return candidates
}

// scanExpanding - поиск в ширину по AttackDirections глубиной до MovementRange.
// Через клетку с целью поиск дальше не идет.
func scanExpanding(g *domain.Grid, attacker *domain.CellEntity) []AttackPlan {
	type node struct {
		state searchState
		depth int
	}

	var candidates []AttackPlan
	start := searchState{Pos: attacker.Pos}
	visited := mapset.New[searchState]()
	visited.Put(start)
	cameFrom := make(map[searchState]searchState)
	found := mapset.New[*domain.CellEntity]()
	queue := []node{{state: start}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.depth >= attacker.MovementRange {
			continue
		}

		for _, dir := range attacker.AttackDirections {
			next := searchState{Pos: current.state.Pos.Step(dir), Phase: nextPhase(attacker, current.state.Phase)}
			if visited.Has(next) || !CanEnter(g, attacker, next.Pos, current.state.Phase) {
				continue
			}
			visited.Put(next)
			cameFrom[next] = current.state

			if target := firstTarget(g.At(next.Pos), attacker); target != nil {
				if !found.Has(target) {
					found.Put(target)
					candidates = append(candidates, AttackPlan{
						Target: target,
						Path:   Path{Steps: rebuildBFS(cameFrom, start, next), Unblocked: true},
					})
				}
				continue
			}

			queue = append(queue, node{state: next, depth: current.depth + 1})
		}
	}

	return candidates
}

// ExecuteAttack проводит атакующего по маршруту плана и вытесняет цель
func ExecuteAttack(g *domain.Grid, attacker *domain.CellEntity, plan *AttackPlan) MovementResult {
	res := ExecuteMovement(g, attacker, plan.Path)

	// Цель с CanSharePosition не вытесняется по пути - убираем явно
	if !plan.Target.Removed && res.To == plan.Target.Pos && plan.Path.End(res.From) == res.To {
		evict(g, plan.Target)
		res.Evicted = append(res.Evicted, plan.Target)
	}

	return res
}
