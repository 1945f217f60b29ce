package levels

import (
	"fmt"

	"photocrop-server/internal/domain"
)

// TemplateData - шаблон сущности в YAML (строковые перечисления)
type TemplateData struct {
	Name               string           `yaml:"name"`
	Kind               string           `yaml:"kind"`
	Group              string           `yaml:"group"`
	MoveDirections     []string         `yaml:"move_directions,omitempty"`
	AttackDirections   []string         `yaml:"attack_directions,omitempty"`
	MovementRange      int              `yaml:"movement_range"`
	CanChangeDirection bool             `yaml:"can_change_direction"`
	Traversable        []string         `yaml:"traversable,omitempty"`
	AlternateTraversal bool             `yaml:"alternate_traversal,omitempty"`
	CanSharePosition   bool             `yaml:"can_share_position,omitempty"`
	CanBeRemoved       bool             `yaml:"can_be_removed"`
	TargetedValue      int              `yaml:"targeted_value"`
	TickCategory       string           `yaml:"tick_category"`
	TickOrder          int              `yaml:"tick_order"`
	Action             string           `yaml:"action"`
	TargetPolicy       string           `yaml:"target_policy"`
	ManualTarget       *domain.Position `yaml:"manual_target,omitempty"`
}

// ToTemplate конвертирует YAML-шаблон в доменный
func (td TemplateData) ToTemplate() (domain.EntityTemplate, error) {
	t := domain.EntityTemplate{
		Name:               td.Name,
		MovementRange:      td.MovementRange,
		CanChangeDirection: td.CanChangeDirection,
		AlternateTraversal: td.AlternateTraversal,
		CanSharePosition:   td.CanSharePosition,
		CanBeRemoved:       td.CanBeRemoved,
		TargetedValue:      td.TargetedValue,
		TickOrder:          td.TickOrder,
		Action:             domain.ParseActionType(td.Action),
		ManualTarget:       td.ManualTarget,
	}

	var err error
	if t.Kind, err = parseOr(td.Kind, domain.KindStationary, domain.ParseEntityKind); err != nil {
		return t, err
	}
	if t.Group, err = parseOr(td.Group, domain.GroupNeutral, domain.ParseGroup); err != nil {
		return t, err
	}
	if t.TickCategory, err = parseOr(td.TickCategory, domain.TickInsertion, domain.ParseTickCategory); err != nil {
		return t, err
	}
	if t.TargetPolicy, err = parseOr(td.TargetPolicy, domain.TargetOpposingGroup, domain.ParseTargetPolicy); err != nil {
		return t, err
	}
	if t.MoveDirections, err = parseList(td.MoveDirections, domain.ParseDirection); err != nil {
		return t, err
	}
	if t.AttackDirections, err = parseList(td.AttackDirections, domain.ParseDirection); err != nil {
		return t, err
	}
	if t.Traversable, err = parseList(td.Traversable, domain.ParseContentType); err != nil {
		return t, err
	}

	if t.AlternateTraversal && len(t.Traversable) == 0 {
		return t, fmt.Errorf("alternate traversal needs a traversable list")
	}
	return t, nil
}

func parseOr[T any](s string, def T, parse func(string) (T, error)) (T, error) {
	if s == "" {
		return def, nil
	}
	return parse(s)
}

func parseList[T any](in []string, parse func(string) (T, error)) ([]T, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]T, 0, len(in))
	for _, s := range in {
		v, err := parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// --- ШАХМАТЫ (игрок) ---

var Pawn = domain.EntityTemplate{
	Name:             "Пешка",
	Kind:             domain.KindMoving,
	Group:            domain.GroupPlayerA,
	MoveDirections:   []domain.Direction{domain.DirUp},
	AttackDirections: []domain.Direction{domain.DirUpLeft, domain.DirUpRight},
	MovementRange:    1,
	CanBeRemoved:     true,
	TargetedValue:    1,
	TickCategory:     domain.TickInsertion,
	Action:           domain.ActionAttackToTarget,
	TargetPolicy:     domain.TargetOpposingGroup,
}

var Rook = domain.EntityTemplate{
	Name:             "Ладья",
	Kind:             domain.KindMoving,
	Group:            domain.GroupPlayerA,
	MoveDirections:   domain.OrthogonalDirections,
	AttackDirections: domain.OrthogonalDirections,
	MovementRange:    7,
	CanBeRemoved:     true,
	TargetedValue:    5,
	TickCategory:     domain.TickPriority,
	TickOrder:        2,
	Action:           domain.ActionAttackToTarget,
	TargetPolicy:     domain.TargetOpposingGroup,
}

var Bishop = domain.EntityTemplate{
	Name:             "Слон",
	Kind:             domain.KindMoving,
	Group:            domain.GroupPlayerA,
	MoveDirections:   domain.DiagonalDirections,
	AttackDirections: domain.DiagonalDirections,
	MovementRange:    7,
	CanBeRemoved:     true,
	TargetedValue:    3,
	TickCategory:     domain.TickPriority,
	TickOrder:        3,
	Action:           domain.ActionAttackToTarget,
	TargetPolicy:     domain.TargetOpposingGroup,
}

var Queen = domain.EntityTemplate{
	Name:             "Ферзь",
	Kind:             domain.KindMoving,
	Group:            domain.GroupPlayerA,
	MoveDirections:   domain.AllDirections,
	AttackDirections: domain.AllDirections,
	MovementRange:    7,
	CanBeRemoved:     true,
	TargetedValue:    9,
	TickCategory:     domain.TickPriority,
	TickOrder:        1,
	Action:           domain.ActionAttackToTarget,
	TargetPolicy:     domain.TargetOpposingGroup,
}

var King = domain.EntityTemplate{
	Name:               "Король",
	Kind:               domain.KindMoving,
	Group:              domain.GroupPlayerA,
	MoveDirections:     domain.AllDirections,
	AttackDirections:   domain.AllDirections,
	MovementRange:      1,
	CanChangeDirection: true,
	CanBeRemoved:       true,
	TargetedValue:      100,
	TickCategory:       domain.TickPriority,
	TickOrder:          0,
	Action:             domain.ActionAttackToTarget,
	TargetPolicy:       domain.TargetOpposingGroup,
}

// --- ШАХМАТЫ (соперник) ---

var BlackPawn = domain.EntityTemplate{
	Name:          "Черная пешка",
	Kind:          domain.KindStationary,
	Group:         domain.GroupRivalA,
	CanBeRemoved:  true,
	TargetedValue: 1,
}

var BlackKing = domain.EntityTemplate{
	Name:          "Черный король",
	Kind:          domain.KindStationary,
	Group:         domain.GroupRivalA,
	CanBeRemoved:  true,
	TargetedValue: 100,
}

// Бегун по шахматной доске: ходит только по чередующимся цветам
var CheckerRunner = domain.EntityTemplate{
	Name:               "Бегун",
	Kind:               domain.KindMoving,
	Group:              domain.GroupPlayerB,
	MoveDirections:     domain.OrthogonalDirections,
	MovementRange:      3,
	CanChangeDirection: true,
	Traversable:        []domain.ContentType{domain.ContentWhite, domain.ContentBlack},
	AlternateTraversal: true,
	TickCategory:       domain.TickSimultaneous,
	Action:             domain.ActionMoveToTarget,
	TargetPolicy:       domain.TargetOpposingGroup,
}

// --- КИРПИЧИ ---

var BrickGolem = domain.EntityTemplate{
	Name:               "Кирпичный голем",
	Kind:               domain.KindMoving,
	Group:              domain.GroupPlayerA,
	MoveDirections:     domain.OrthogonalDirections,
	AttackDirections:   domain.OrthogonalDirections,
	MovementRange:      2,
	CanChangeDirection: true,
	Traversable:        []domain.ContentType{domain.ContentRed},
	CanBeRemoved:       true,
	TargetedValue:      2,
	TickCategory:       domain.TickInsertion,
	Action:             domain.ActionAttackToTarget,
	TargetPolicy:       domain.TargetOpposingGroup,
}

var Mason = domain.EntityTemplate{
	Name:          "Каменщик",
	Kind:          domain.KindStationary,
	Group:         domain.GroupRivalA,
	CanBeRemoved:  true,
	TargetedValue: 1,
}

var Pillar = domain.EntityTemplate{
	Name:  "Колонна",
	Kind:  domain.KindStationary,
	Group: domain.GroupNeutral,
}

var Ghost = domain.EntityTemplate{
	Name:               "Призрак",
	Kind:               domain.KindMoving,
	Group:              domain.GroupNeutral,
	MoveDirections:     domain.AllDirections,
	MovementRange:      1,
	CanChangeDirection: true,
	CanSharePosition:   true,
	TickCategory:       domain.TickSimultaneous,
	Action:             domain.ActionMoveToTarget,
	TargetPolicy:       domain.TargetRandomEntity,
}

// BuiltinTemplates - библиотека шаблонов по именам, используемым в файлах уровней
var BuiltinTemplates = map[string]domain.EntityTemplate{
	"pawn":           Pawn,
	"rook":           Rook,
	"bishop":         Bishop,
	"queen":          Queen,
	"king":           King,
	"black_pawn":     BlackPawn,
	"black_king":     BlackKing,
	"checker_runner": CheckerRunner,
	"brick_golem":    BrickGolem,
	"mason":          Mason,
	"pillar":         Pillar,
	"ghost":          Ghost,
}
