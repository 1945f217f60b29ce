package domain

// CellEntity - сущность, живущая в клетке лунки или фигуры.
// Шаблонные поля неизменны после создания, в конце структуры - состояние прогона.
type CellEntity struct {
	ID   EntityID   `json:"id"`
	Name string     `json:"name"`
	Kind EntityKind `json:"kind"`

	Group Group `json:"group"`

	// Движение
	MoveDirections     []Direction   `json:"moveDirections"`
	AttackDirections   []Direction   `json:"attackDirections"`
	MovementRange      int           `json:"movementRange"`
	CanChangeDirection bool          `json:"canChangeDirection"`
	Traversable        []ContentType `json:"traversable"`
	AlternateTraversal bool          `json:"alternateTraversal"`
	CanSharePosition   bool          `json:"canSharePosition"`

	// Бой
	CanBeRemoved  bool `json:"canBeRemoved"`
	TargetedValue int  `json:"targetedValue"`

	// Планирование
	TickCategory TickCategory `json:"tickCategory"`
	TickOrder    int          `json:"tickOrder"`
	Action       ActionType   `json:"action"`
	TargetPolicy TargetPolicy `json:"targetPolicy"`
	ManualTarget *Position    `json:"manualTarget,omitempty"`

	// Состояние прогона
	Pos              Position `json:"pos"`
	FailureCount     int      `json:"failureCount"`
	ActionsPerformed int      `json:"actionsPerformed"`
	Removed          bool     `json:"removed"`
}

// IsCombatCapable - может ли сущность вытеснять removable-жильцов
func (e *CellEntity) IsCombatCapable() bool {
	return e.Action.IsCombat()
}

// BlocksFor возвращает true, если сущность e мешает mover войти в ее клетку
func (e *CellEntity) BlocksFor(mover *CellEntity) bool {
	if e == mover || e.CanSharePosition {
		return false
	}
	return !(mover.IsCombatCapable() && e.CanBeRemoved)
}

// EntityTemplate - неизменяемый шаблон, из которого создаются сущности
type EntityTemplate struct {
	Name               string
	Kind               EntityKind
	Group              Group
	MoveDirections     []Direction
	AttackDirections   []Direction
	MovementRange      int
	CanChangeDirection bool
	Traversable        []ContentType
	AlternateTraversal bool
	CanSharePosition   bool
	CanBeRemoved       bool
	TargetedValue      int
	TickCategory       TickCategory
	TickOrder          int
	Action             ActionType
	TargetPolicy       TargetPolicy
	ManualTarget       *Position
}

// Spawn создает сущность из шаблона на заданной позиции
func (t EntityTemplate) Spawn(id EntityID, pos Position) *CellEntity {
	e := &CellEntity{
		ID:                 id,
		Name:               t.Name,
		Kind:               t.Kind,
		Group:              t.Group,
		MoveDirections:     append([]Direction(nil), t.MoveDirections...),
		AttackDirections:   append([]Direction(nil), t.AttackDirections...),
		MovementRange:      t.MovementRange,
		CanChangeDirection: t.CanChangeDirection,
		Traversable:        append([]ContentType(nil), t.Traversable...),
		AlternateTraversal: t.AlternateTraversal,
		CanSharePosition:   t.CanSharePosition,
		CanBeRemoved:       t.CanBeRemoved,
		TargetedValue:      t.TargetedValue,
		TickCategory:       t.TickCategory,
		TickOrder:          t.TickOrder,
		Action:             t.Action,
		TargetPolicy:       t.TargetPolicy,
		Pos:                pos,
	}

	if t.ManualTarget != nil {
		target := *t.ManualTarget
		e.ManualTarget = &target
	}

	// Неподвижные сущности не получают тиков
	if e.Kind == KindStationary {
		e.Action = ActionNone
	}

	return e
}
