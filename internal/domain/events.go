package domain

// MoveEvent - перемещение сущности за один тик (для анимации снаружи ядра)
type MoveEvent struct {
	EntityID EntityID   `json:"entityId"`
	From     Position   `json:"from"`
	To       Position   `json:"to"`
	Steps    []Position `json:"steps"`
}

// EvictionEvent - вытеснение removable-сущности
type EvictionEvent struct {
	EntityID EntityID `json:"entityId"`
	By       EntityID `json:"by"`
	At       Position `json:"at"`
}

// TickReport - все изменения занятости за один тик
type TickReport struct {
	Tick          int             `json:"tick"`
	Moves         []MoveEvent     `json:"moves,omitempty"`
	Evictions     []EvictionEvent `json:"evictions,omitempty"`
	Unsubscribed  []EntityID      `json:"unsubscribed,omitempty"`
	SchedulerIdle bool            `json:"schedulerIdle"`
}

// IsEmpty - ничего не поменялось
func (r *TickReport) IsEmpty() bool {
	return len(r.Moves) == 0 && len(r.Evictions) == 0 && len(r.Unsubscribed) == 0
}

// CropOutcome - итог обрезки текущей фигуры
type CropOutcome struct {
	Pieces    int  `json:"pieces"`    // сколько фигур отрезано
	Placed    int  `json:"placed"`    // сколько легло в лунку
	Returned  int  `json:"returned"`  // сколько вернулось в набор фигур
	Exhausted bool `json:"exhausted"` // исходная фигура опустела и убрана
}
