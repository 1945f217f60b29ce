package api

import (
	"encoding/json"
)

// Типы сообщений сервера
const (
	MsgUpdate = "UPDATE" // полный снимок сессии
	MsgTick   = "TICK"   // снимок + изменения за тик симуляции
	MsgResult = "RESULT" // итог уровня
	MsgError  = "ERROR"  // команда отклонена
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Содержит полный снимок сессии: лунку, сущности, набор фигур и состояние симуляции.
type ServerResponse struct {
	// Type тип сообщения: UPDATE, TICK, RESULT, ERROR.
	Type string `json:"type"`

	// Tick номер тика симуляции (0 вне симуляции).
	Tick int `json:"tick"`

	// Stage стадия уровня: BUILDING, SIMULATING, FINISHED.
	Stage string `json:"stage"`

	Level *LevelView `json:"level,omitempty"`

	// Grid метаданные о размере лунки.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map все клетки лунки.
	Map []TileView `json:"map,omitempty"`

	// Entities все живые сущности в лунке.
	Entities []EntityView `json:"entities,omitempty"`

	// Shapes оставшиеся фигуры игрока, Current - индекс выбранной.
	Shapes  []ShapeView  `json:"shapes,omitempty"`
	Current int          `json:"current"`
	Anchor  PositionView `json:"anchor"`

	Counters CountersView `json:"counters"`

	// Changes изменения занятости за последний тик.
	Changes *TickView `json:"changes,omitempty"`

	// Result итог уровня (только для RESULT).
	Result *ResultView `json:"result,omitempty"`

	// Logs новые сообщения с прошлой рассылки.
	Logs []LogEntry `json:"logs,omitempty"`
}

// LevelView - идентификатор уровня
type LevelView struct {
	World  string `json:"world"`
	Number int    `json:"number"`
	Name   string `json:"name,omitempty"`
}

// GridMeta содержит размеры лунки.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// PositionView - координаты клетки
type PositionView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TileView это DTO для одной клетки.
type TileView struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Content string `json:"content"`
	Symbol  string `json:"symbol"`
}

// EntityView это DTO для сущности.
type EntityView struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Kind    string       `json:"kind"`
	Group   string       `json:"group"`
	Action  string       `json:"action"`
	Pos     PositionView `json:"pos"`
	Removed bool         `json:"removed,omitempty"`

	FailureCount     int `json:"failureCount,omitempty"`
	ActionsPerformed int `json:"actionsPerformed,omitempty"`
}

// ShapeView это DTO для фигуры игрока. Координаты клеток - относительно центра.
type ShapeView struct {
	Size     int          `json:"size"`
	Cells    []TileView   `json:"cells"`
	Entities []EntityView `json:"entities,omitempty"`
}

// CountersView - счетчики сессии
type CountersView struct {
	ShapesPlaced int `json:"shapesPlaced"`
	CropsUsed    int `json:"cropsUsed"`
	ShapesLeft   int `json:"shapesLeft"`
}

// MoveView - перемещение за тик
type MoveView struct {
	EntityID string         `json:"entityId"`
	From     PositionView   `json:"from"`
	To       PositionView   `json:"to"`
	Steps    []PositionView `json:"steps,omitempty"`
}

// EvictionView - вытеснение за тик
type EvictionView struct {
	EntityID string       `json:"entityId"`
	By       string       `json:"by"`
	At       PositionView `json:"at"`
}

// TickView - изменения занятости за тик
type TickView struct {
	Moves        []MoveView     `json:"moves,omitempty"`
	Evictions    []EvictionView `json:"evictions,omitempty"`
	Unsubscribed []string       `json:"unsubscribed,omitempty"`
	Idle         bool           `json:"idle"`
}

// GoalView - цель уровня
type GoalView struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Completed   bool   `json:"completed"`
}

// ResultView - итог уровня
type ResultView struct {
	Completed  bool       `json:"completed"`
	Goals      []GoalView `json:"goals"`
	GridFilled bool       `json:"gridFilled"`
	Survivors  int        `json:"survivors"`
}

// LogEntry представляет одну запись в логе сессии.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, SIMULATION, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token идентификатор клиента. Обязателен для первого сообщения (логин).
	Token string `json:"token,omitempty"`

	// Action название команды: INIT, SELECT, ROTATE, PLACE, CROP, START, RESET.
	Action string `json:"action"`

	// Payload JSON-объект с данными команды. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// SelectPayload выбирает фигуру: сдвиг по кругу (Delta) или точный индекс.
type SelectPayload struct {
	Delta int  `json:"delta,omitempty"`
	Index *int `json:"index,omitempty"`
}

// PositionPayload - точка привязки фигуры в лунке (PLACE).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CropPayload - точка привязки и окно обрезки в координатах фигуры (CROP).
type CropPayload struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	MinX int `json:"minX"`
	MaxX int `json:"maxX"`
	MinY int `json:"minY"`
	MaxY int `json:"maxY"`
}
