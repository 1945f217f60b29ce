package domain

import (
	"fmt"
	"strings"
)

// ContentType - тип содержимого клетки
type ContentType uint8

const (
	ContentEmpty ContentType = iota
	ContentWall
	ContentRed
	ContentGreen
	ContentBlue
	ContentYellow
	ContentWhite
	ContentBlack
)

var contentStringToType = map[string]ContentType{
	"EMPTY":  ContentEmpty,
	"WALL":   ContentWall,
	"RED":    ContentRed,
	"GREEN":  ContentGreen,
	"BLUE":   ContentBlue,
	"YELLOW": ContentYellow,
	"WHITE":  ContentWhite,
	"BLACK":  ContentBlack,
}

var contentTypeToString = map[ContentType]string{
	ContentEmpty:  "EMPTY",
	ContentWall:   "WALL",
	ContentRed:    "RED",
	ContentGreen:  "GREEN",
	ContentBlue:   "BLUE",
	ContentYellow: "YELLOW",
	ContentWhite:  "WHITE",
	ContentBlack:  "BLACK",
}

// Символы текстовых раскладок (уровни YAML, терминальный просмотрщик)
var contentGlyphs = map[ContentType]rune{
	ContentEmpty:  '.',
	ContentWall:   '#',
	ContentRed:    'R',
	ContentGreen:  'G',
	ContentBlue:   'B',
	ContentYellow: 'Y',
	ContentWhite:  'W',
	ContentBlack:  'K',
}

// ParseContentType конвертирует строку в ContentType
func ParseContentType(s string) (ContentType, error) {
	if val, ok := contentStringToType[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return val, nil
	}
	return ContentEmpty, fmt.Errorf("unknown content type %q", s)
}

// ParseContentGlyph конвертирует символ раскладки в ContentType
func ParseContentGlyph(r rune) (ContentType, error) {
	for t, g := range contentGlyphs {
		if g == r {
			return t, nil
		}
	}
	return ContentEmpty, fmt.Errorf("unknown layout glyph %q", r)
}

func (c ContentType) String() string {
	if val, ok := contentTypeToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// Glyph возвращает символ для текстовой раскладки
func (c ContentType) Glyph() rune {
	if g, ok := contentGlyphs[c]; ok {
		return g
	}
	return '?'
}

// MarshalText отдает тип строкой (JSON/YAML)
func (c ContentType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText парсит тип из строки
func (c *ContentType) UnmarshalText(text []byte) error {
	v, err := ParseContentType(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// EntityKind - подвижность сущности
type EntityKind uint8

const (
	KindStationary EntityKind = iota
	KindMoving
)

var kindStringToType = map[string]EntityKind{
	"STATIONARY": KindStationary,
	"MOVING":     KindMoving,
}

// ParseEntityKind конвертирует строку в EntityKind
func ParseEntityKind(s string) (EntityKind, error) {
	if val, ok := kindStringToType[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return val, nil
	}
	return KindStationary, fmt.Errorf("unknown entity kind %q", s)
}

func (k EntityKind) String() string {
	if k == KindMoving {
		return "MOVING"
	}
	return "STATIONARY"
}

// Group - фракция сущности
type Group uint8

const (
	GroupNeutral Group = iota
	GroupPlayerA
	GroupPlayerB
	GroupRivalA
	GroupRivalB
)

var groupStringToType = map[string]Group{
	"NEUTRAL":  GroupNeutral,
	"PLAYER_A": GroupPlayerA,
	"PLAYER_B": GroupPlayerB,
	"RIVAL_A":  GroupRivalA,
	"RIVAL_B":  GroupRivalB,
}

var groupTypeToString = map[Group]string{
	GroupNeutral: "NEUTRAL",
	GroupPlayerA: "PLAYER_A",
	GroupPlayerB: "PLAYER_B",
	GroupRivalA:  "RIVAL_A",
	GroupRivalB:  "RIVAL_B",
}

// ParseGroup конвертирует строку в Group
func ParseGroup(s string) (Group, error) {
	if val, ok := groupStringToType[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return val, nil
	}
	return GroupNeutral, fmt.Errorf("unknown group %q", s)
}

func (g Group) String() string {
	if val, ok := groupTypeToString[g]; ok {
		return val
	}
	return "UNKNOWN"
}

// TickCategory - категория подписки в планировщике тиков
type TickCategory uint8

const (
	TickPriority TickCategory = iota
	TickInsertion
	TickSimultaneous
)

var tickStringToType = map[string]TickCategory{
	"PRIORITY":     TickPriority,
	"INSERTION":    TickInsertion,
	"SIMULTANEOUS": TickSimultaneous,
}

var tickTypeToString = map[TickCategory]string{
	TickPriority:     "PRIORITY",
	TickInsertion:    "INSERTION",
	TickSimultaneous: "SIMULTANEOUS",
}

// ParseTickCategory конвертирует строку в TickCategory
func ParseTickCategory(s string) (TickCategory, error) {
	if val, ok := tickStringToType[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return val, nil
	}
	return TickPriority, fmt.Errorf("unknown tick category %q", s)
}

func (t TickCategory) String() string {
	if val, ok := tickTypeToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

// TargetPolicy - правило выбора цели
type TargetPolicy uint8

const (
	TargetOpposingGroup TargetPolicy = iota
	TargetSameGroup
	TargetRandomEntity
	TargetManual
)

var policyStringToType = map[string]TargetPolicy{
	"OPPOSING_GROUP": TargetOpposingGroup,
	"SAME_GROUP":     TargetSameGroup,
	"RANDOM_ENTITY":  TargetRandomEntity,
	"MANUAL":         TargetManual,
}

var policyTypeToString = map[TargetPolicy]string{
	TargetOpposingGroup: "OPPOSING_GROUP",
	TargetSameGroup:     "SAME_GROUP",
	TargetRandomEntity:  "RANDOM_ENTITY",
	TargetManual:        "MANUAL",
}

// ParseTargetPolicy конвертирует строку в TargetPolicy
func ParseTargetPolicy(s string) (TargetPolicy, error) {
	if val, ok := policyStringToType[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return val, nil
	}
	return TargetOpposingGroup, fmt.Errorf("unknown target policy %q", s)
}

func (p TargetPolicy) String() string {
	if val, ok := policyTypeToString[p]; ok {
		return val
	}
	return "UNKNOWN"
}

// World - тематический мир уровня
type World uint8

const (
	WorldBricks World = iota
	WorldChess
)

var worldStringToType = map[string]World{
	"BRICKS": WorldBricks,
	"CHESS":  WorldChess,
}

// ParseWorld конвертирует строку в World
func ParseWorld(s string) (World, error) {
	if val, ok := worldStringToType[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return val, nil
	}
	return WorldBricks, fmt.Errorf("unknown world %q", s)
}

func (w World) String() string {
	if w == WorldChess {
		return "CHESS"
	}
	return "BRICKS"
}

// MarshalText отдает мир строкой (JSON/YAML)
func (w World) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText парсит мир из строки
func (w *World) UnmarshalText(text []byte) error {
	v, err := ParseWorld(string(text))
	if err != nil {
		return err
	}
	*w = v
	return nil
}
