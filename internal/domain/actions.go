package domain

import "strings"

// ActionType - действие сущности на тике
type ActionType uint8

const (
	ActionNone ActionType = iota
	ActionMoveToTarget
	ActionAttackToTarget
)

var actionStringToType = map[string]ActionType{
	"NONE":             ActionNone,
	"MOVE_TO_TARGET":   ActionMoveToTarget,
	"ATTACK_TO_TARGET": ActionAttackToTarget,
}

var actionTypeToString = map[ActionType]string{
	ActionNone:           "NONE",
	ActionMoveToTarget:   "MOVE_TO_TARGET",
	ActionAttackToTarget: "ATTACK_TO_TARGET",
}

// ParseActionType конвертирует строку в ActionType (ActionNone для неизвестных)
func ParseActionType(s string) ActionType {
	if val, ok := actionStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionNone
}

// IsCombat - может ли действие вытеснять removable-сущности
func (a ActionType) IsCombat() bool {
	return a == ActionAttackToTarget
}

func (a ActionType) String() string {
	if val, ok := actionTypeToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// InputAction - внутренний числовой идентификатор команды ввода
type InputAction uint8

const (
	InputUnknown InputAction = iota
	InputInit
	InputSelect
	InputRotate
	InputPlace
	InputCrop
	InputStart
	InputReset
)

// Маппинг для конвертации JSON -> Domain
var inputStringToCmd = map[string]InputAction{
	"INIT":   InputInit,
	"SELECT": InputSelect,
	"ROTATE": InputRotate,
	"PLACE":  InputPlace,
	"CROP":   InputCrop,
	"START":  InputStart,
	"RESET":  InputReset,
}

// Маппинг для логов Domain -> String
var inputCmdToString = map[InputAction]string{
	InputInit:   "INIT",
	InputSelect: "SELECT",
	InputRotate: "ROTATE",
	InputPlace:  "PLACE",
	InputCrop:   "CROP",
	InputStart:  "START",
	InputReset:  "RESET",
}

// ParseInput конвертирует строку из JSON в InputAction
func ParseInput(s string) InputAction {
	// Делаем нечувствительным к регистру для надежности
	if val, ok := inputStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return InputUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a InputAction) String() string {
	if val, ok := inputCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsRecorded - попадает ли команда в реплей (меняет состояние уровня)
func (a InputAction) IsRecorded() bool {
	return a != InputInit && a != InputUnknown
}
