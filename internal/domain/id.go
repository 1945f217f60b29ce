package domain

import (
	"fmt"
	"strconv"
)

// EntityID - упакованный идентификатор (Group + Level + Index)
type EntityID uint64

// Конфигурация битов
const (
	bitsIndex = 40
	bitsLevel = 16
	bitsGroup = 8

	shiftLevel = bitsIndex
	shiftGroup = bitsIndex + bitsLevel

	maskIndex = (1 << bitsIndex) - 1
	maskLevel = (1 << bitsLevel) - 1
	maskGroup = (1 << bitsGroup) - 1
)

// PackEntityID создает ID из компонентов
func PackEntityID(group Group, levelID int16, index uint64) EntityID {
	id := index & maskIndex
	id |= (uint64(levelID) & maskLevel) << shiftLevel
	id |= (uint64(group) & maskGroup) << shiftGroup
	return EntityID(id)
}

func (id EntityID) Group() Group {
	return Group((id >> shiftGroup) & maskGroup)
}

func (id EntityID) Level() int16 {
	return int16((id >> shiftLevel) & maskLevel)
}

func (id EntityID) Index() uint64 {
	return uint64(id & maskIndex)
}

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *EntityID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = EntityID(val)
	return nil
}

// String для логов: [Group:Lvl:Idx]
func (id EntityID) String() string {
	return fmt.Sprintf("[%s:%d:%d]", id.Group(), id.Level(), id.Index())
}
