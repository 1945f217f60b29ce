package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"photocrop-server/internal/domain"
)

var ErrInvalidReplay = errors.New("invalid replay file")

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidReplay, header.Magic[:])
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalidReplay, header.Version, Version1)
	}
	if header.ActionCount < 0 {
		return nil, fmt.Errorf("%w: action count %d", ErrInvalidReplay, header.ActionCount)
	}

	session := &domain.ReplaySession{
		World:       domain.World(header.World),
		LevelNumber: int(header.LevelNumber),
		Seed:        header.Seed,
		Timestamp:   header.Timestamp,
		Actions:     make([]domain.ReplayAction, header.ActionCount),
	}

	// 2. Команды
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("failed to read action %d: %w", i, err)
		}

		act := domain.ReplayAction{
			Seq:    int(ah.Seq),
			Action: domain.InputAction(ah.Action),
		}

		tokenBuf := make([]byte, ah.TokenLen)
		if _, err := io.ReadFull(r, tokenBuf); err != nil {
			return nil, err
		}
		act.Token = string(tokenBuf)

		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, err
			}
		} else {
			act.Payload = json.RawMessage{}
		}

		session.Actions[i] = act
	}

	return session, nil
}
