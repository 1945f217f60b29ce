package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"photocrop-server/internal/domain"
)

const (
	MagicHeader string = `PCRP` // 4 байта
	Version1    uint32 = 1

	replayExt = ".pcrp"
)

// ReplayFileHeader - точное представление заголовка файла.
// binary.Write пишет его целиком: тут только массивы и числа.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	World       uint8   // 1 байт
	_           [3]byte // выравнивание
	LevelNumber int32   // 4 байта
	ActionCount int32   // 4 байта
}

// ActionHeader - заголовок каждой записи команды.
type ActionHeader struct {
	Seq        int32  // 4
	Action     uint8  // 1
	TokenLen   uint8  // 1
	PayloadLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет сессию в SaveDir и возвращает путь к файлу.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%s_%02d_%d_%d%s",
		session.World.String(), session.LevelNumber, session.Seed, session.Timestamp, replayExt)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, session); err != nil {
		return "", err
	}
	return path, w.Flush()
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	// 1. Глобальный заголовок
	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		World:       uint8(s.World),
		LevelNumber: int32(s.LevelNumber),
		ActionCount: int32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Команды
	for _, act := range s.Actions {
		tokenBytes := []byte(act.Token)
		if len(tokenBytes) > 255 {
			return fmt.Errorf("token too long: %d", len(tokenBytes))
		}

		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Seq:        int32(act.Seq),
			Action:     uint8(act.Action),
			TokenLen:   uint8(len(tokenBytes)),
			PayloadLen: uint16(payloadLen),
		}

		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}

		// Тело записи
		if _, err := w.Write(tokenBytes); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
