package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"photocrop-server/internal/domain"
)

//go:embed data/*.yaml
var builtin embed.FS

var ErrLevelNotFound = errors.New("level not found")

// Library возвращает встроенные уровни, отсортированные по миру и номеру
func Library() ([]*LevelData, error) {
	files, err := fs.Glob(builtin, "data/*.yaml")
	if err != nil {
		return nil, err
	}

	out := make([]*LevelData, 0, len(files))
	for _, name := range files {
		raw, err := builtin.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		data, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", name, err)
		}
		out = append(out, data)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].World != out[j].World {
			return out[i].World < out[j].World
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

// Find ищет встроенный уровень
func Find(world domain.World, number int) (*LevelData, error) {
	all, err := Library()
	if err != nil {
		return nil, err
	}
	for _, d := range all {
		if d.World == world && d.Number == number {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%d", ErrLevelNotFound, world, number)
}

// Resolve загружает уровень по ссылке: путь к YAML-файлу или "мир:номер" из встроенных
func Resolve(ref string) (*LevelData, error) {
	if _, err := os.Stat(ref); err == nil {
		return LoadFile(ref)
	}

	worldPart, numberPart, ok := strings.Cut(ref, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q is neither a file nor world:number", ErrLevelNotFound, ref)
	}
	world, err := domain.ParseWorld(worldPart)
	if err != nil {
		return nil, err
	}
	number, err := strconv.Atoi(strings.TrimSpace(numberPart))
	if err != nil {
		return nil, fmt.Errorf("level number %q: %w", numberPart, err)
	}
	return Find(world, number)
}
