package version

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Задаются при сборке: -ldflags "-X photocrop-server/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD, UTC
	BuildCommit string
)

// От первого релиза считается номер сборки
var releaseEpoch = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

// Build - метаданные сборки для /version
type Build struct {
	ID     int    `json:"buildId"`
	Date   string `json:"buildDate,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// buildNumber - число дней от первого релиза до даты сборки
func buildNumber(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is not set")
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(releaseEpoch) {
		return 0, fmt.Errorf("build date %s is before the first release", date)
	}
	return int(t.Sub(releaseEpoch).Hours() / 24), nil
}

// Current возвращает метаданные текущей сборки. Локальная сборка получает ID 0.
func Current() Build {
	b := Build{Date: BuildDate, Commit: BuildCommit}
	if id, err := buildNumber(BuildDate); err == nil {
		b.ID = id
	}
	return b
}

// Fields - метаданные сборки для логов
func Fields() logrus.Fields {
	b := Current()
	if b.Date == "" {
		return logrus.Fields{"build": "dev"}
	}
	fields := logrus.Fields{"build": b.ID, "build_date": b.Date}
	if b.Commit != "" {
		fields["commit"] = b.Commit
	}
	return fields
}
