package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"photocrop-server/pkg/api"
	"photocrop-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

var logSeq atomic.Int64

func newLogEntry(text, logType string) api.LogEntry {
	return api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", time.Now().UnixNano(), logSeq.Add(1)),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	}
}

// AddLog добавляет лог в историю сессии. Вызывается под s.mu.
func (s *GameService) AddLog(text, logType string) {
	s.Logs = append(s.Logs, newLogEntry(text, logType))
	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
	}).Info(text)
}
