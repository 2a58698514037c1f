package engine

import (
	"fmt"

	"salvage-server/pkg/api"
	"salvage-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// maxLogs - сколько последних записей держим в снапшоте
const maxLogs = 50

// AddLog добавляет запись в игровой лог и дублирует ее в logrus
func (s *GameService) AddLog(text, logType string) {
	if logType == "" {
		logType = "INFO"
	}
	w := s.world
	w.logSeq++
	w.Logs = append(w.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", s.now, w.logSeq),
		Text:      text,
		Type:      logType,
		Timestamp: s.now,
	})
	if len(w.Logs) > maxLogs {
		w.Logs = append([]api.LogEntry(nil), w.Logs[len(w.Logs)-maxLogs:]...)
	}
	w.Touch()

	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
		"sim_time":  s.now,
	}).Info(text)
}
