package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"salvage-server/internal/domain"
	"salvage-server/internal/engine"
	"salvage-server/pkg/api"
	"salvage-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// adminTimeout - сколько ждать ответа симуляции на отладочную команду
const adminTimeout = 2 * time.Second

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/queue", h.handleQueue)
	mux.HandleFunc("/debug/snapshot", h.handleSnapshot)
	mux.HandleFunc("/debug/config", h.handleConfig)
	mux.HandleFunc("/debug/journal", h.handleJournal)
	mux.HandleFunc("/debug/grant", h.adminCommand("GRANT"))
	mux.HandleFunc("/debug/teleport", h.adminCommand("TELEPORT"))
}

// /debug/queue - очередь дедлайнов на момент последней публикации
func (h *DebugHandler) handleQueue(w http.ResponseWriter, r *http.Request) {
	dump := h.Service.QueueDump()
	if dump == nil {
		dump = []map[string]interface{}{}
	}
	writeJSON(w, dump)
}

// /debug/snapshot?compress=zstd - полный снимок, по желанию сжатый
func (h *DebugHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.Service.Snapshot()
	if r.URL.Query().Get("compress") != "zstd" {
		writeJSON(w, snap)
		return
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	packed, err := api.Compress(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/zstd")
	w.Write(packed)
}

// /debug/config - таблицы, с которыми запущена симуляция
func (h *DebugHandler) handleConfig(w http.ResponseWriter, r *http.Request) {
	out, err := yaml.Marshal(h.Service.Config())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(out)
}

// /debug/journal - журнал команд в бинарном формате (для Replay)
func (h *DebugHandler) handleJournal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="session.slvj"`)
	if err := h.Service.Journal().Encode(w); err != nil {
		logger.Log.WithError(err).Warn("journal export failed")
	}
}

// adminCommand - POST с JSON-телом уходит в очередь симуляции, ответ ждем синхронно
func (h *DebugHandler) adminCommand(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, 4096))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), adminTimeout)
		defer cancel()

		var out domain.CommandResult
		select {
		case out = <-h.Service.ProcessAdmin(action, body):
		case <-ctx.Done():
			http.Error(w, "simulation did not answer", http.StatusGatewayTimeout)
			return
		}

		logger.Log.WithFields(logrus.Fields{
			"component": "debug",
			"action":    action,
			"ok":        out.OK,
		}).Info("Admin command")

		status := http.StatusOK
		if !out.OK {
			status = http.StatusUnprocessableEntity
		}
		writeJSONStatus(w, status, out)
	}
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	writeJSONStatus(w, http.StatusOK, data)
}

func writeJSONStatus(w http.ResponseWriter, status int, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Debug("write json failed")
	}
}
