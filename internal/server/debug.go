package server

import (
	"encoding/json"
	"net/http"

	"photocrop-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/level", h.handleLevel)
	mux.HandleFunc("/debug/entities", h.handleEntities)
	mux.HandleFunc("/debug/scheduler", h.handleScheduler)
	mux.HandleFunc("/debug/replay", h.handleReplay)
}

// /debug/level - стадия, счетчики и итог уровня
func (h *DebugHandler) handleLevel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.DebugLevel())
}

// /debug/entities - все сущности уровня, включая вытесненных и еще не поставленных
func (h *DebugHandler) handleEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.DebugEntities())
}

// /debug/scheduler - списки подписчиков и курсоры
func (h *DebugHandler) handleScheduler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.DebugScheduler())
}

// /debug/replay - записанные команды текущей сессии
func (h *DebugHandler) handleReplay(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.ReplaySession())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (локальный debug-клиент)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
