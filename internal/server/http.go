package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"photocrop-server/internal/engine"
	"photocrop-server/internal/version"
	"photocrop-server/pkg/logger"
)

type Server struct {
	Engine *engine.GameService
	Port   string

	srv *http.Server
}

func New(engine *engine.GameService, port string) *Server {
	return &Server{
		Engine: engine,
		Port:   port,
	}
}

// Routes собирает роутер сервера
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.HandleFunc("/state", enableCORS(s.handleState))

	debugHandler := NewDebugHandler(s.Engine)
	debugHandler.RegisterRoutes(mux)
	return mux
}

// Run запускает HTTP сервер и останавливает его при отмене ctx
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("HTTP shutdown failed")
		}
	}()

	logger.Log.WithFields(version.Fields()).Infof("Photocrop server running on :%s", s.Port)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s.Engine, conn)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Current())
}

// /state - текущий снимок сессии без подписки
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Snapshot())
}
