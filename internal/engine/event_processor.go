package engine

import (
	"encoding/json"
	"fmt"

	"photocrop-server/internal/engine/handlers/input"
)

// processEvent - точка входа для событий, возвращенных хендлерами.
func (s *GameService) processEvent(eventData json.RawMessage) error {
	var genericEvent struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(eventData, &genericEvent); err != nil {
		return fmt.Errorf("parse event: %w", err)
	}

	switch genericEvent.Event {
	case input.EventSimulationReady, input.EventForceStart:
		return s.startSimulation()
	default:
		s.log.WithField("event", genericEvent.Event).Warn("Unknown event type")
		return nil
	}
}

// startSimulation переводит уровень в симуляцию и подписывает сущности лунки.
func (s *GameService) startSimulation() error {
	if err := s.level.BeginSimulation(); err != nil {
		return err
	}

	s.sim = NewSimulation(s.level.Grid(), s.level.OnGrid(), s.rng, s.interval)
	count := s.sim.Begin()
	s.AddLog(fmt.Sprintf("Симуляция запущена, сущностей: %d.", count), "SIMULATION")
	return nil
}
