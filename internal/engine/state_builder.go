package engine

import (
	"photocrop-server/internal/domain"
	"photocrop-server/pkg/api"
)

// publishUpdate рассылает снимок сессии всем подписчикам и очищает накопленные логи.
func (s *GameService) publishUpdate(msgType string, report *domain.TickReport) {
	state := s.buildState(msgType, report)
	s.Hub.Broadcast(*state)
	s.lastState = state
	s.Logs = []api.LogEntry{}
}

// buildState создает снимок сессии. Вызывается под s.mu.
func (s *GameService) buildState(msgType string, report *domain.TickReport) *api.ServerResponse {
	lvl := s.level
	grid := lvl.Grid()
	data := lvl.Data()

	resp := &api.ServerResponse{
		Type:  msgType,
		Stage: lvl.Stage().String(),
		Level: &api.LevelView{
			World:  data.World.String(),
			Number: data.Number,
			Name:   data.Name,
		},
		Grid:    &api.GridMeta{Width: grid.Width, Height: grid.Height},
		Map:     tilesOf(grid),
		Current: lvl.CurrentIndex(),
		Anchor:  toPositionView(lvl.Anchor()),
		Logs:    s.Logs,
	}

	if s.sim != nil {
		resp.Tick = s.sim.Scheduler().TickCount()
	}

	for _, e := range lvl.OnGrid() {
		resp.Entities = append(resp.Entities, toEntityView(e))
	}

	for _, shape := range lvl.Shapes() {
		resp.Shapes = append(resp.Shapes, toShapeView(shape))
	}

	stats := lvl.Stats()
	resp.Counters = api.CountersView{
		ShapesPlaced: stats.ShapesPlaced,
		CropsUsed:    stats.CropsUsed,
		ShapesLeft:   len(lvl.Shapes()),
	}

	if report != nil {
		resp.Tick = report.Tick
		resp.Changes = toTickView(report)
	}

	if s.result != nil {
		resp.Result = toResultView(s.result)
	}

	return resp
}

// errorResponse - ответ на отклоненную команду
func (s *GameService) errorResponse(err error) api.ServerResponse {
	return api.ServerResponse{
		Type:  api.MsgError,
		Stage: s.level.Stage().String(),
		Logs: []api.LogEntry{
			newLogEntry(err.Error(), "ERROR"),
		},
	}
}

func tilesOf(grid *domain.Grid) []api.TileView {
	tiles := make([]api.TileView, 0, len(grid.Cells))
	for y := grid.Height - 1; y >= 0; y-- {
		for x := 0; x < grid.Width; x++ {
			cell := grid.At(domain.Position{X: x, Y: y})
			tiles = append(tiles, toTileView(cell))
		}
	}
	return tiles
}

func toTileView(cell *domain.Cell) api.TileView {
	return api.TileView{
		X:       cell.Pos.X,
		Y:       cell.Pos.Y,
		Content: cell.Content.String(),
		Symbol:  string(cell.Content.Glyph()),
	}
}

func toPositionView(p domain.Position) api.PositionView {
	return api.PositionView{X: p.X, Y: p.Y}
}

func toEntityView(e *domain.CellEntity) api.EntityView {
	return api.EntityView{
		ID:               e.ID.String(),
		Name:             e.Name,
		Kind:             e.Kind.String(),
		Group:            e.Group.String(),
		Action:           e.Action.String(),
		Pos:              toPositionView(e.Pos),
		Removed:          e.Removed,
		FailureCount:     e.FailureCount,
		ActionsPerformed: e.ActionsPerformed,
	}
}

// toShapeView отдает только заполненные клетки фигуры
func toShapeView(shape *domain.Shape) api.ShapeView {
	view := api.ShapeView{Size: shape.Size}
	for i := range shape.Cells {
		cell := &shape.Cells[i]
		if cell.IsEmpty() {
			continue
		}
		view.Cells = append(view.Cells, toTileView(cell))
	}
	for _, e := range shape.Entities() {
		view.Entities = append(view.Entities, toEntityView(e))
	}
	return view
}

func toTickView(r *domain.TickReport) *api.TickView {
	view := &api.TickView{Idle: r.SchedulerIdle}
	for _, m := range r.Moves {
		mv := api.MoveView{
			EntityID: m.EntityID.String(),
			From:     toPositionView(m.From),
			To:       toPositionView(m.To),
		}
		for _, step := range m.Steps {
			mv.Steps = append(mv.Steps, toPositionView(step))
		}
		view.Moves = append(view.Moves, mv)
	}
	for _, ev := range r.Evictions {
		view.Evictions = append(view.Evictions, api.EvictionView{
			EntityID: ev.EntityID.String(),
			By:       ev.By.String(),
			At:       toPositionView(ev.At),
		})
	}
	for _, id := range r.Unsubscribed {
		view.Unsubscribed = append(view.Unsubscribed, id.String())
	}
	return view
}

func toResultView(r *domain.LevelResult) *api.ResultView {
	view := &api.ResultView{
		Completed:  r.Completed,
		GridFilled: r.Stats.GridFilled,
		Survivors:  r.Survivors,
	}
	for _, g := range r.Goals {
		view.Goals = append(view.Goals, api.GoalView{
			Type:        g.Type.String(),
			Description: g.Description,
			Limit:       g.Limit,
			Completed:   g.Completed,
		})
	}
	return view
}
