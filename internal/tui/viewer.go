// Package tui renders a session snapshot in the terminal and turns key presses into commands.
package tui

import (
	"context"
	"encoding/json"
	"fmt"

	"photocrop-server/internal/domain"
	"photocrop-server/pkg/api"

	"github.com/gdamore/tcell/v2"
)

// Screen layout
const (
	gridLeft = 1
	gridTop  = 2
	cellW    = 2
)

var contentColors = map[string]tcell.Color{
	domain.ContentWall.String():   tcell.ColorDarkGray,
	domain.ContentRed.String():    tcell.ColorRed,
	domain.ContentGreen.String():  tcell.ColorGreen,
	domain.ContentBlue.String():   tcell.ColorBlue,
	domain.ContentYellow.String(): tcell.ColorYellow,
	domain.ContentWhite.String():  tcell.ColorWhite,
	domain.ContentBlack.String():  tcell.ColorGray,
}

var groupGlyphs = map[domain.Group]rune{
	domain.GroupNeutral: 'n',
	domain.GroupPlayerA: 'A',
	domain.GroupPlayerB: 'B',
	domain.GroupRivalA:  'a',
	domain.GroupRivalB:  'b',
}

// Sender delivers a command to the session.
type Sender func(cmd api.ClientCommand) error

// Viewer draws snapshots and maps keys to commands.
type Viewer struct {
	screen tcell.Screen
	token  string
	send   Sender

	state   *api.ServerResponse
	anchor  api.PositionView
	message string

	// Crop window as cells trimmed from each side of the current piece
	trimLeft, trimRight, trimBottom, trimTop int
}

func NewViewer(screen tcell.Screen, token string, send Sender) *Viewer {
	return &Viewer{screen: screen, token: token, send: send}
}

// Anchor is the locally tracked placement anchor.
func (v *Viewer) Anchor() api.PositionView { return v.anchor }

// Draw renders resp. ERROR responses only update the status line.
func (v *Viewer) Draw(resp *api.ServerResponse) {
	if resp.Type == api.MsgError {
		if len(resp.Logs) > 0 {
			v.message = resp.Logs[0].Text
		}
	} else {
		if v.state == nil {
			v.anchor = resp.Anchor
		}
		v.state = resp
		if n := len(resp.Logs); n > 0 {
			v.message = resp.Logs[n-1].Text
		}
	}
	v.render()
}

func (v *Viewer) render() {
	s := v.screen
	s.Clear()

	if v.state == nil || v.state.Grid == nil {
		v.text(0, 0, "waiting for session...", tcell.StyleDefault)
		s.Show()
		return
	}

	st := v.state
	title := fmt.Sprintf("%s %d %s  [%s]  tick %d", st.Level.World, st.Level.Number, st.Level.Name, st.Stage, st.Tick)
	v.text(0, 0, title, tcell.StyleDefault.Bold(true))

	for _, tile := range st.Map {
		x, y := v.toScreen(tile.X, tile.Y)
		s.SetContent(x, y, []rune(tile.Symbol)[0], nil, contentStyle(tile.Content))
	}

	for _, e := range st.Entities {
		x, y := v.toScreen(e.Pos.X, e.Pos.Y)
		s.SetContent(x+1, y, entityGlyph(e), nil, tcell.StyleDefault.Bold(true))
	}

	if st.Stage == "BUILDING" {
		v.drawPreview()
	}

	row := gridTop + st.Grid.Height + 1
	v.text(0, row, fmt.Sprintf("pieces %d/%d  placed %d  crops %d  anchor (%d,%d)  window %s",
		st.Current+1, len(st.Shapes), st.Counters.ShapesPlaced, st.Counters.CropsUsed,
		v.anchor.X, v.anchor.Y, v.windowLabel()), tcell.StyleDefault)

	if st.Result != nil {
		verdict := "FAILED"
		if st.Result.Completed {
			verdict = "COMPLETED"
		}
		v.text(0, row+1, fmt.Sprintf("%s  survivors %d", verdict, st.Result.Survivors), tcell.StyleDefault.Bold(true))
	}
	if v.message != "" {
		v.text(0, row+2, v.message, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}

	s.Show()
}

// drawPreview shows the current piece at the anchor, cells inside the crop window highlighted.
func (v *Viewer) drawPreview() {
	st := v.state
	if st.Current < 0 || st.Current >= len(st.Shapes) {
		return
	}
	shape := st.Shapes[st.Current]
	window := v.window(shape.Size)

	for _, cell := range shape.Cells {
		gx, gy := v.anchor.X+cell.X, v.anchor.Y+cell.Y
		if gx < 0 || gy < 0 || gx >= st.Grid.Width || gy >= st.Grid.Height {
			continue
		}
		style := contentStyle(cell.Content).Reverse(true)
		if !window.contains(cell.X, cell.Y) {
			style = style.Dim(true)
		}
		x, y := v.toScreen(gx, gy)
		v.screen.SetContent(x, y, []rune(cell.Symbol)[0], nil, style)
	}
}

func (v *Viewer) toScreen(x, y int) (int, int) {
	return gridLeft + x*cellW, gridTop + (v.state.Grid.Height - 1 - y)
}

func (v *Viewer) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func contentStyle(content string) tcell.Style {
	if c, ok := contentColors[content]; ok {
		return tcell.StyleDefault.Foreground(c)
	}
	return tcell.StyleDefault
}

func entityGlyph(e api.EntityView) rune {
	g, err := domain.ParseGroup(e.Group)
	if err != nil {
		return '?'
	}
	return groupGlyphs[g]
}

type cropWindow struct {
	minX, maxX, minY, maxY int
}

func (w cropWindow) contains(x, y int) bool {
	return x >= w.minX && x <= w.maxX && y >= w.minY && y <= w.maxY
}

// window converts the trims into offsets for a piece of size, keeping at least one column and row.
func (v *Viewer) window(size int) cropWindow {
	c := size / 2
	w := cropWindow{minX: -c + v.trimLeft, maxX: c - v.trimRight, minY: -c + v.trimBottom, maxY: c - v.trimTop}
	if w.minX > c {
		w.minX = c
	}
	if w.maxX < w.minX {
		w.maxX = w.minX
	}
	if w.minY > c {
		w.minY = c
	}
	if w.maxY < w.minY {
		w.maxY = w.minY
	}
	return w
}

func (v *Viewer) windowLabel() string {
	size := 1
	if v.state != nil && v.state.Current < len(v.state.Shapes) {
		size = v.state.Shapes[v.state.Current].Size
	}
	w := v.window(size)
	return fmt.Sprintf("x[%d..%d] y[%d..%d]", w.minX, w.maxX, w.minY, w.maxY)
}

// HandleKey maps a key press to a command. It returns false when the viewer should quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.moveAnchor(0, 1)
	case tcell.KeyDown:
		v.moveAnchor(0, -1)
	case tcell.KeyLeft:
		v.moveAnchor(-1, 0)
	case tcell.KeyRight:
		v.moveAnchor(1, 0)
	case tcell.KeyEnter:
		v.dispatch("PLACE", api.PositionPayload{X: v.anchor.X, Y: v.anchor.Y})
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	if v.state != nil {
		v.render()
	}
	return true
}

func (v *Viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'r':
		v.dispatch("ROTATE", nil)
	case 'a':
		v.dispatch("SELECT", api.SelectPayload{Delta: -1})
	case 'd':
		v.dispatch("SELECT", api.SelectPayload{Delta: 1})
	case 's':
		v.dispatch("START", nil)
	case 'x':
		v.dispatch("RESET", nil)
	case 'c':
		size := 1
		if v.state != nil && v.state.Current < len(v.state.Shapes) {
			size = v.state.Shapes[v.state.Current].Size
		}
		w := v.window(size)
		v.dispatch("CROP", api.CropPayload{
			X: v.anchor.X, Y: v.anchor.Y,
			MinX: w.minX, MaxX: w.maxX, MinY: w.minY, MaxY: w.maxY,
		})
	case '1':
		v.trimLeft++
	case '2':
		v.trimRight++
	case '3':
		v.trimBottom++
	case '4':
		v.trimTop++
	case '0':
		v.trimLeft, v.trimRight, v.trimBottom, v.trimTop = 0, 0, 0, 0
	}
	if v.state != nil {
		v.render()
	}
	return true
}

func (v *Viewer) moveAnchor(dx, dy int) {
	v.anchor.X += dx
	v.anchor.Y += dy
	if v.state == nil || v.state.Grid == nil {
		return
	}
	v.anchor.X = clamp(v.anchor.X, 0, v.state.Grid.Width-1)
	v.anchor.Y = clamp(v.anchor.Y, 0, v.state.Grid.Height-1)
}

func (v *Viewer) dispatch(action string, payload interface{}) {
	cmd := api.ClientCommand{Token: v.token, Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			v.message = err.Error()
			return
		}
		cmd.Payload = raw
	}
	if err := v.send(cmd); err != nil {
		v.message = err.Error()
	}
}

// Run draws every update and feeds key presses until ctx ends, updates close or the user quits.
func (v *Viewer) Run(ctx context.Context, updates <-chan api.ServerResponse) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	v.render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case resp, ok := <-updates:
			if !ok {
				return nil
			}
			v.Draw(&resp)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
				v.render()
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
