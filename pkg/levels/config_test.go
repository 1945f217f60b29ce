package levels

import (
	"errors"
	"strings"
	"testing"

	"photocrop-server/internal/domain"
)

const sampleLevel = `
world: chess
level: 7
hole:
  layout:
    - "W K W"
    - ". . ."
  entities:
    - {template: rook, x: 0, y: 1}
shapes:
  - size: 2
    layout:
      - "WK"
      - "KW"
    entities:
      - {template: sleeper, x: 0, y: 0}
templates:
  sleeper:
    name: Sleeper
    kind: stationary
    group: rival_b
    can_be_removed: true
    targeted_value: 4
`

func TestParse(t *testing.T) {
	data, err := Parse([]byte(sampleLevel))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if data.World != domain.WorldChess || data.Number != 7 {
		t.Errorf("world/level = %s/%d", data.World, data.Number)
	}
	if data.Hole.Width != 3 || data.Hole.Height != 2 {
		t.Errorf("hole size %dx%d, want 3x2", data.Hole.Width, data.Hole.Height)
	}

	s := data.Shapes[0]
	if s.Size != 3 {
		t.Errorf("even shape size should be forced odd, got %d", s.Size)
	}
	if len(s.Layout) != 3 || s.Layout[0] != "WK." || s.Layout[2] != "..." {
		t.Errorf("shape layout not padded: %q", s.Layout)
	}

	if len(data.Goals) != 1 || data.Goals[0].Type != domain.GoalFillEntireGrid {
		t.Errorf("expected default fill goal, got %+v", data.Goals)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "Unknown glyph",
			yaml: "world: bricks\nhole:\n  layout: [\"RZ\"]\n",
			want: "glyph",
		},
		{
			name: "Ragged rows",
			yaml: "world: bricks\nhole:\n  layout: [\"RR\", \"R\"]\n",
			want: "cells",
		},
		{
			name: "Entity out of bounds",
			yaml: "world: bricks\nhole:\n  layout: [\"RR\"]\n  entities: [{template: mason, x: 5, y: 0}]\n",
			want: "out of bounds",
		},
		{
			name: "Hole entity on empty cell",
			yaml: "world: bricks\nhole:\n  layout: [\"R . R\"]\n  entities: [{template: brick_golem, x: 1, y: 0}]\n",
			want: "empty cell",
		},
		{
			name: "Shape rider on empty cell",
			yaml: "world: bricks\nhole:\n  layout: [\"R\"]\nshapes:\n  - layout: [\"R..\", \"...\", \"...\"]\n    entities: [{template: mason, x: 1, y: 1}]\n",
			want: "empty cell",
		},
		{
			name: "Unknown template",
			yaml: "world: bricks\nhole:\n  layout: [\"RR\"]\n  entities: [{template: dragon, x: 0, y: 0}]\n",
			want: "unknown template",
		},
		{
			name: "Shape too large",
			yaml: "world: bricks\nhole:\n  layout: [\"R\"]\nshapes:\n  - layout: [R, R, R, R, R, R, R]\n",
			want: "max",
		},
		{
			name: "Unknown world",
			yaml: "world: space\nhole:\n  layout: [\"R\"]\n",
			want: "world",
		},
		{
			name: "Bad inline template",
			yaml: "world: bricks\nhole:\n  layout: [\"R\"]\ntemplates:\n  x: {move_directions: [SIDEWAYS]}\n",
			want: "template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("error %v does not wrap ErrInvalidLevel", err)
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestTemplateDataToTemplate(t *testing.T) {
	td := TemplateData{
		Name:               "Runner",
		Kind:               "moving",
		Group:              "player_b",
		MoveDirections:     []string{"up", "down"},
		Traversable:        []string{"white", "black"},
		AlternateTraversal: true,
		TickCategory:       "simultaneous",
		Action:             "move_to_target",
		TargetPolicy:       "manual",
		ManualTarget:       &domain.Position{X: 2, Y: 3},
	}

	tmpl, err := td.ToTemplate()
	if err != nil {
		t.Fatalf("ToTemplate: %v", err)
	}
	if tmpl.Kind != domain.KindMoving || tmpl.Group != domain.GroupPlayerB {
		t.Errorf("kind/group = %s/%s", tmpl.Kind, tmpl.Group)
	}
	if len(tmpl.MoveDirections) != 2 || tmpl.MoveDirections[1] != domain.DirDown {
		t.Errorf("directions = %v", tmpl.MoveDirections)
	}
	if tmpl.TickCategory != domain.TickSimultaneous || tmpl.Action != domain.ActionMoveToTarget {
		t.Errorf("scheduling = %s/%s", tmpl.TickCategory, tmpl.Action)
	}
	if tmpl.TargetPolicy != domain.TargetManual || *tmpl.ManualTarget != (domain.Position{X: 2, Y: 3}) {
		t.Errorf("policy = %s %v", tmpl.TargetPolicy, tmpl.ManualTarget)
	}

	td.Traversable = nil
	if _, err := td.ToTemplate(); err == nil {
		t.Error("alternate traversal without list should fail")
	}
}
