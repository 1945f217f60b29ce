package api

import "testing"

func TestValidate(t *testing.T) {
	two := 2
	negative := -1

	tests := []struct {
		name    string
		payload Validator
		wantErr bool
	}{
		{"Select by delta", SelectPayload{Delta: -1}, false},
		{"Select by index", SelectPayload{Index: &two}, false},
		{"Select empty", SelectPayload{}, true},
		{"Select negative index", SelectPayload{Index: &negative}, true},
		{"Place", PositionPayload{X: 3, Y: 0}, false},
		{"Place negative", PositionPayload{X: -1, Y: 0}, true},
		{"Crop center", CropPayload{X: 1, Y: 1}, false},
		{"Crop full", CropPayload{MinX: -2, MaxX: 2, MinY: -2, MaxY: 2}, false},
		{"Crop inverted", CropPayload{MinX: 1, MaxX: 0}, true},
		{"Crop too wide", CropPayload{MinX: -3, MaxX: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
