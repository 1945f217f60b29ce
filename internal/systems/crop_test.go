package systems

import (
	"testing"

	"photocrop-server/internal/domain"
)

func fullShape(size int, content domain.ContentType) *domain.Shape {
	s := domain.NewShape(size)
	for i := range s.Cells {
		s.Cells[i].Content = content
	}
	return s
}

func filledCount(s *domain.Shape) int {
	return len(s.FilledOffsets())
}

func TestCrop(t *testing.T) {
	t.Run("Nothing outside window", func(t *testing.T) {
		s := fullShape(3, domain.ContentRed)

		pieces := Crop(s, DefaultCropWindow(3).Offsets())

		if len(pieces) != 0 {
			t.Errorf("expected no pieces, got %d", len(pieces))
		}
		if filledCount(s) != 9 {
			t.Errorf("shape lost cells: %d", filledCount(s))
		}
	})

	t.Run("Center only leaves one ring piece", func(t *testing.T) {
		s := fullShape(3, domain.ContentRed)

		pieces := Crop(s, []domain.Position{{X: 0, Y: 0}})

		if filledCount(s) != 1 || s.At(domain.Position{}).IsEmpty() {
			t.Errorf("expected only center filled, got %v", s.FilledOffsets())
		}
		if len(pieces) != 1 || filledCount(pieces[0]) != 8 {
			t.Fatalf("expected one piece of 8 cells, got %d pieces", len(pieces))
		}
		if pieces[0].Size != s.Size {
			t.Errorf("piece size %d, want %d", pieces[0].Size, s.Size)
		}
	})

	t.Run("Disconnected columns split", func(t *testing.T) {
		s := fullShape(3, domain.ContentBlue)
		rider := &domain.CellEntity{Name: "rider"}
		if err := s.AttachEntity(rider, domain.Position{X: -1, Y: -1}); err != nil {
			t.Fatal(err)
		}

		window := CropWindow{MinX: 0, MaxX: 0, MinY: -1, MaxY: 1}
		pieces := Crop(s, window.Offsets())

		if len(pieces) != 2 {
			t.Fatalf("expected 2 pieces, got %d", len(pieces))
		}

		total := 0
		carried := false
		for _, p := range pieces {
			total += filledCount(p)
			for _, e := range p.Entities() {
				if e == rider {
					carried = true
				}
			}
		}
		if total != 6 {
			t.Errorf("expected 6 removed cells, got %d", total)
		}
		if !carried {
			t.Error("rider did not move with its cell")
		}
		if len(s.Entities()) != 0 {
			t.Error("rider left in cropped shape")
		}
	})

	t.Run("Diagonal neighbours form one piece", func(t *testing.T) {
		s := domain.NewShape(3)
		for _, off := range []domain.Position{{X: -1, Y: -1}, {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: -1}} {
			if err := s.Set(off, domain.ContentRed); err != nil {
				t.Fatal(err)
			}
		}

		pieces := Crop(s, []domain.Position{{X: 1, Y: -1}})

		if len(pieces) != 1 {
			t.Fatalf("expected 1 piece, got %d", len(pieces))
		}
		if filledCount(pieces[0]) != 3 {
			t.Errorf("piece has %d cells, want 3", filledCount(pieces[0]))
		}
		if filledCount(s) != 1 {
			t.Errorf("cropped shape has %d cells, want 1", filledCount(s))
		}
	})

	t.Run("Cropped shape stays inside window", func(t *testing.T) {
		windows := []CropWindow{
			{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1},
			{MinX: -2, MaxX: 0, MinY: 0, MaxY: 2},
			{MinX: 1, MaxX: 2, MinY: -2, MaxY: -2},
		}
		for _, w := range windows {
			s := fullShape(5, domain.ContentGreen)
			before := filledCount(s)

			pieces := Crop(s, w.Offsets())

			for _, off := range s.FilledOffsets() {
				if !w.Contains(off) {
					t.Errorf("window %+v: filled cell %v survived", w, off)
				}
			}
			removed := 0
			for _, p := range pieces {
				removed += filledCount(p)
			}
			if removed+filledCount(s) != before {
				t.Errorf("window %+v: cells lost, %d + %d != %d", w, removed, filledCount(s), before)
			}
		}
	})
}

func TestCropWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  CropWindow
		size    int
		wantErr bool
	}{
		{"Full", DefaultCropWindow(3), 3, false},
		{"Inverted", CropWindow{MinX: 1, MaxX: 0}, 3, true},
		{"Too wide", CropWindow{MinX: -2, MaxX: 0, MinY: 0, MaxY: 0}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.window.Validate(tt.size); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
