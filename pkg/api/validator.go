package api

import "errors"

// Максимальная полуширина раскладки фигуры
const maxShapeHalf = 2

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p SelectPayload) Validate() error {
	if p.Index == nil && p.Delta == 0 {
		return errors.New("either delta or index is required")
	}
	if p.Index != nil && *p.Index < 0 {
		return errors.New("index cannot be negative")
	}
	return nil
}

func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("anchor cannot be negative")
	}
	return nil
}

func (p CropPayload) Validate() error {
	if err := (PositionPayload{X: p.X, Y: p.Y}).Validate(); err != nil {
		return err
	}
	if p.MinX > p.MaxX || p.MinY > p.MaxY {
		return errors.New("crop window is empty")
	}
	if p.MinX < -maxShapeHalf || p.MaxX > maxShapeHalf || p.MinY < -maxShapeHalf || p.MaxY > maxShapeHalf {
		return errors.New("crop window exceeds shape layout")
	}
	return nil
}
