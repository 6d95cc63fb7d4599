package service

import (
	"context"

	"barhop/internal/domain/entity"
	"barhop/internal/errors"
)

// Typed failures of a position request. Timeouts surface as the context
// deadline error from the bounded wait the caller applies.
var (
	// ErrPermissionDenied is returned when the position source refuses access.
	ErrPermissionDenied = errors.New("position permission denied")
	// ErrPositionUnavailable is returned when no position can be determined.
	ErrPositionUnavailable = errors.New("position unavailable")
)

// PositionSource yields the current device position. One-shot, high accuracy,
// no cached positions; the caller bounds the wait with the context.
type PositionSource interface {
	Current(ctx context.Context) (entity.Coordinates, error)
}
