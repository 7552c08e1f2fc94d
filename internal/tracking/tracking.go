// Package tracking is the boundary to the location-tracking collaborator.
// The engine only needs to know whether the worker is clocked in and to
// emit fire-and-forget lifecycle markers; everything else about tracking
// lives outside this module.
package tracking

import "context"

//go:generate mockgen -source ./tracking.go -destination=./mocks/tracking.go -package=mock_tracking

// Service is the narrow tracking interface the engine consumes.
type Service interface {
	// IsTracking reports whether the worker is currently clocked in.
	IsTracking() bool
	// SendCompletionEvent emits a completion (or cancellation) marker
	// for a legacy order. The engine does not consult any result beyond
	// the call error.
	SendCompletionEvent(ctx context.Context, orderID, note string, canceled bool) error
	// SendPickedUp emits a picked-up marker for a legacy order.
	SendPickedUp(ctx context.Context, orderID string) error
}
