package tracking

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// ConsoleService logs markers instead of publishing them. Used in
// development when no broker is configured.
type ConsoleService struct {
	logger   *zap.Logger
	tracking atomic.Bool
}

func NewConsoleService(logger *zap.Logger) *ConsoleService {
	return &ConsoleService{logger: logger}
}

func (s *ConsoleService) SetTracking(tracking bool) {
	s.tracking.Store(tracking)
}

func (s *ConsoleService) IsTracking() bool {
	return s.tracking.Load()
}

func (s *ConsoleService) SendCompletionEvent(_ context.Context, orderID, note string, canceled bool) error {
	s.logger.Info("tracking marker (console)",
		zap.String("type", "completion"),
		zap.String("order_id", orderID),
		zap.String("note", note),
		zap.Bool("canceled", canceled))
	return nil
}

func (s *ConsoleService) SendPickedUp(_ context.Context, orderID string) error {
	s.logger.Info("tracking marker (console)",
		zap.String("type", "picked_up"),
		zap.String("order_id", orderID))
	return nil
}
