package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type markerType string

const (
	markerCompletion   markerType = "completion"
	markerCancellation markerType = "cancellation"
	markerPickedUp     markerType = "picked_up"
)

type marker struct {
	Type      markerType `json:"type"`
	DeviceID  string     `json:"device_id"`
	OrderID   string     `json:"order_id"`
	Note      string     `json:"note,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// KafkaService publishes lifecycle markers to a Kafka topic keyed by
// order id. Clock-in state is flipped externally (by whatever drives the
// tracking SDK) through SetTracking.
type KafkaService struct {
	writer   *kafka.Writer
	deviceID string
	logger   *zap.Logger
	tracking atomic.Bool
}

func NewKafkaService(brokers []string, topic, deviceID string, logger *zap.Logger) *KafkaService {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 100 * time.Millisecond,
	}
	return &KafkaService{
		writer:   writer,
		deviceID: deviceID,
		logger:   logger,
	}
}

// SetTracking records the current clock-in state.
func (s *KafkaService) SetTracking(tracking bool) {
	s.tracking.Store(tracking)
}

func (s *KafkaService) IsTracking() bool {
	return s.tracking.Load()
}

func (s *KafkaService) SendCompletionEvent(ctx context.Context, orderID, note string, canceled bool) error {
	t := markerCompletion
	if canceled {
		t = markerCancellation
	}
	return s.publish(ctx, marker{
		Type:      t,
		DeviceID:  s.deviceID,
		OrderID:   orderID,
		Note:      note,
		Timestamp: time.Now().UTC(),
	})
}

func (s *KafkaService) SendPickedUp(ctx context.Context, orderID string) error {
	return s.publish(ctx, marker{
		Type:      markerPickedUp,
		DeviceID:  s.deviceID,
		OrderID:   orderID,
		Timestamp: time.Now().UTC(),
	})
}

func (s *KafkaService) publish(ctx context.Context, m marker) error {
	value, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode tracking marker: %w", err)
	}
	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(m.OrderID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish tracking marker: %w", err)
	}
	s.logger.Debug("tracking marker published",
		zap.String("type", string(m.Type)), zap.String("order_id", m.OrderID))
	return nil
}

func (s *KafkaService) Close() error {
	return s.writer.Close()
}
