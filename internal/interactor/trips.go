// Package interactor orchestrates the order lifecycle commands: it joins
// the repository, the backend, the tracking collaborator and the photo
// upload queue, and enforces the guards and ordering the backend contract
// requires.
package interactor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courierapp/tripsync/internal/api"
	"github.com/courierapp/tripsync/internal/imaging"
	"github.com/courierapp/tripsync/internal/metrics"
	"github.com/courierapp/tripsync/internal/model"
	"github.com/courierapp/tripsync/internal/observable"
	"github.com/courierapp/tripsync/internal/repository"
	"github.com/courierapp/tripsync/internal/taskdomain"
	"github.com/courierapp/tripsync/internal/tracking"
)

//go:generate mockgen -source ./trips.go -destination=./mocks/trips.go -package=mock_interactor

var (
	// ErrNotClockedIn means the worker is not tracking, so lifecycle
	// commands are rejected before any network call.
	ErrNotClockedIn = errors.New("not clocked in")
	// ErrIllegalOperation means the command is structurally invalid for
	// its target, e.g. snoozing a legacy order.
	ErrIllegalOperation = errors.New("illegal operation")
)

// thumbnailMaxSide bounds the longer side of generated photo previews.
const thumbnailMaxSide = 400

// CompletionBackend is the slice of the API client the interactor calls
// directly for order state transitions.
type CompletionBackend interface {
	CompleteOrder(ctx context.Context, tripID, orderID string) api.OrderCompletionResult
	CancelOrder(ctx context.Context, tripID, orderID string) api.OrderCompletionResult
	SnoozeOrder(ctx context.Context, tripID, orderID string) error
	UnsnoozeOrder(ctx context.Context, tripID, orderID string) error
	UpdateOrderMetadata(ctx context.Context, tripID, orderID string, md model.Metadata) error
}

// Queue is the photo upload queue as the interactor sees it.
type Queue interface {
	AddToQueue(photo model.PhotoForUpload) error
	Retry(photoID string)
}

// TripsInteractor drives order lifecycle transitions and the photo
// attach workflow. All public operations return tagged results or
// errors; nothing panics across this boundary.
type TripsInteractor struct {
	repo      *repository.TripsRepository
	backend   CompletionBackend
	tracker   tracking.Service
	queue     Queue
	decoder   imaging.Decoder
	domain    *taskdomain.Domain
	imagePool *taskdomain.Pool
	logger    *zap.Logger

	errs           *observable.Stream[error]
	currentTrip    *observable.State[*model.Trip]
	completedTrips *observable.State[[]model.Trip]
}

func NewTripsInteractor(
	repo *repository.TripsRepository,
	backend CompletionBackend,
	tracker tracking.Service,
	queue Queue,
	decoder imaging.Decoder,
	domain *taskdomain.Domain,
	imagePool *taskdomain.Pool,
	errs *observable.Stream[error],
	logger *zap.Logger,
) *TripsInteractor {
	i := &TripsInteractor{
		repo:           repo,
		backend:        backend,
		tracker:        tracker,
		queue:          queue,
		decoder:        decoder,
		domain:         domain,
		imagePool:      imagePool,
		logger:         logger,
		errs:           errs,
		currentTrip:    observable.NewState[*model.Trip](),
		completedTrips: observable.NewState[[]model.Trip](),
	}

	// Derive the current/completed views from every repository publish,
	// including the initial persisted list.
	i.recomputeDerived(repo.Snapshot())
	updates, cancel := repo.Trips().Subscribe()
	domain.Go("trips-derived-views", func(ctx context.Context) error {
		defer cancel()
		for {
			select {
			case trips, ok := <-updates:
				if !ok {
					return nil
				}
				i.recomputeDerived(trips)
			case <-ctx.Done():
				return nil
			}
		}
	})

	return i
}

// Errors is the asynchronous failure stream for background work.
// Command operations report through their return values instead.
func (i *TripsInteractor) Errors() *observable.Stream[error] {
	return i.errs
}

// CurrentTrip is the first active trip of the merged list, or nil.
func (i *TripsInteractor) CurrentTrip() *observable.State[*model.Trip] {
	return i.currentTrip
}

// CompletedTrips lists the trips that are no longer active.
func (i *TripsInteractor) CompletedTrips() *observable.State[[]model.Trip] {
	return i.completedTrips
}

// GetOrder returns the order with the given id from the held list.
func (i *TripsInteractor) GetOrder(orderID string) (model.Order, bool) {
	_, order, ok := i.repo.FindOrder(orderID)
	return order, ok
}

// RefreshTrips triggers a refresh on the background domain. The caller
// does not wait; a failure surfaces once on the error stream.
func (i *TripsInteractor) RefreshTrips() {
	i.refresh(true)
}

// RefreshTripsSilently is the periodic-timer variant: failures are
// logged and retried on the next tick, not surfaced.
func (i *TripsInteractor) RefreshTripsSilently() {
	i.refresh(false)
}

func (i *TripsInteractor) refresh(surfaceErrors bool) {
	i.domain.Go("refresh-trips", func(ctx context.Context) error {
		if err := i.repo.RefreshTrips(ctx); err != nil {
			metrics.TripRefreshFailuresTotal.Inc()
			if surfaceErrors {
				i.errs.Emit(err)
				return nil
			}
			return err
		}
		metrics.TripRefreshesTotal.Inc()
		return nil
	})
}

// CompleteOrder completes an order, pushing unsynced metadata first.
func (i *TripsInteractor) CompleteOrder(ctx context.Context, orderID string) api.OrderCompletionResult {
	return i.setOrderCompletion(ctx, orderID, false)
}

// CancelOrder cancels an order with the same ordering and conflict
// semantics as CompleteOrder.
func (i *TripsInteractor) CancelOrder(ctx context.Context, orderID string) api.OrderCompletionResult {
	return i.setOrderCompletion(ctx, orderID, true)
}

func (i *TripsInteractor) setOrderCompletion(ctx context.Context, orderID string, canceled bool) api.OrderCompletionResult {
	if !i.tracker.IsTracking() {
		return api.OrderCompletionFailure{Err: ErrNotClockedIn}
	}

	trip, order, ok := i.repo.FindOrder(orderID)
	if !ok {
		return api.OrderCompletionFailure{Err: repository.ErrOrderNotFound}
	}

	targetStatus := model.OrderStatusCompleted
	if canceled {
		targetStatus = model.OrderStatusCanceled
	}

	if order.Legacy {
		// The legacy contract has no per-order transaction: the marker
		// is the completion, and the status change is local-only until
		// the next refresh rebuilds the trip.
		if err := i.tracker.SendCompletionEvent(ctx, order.ID, order.Note, canceled); err != nil {
			return api.OrderCompletionFailure{Err: err}
		}
		if err := i.setLocalStatus(orderID, targetStatus); err != nil {
			return api.OrderCompletionFailure{Err: err}
		}
		metrics.OrderCompletionsTotal.WithLabelValues("success").Inc()
		return api.OrderCompletionSuccess{}
	}

	if !order.MetadataInSync() {
		if err := i.backend.UpdateOrderMetadata(ctx, trip.ID, orderID, order.SyncedMetadata()); err != nil {
			metrics.OrderCompletionsTotal.WithLabelValues("metadata_failure").Inc()
			return api.OrderCompletionFailure{Err: fmt.Errorf("failed to push order metadata: %w", err)}
		}
		metrics.MetadataPushesTotal.Inc()
	}

	var res api.OrderCompletionResult
	if canceled {
		res = i.backend.CancelOrder(ctx, trip.ID, orderID)
	} else {
		res = i.backend.CompleteOrder(ctx, trip.ID, orderID)
	}

	switch res.(type) {
	case api.OrderCompletionSuccess:
		if err := i.setLocalStatus(orderID, targetStatus); err != nil {
			return api.OrderCompletionFailure{Err: err}
		}
		metrics.OrderCompletionsTotal.WithLabelValues("success").Inc()
		i.RefreshTripsSilently()
	case api.OrderCompletionAlreadyCompleted, api.OrderCompletionAlreadyCanceled:
		// Informational: the next refresh picks up the authoritative
		// status, no local write here.
		metrics.OrderCompletionsTotal.WithLabelValues("conflict").Inc()
		i.RefreshTripsSilently()
	case api.OrderCompletionFailure:
		metrics.OrderCompletionsTotal.WithLabelValues("failure").Inc()
	}
	return res
}

// SnoozeOrder puts an ongoing order aside. Rejected for legacy orders.
func (i *TripsInteractor) SnoozeOrder(ctx context.Context, orderID string) error {
	return i.setOrderSnooze(ctx, orderID, true)
}

// UnsnoozeOrder returns a snoozed order to the ongoing state.
func (i *TripsInteractor) UnsnoozeOrder(ctx context.Context, orderID string) error {
	return i.setOrderSnooze(ctx, orderID, false)
}

func (i *TripsInteractor) setOrderSnooze(ctx context.Context, orderID string, snooze bool) error {
	if !i.tracker.IsTracking() {
		return ErrNotClockedIn
	}

	trip, order, ok := i.repo.FindOrder(orderID)
	if !ok {
		return repository.ErrOrderNotFound
	}
	if order.Legacy {
		return fmt.Errorf("%w: legacy orders cannot be snoozed", ErrIllegalOperation)
	}

	if !order.MetadataInSync() {
		if err := i.backend.UpdateOrderMetadata(ctx, trip.ID, orderID, order.SyncedMetadata()); err != nil {
			return fmt.Errorf("failed to push order metadata: %w", err)
		}
		metrics.MetadataPushesTotal.Inc()
	}

	if snooze {
		if err := i.backend.SnoozeOrder(ctx, trip.ID, orderID); err != nil {
			return err
		}
		return i.setLocalStatus(orderID, model.OrderStatusSnoozed)
	}
	if err := i.backend.UnsnoozeOrder(ctx, trip.ID, orderID); err != nil {
		return err
	}
	return i.setLocalStatus(orderID, model.OrderStatusOngoing)
}

// SetOrderPickedUp marks a legacy order as picked up. This never calls
// the backend: the marker goes to the tracking collaborator and the flag
// is local.
func (i *TripsInteractor) SetOrderPickedUp(ctx context.Context, orderID string) error {
	_, order, ok := i.repo.FindOrder(orderID)
	if !ok {
		return repository.ErrOrderNotFound
	}
	if !order.Legacy {
		return fmt.Errorf("%w: picked-up flag is legacy-only", ErrIllegalOperation)
	}

	if err := i.tracker.SendPickedUp(ctx, orderID); err != nil {
		return err
	}
	return i.repo.UpdateLocalOrder(orderID, func(o model.Order) model.Order {
		o.IsPickedUp = true
		return o
	})
}

// UpdateOrderNote replaces the local delivery note. Purely local; the
// note reaches the backend on the next metadata push.
func (i *TripsInteractor) UpdateOrderNote(orderID, note string) error {
	return i.repo.UpdateLocalOrder(orderID, func(o model.Order) model.Order {
		o.Note = note
		return o
	})
}

// AddPhotoToOrder generates a photo id, builds the thumbnail off the
// latency-sensitive path, attaches the photo to the order and enqueues
// the upload.
func (i *TripsInteractor) AddPhotoToOrder(ctx context.Context, orderID, imagePath string) error {
	if _, _, ok := i.repo.FindOrder(orderID); !ok {
		return repository.ErrOrderNotFound
	}

	photoID := uuid.NewString()

	return i.imagePool.Do(ctx, func() error {
		thumbnail, err := i.decoder.Thumbnail(imagePath, thumbnailMaxSide)
		if err != nil {
			return fmt.Errorf("failed to build photo thumbnail: %w", err)
		}

		photo := model.PhotoForUpload{
			PhotoID:         photoID,
			OrderID:         orderID,
			FilePath:        imagePath,
			Base64Thumbnail: thumbnail,
			State:           model.PhotoStateNotUploaded,
		}

		err = i.repo.UpdateLocalOrder(orderID, func(o model.Order) model.Order {
			return o.WithPhoto(photo)
		})
		if err != nil {
			return err
		}
		return i.queue.AddToQueue(photo)
	})
}

// RetryPhotoUpload restarts the upload of a photo in the error state.
func (i *TripsInteractor) RetryPhotoUpload(photoID string) {
	i.queue.Retry(photoID)
}

// OnPhotoUploaded is the queue hook: it reflects the finished upload on
// the owning order. The order may be gone after a refresh; that is fine,
// the backend already holds the image.
func (i *TripsInteractor) OnPhotoUploaded(photo model.PhotoForUpload) {
	err := i.repo.UpdateLocalOrder(photo.OrderID, func(o model.Order) model.Order {
		return o.WithPhoto(photo)
	})
	if err != nil && !errors.Is(err, repository.ErrOrderNotFound) {
		i.errs.Emit(err)
	}
}

// CreateTrip creates a trip with a single destination.
func (i *TripsInteractor) CreateTrip(ctx context.Context, destination model.Destination) repository.TripCreationResult {
	return i.repo.CreateTrip(ctx, destination)
}

// AddOrderToTrip adds a destination to an existing trip. Legacy trips
// cannot accept orders; this fails before any network call.
func (i *TripsInteractor) AddOrderToTrip(ctx context.Context, tripID string, destination model.Destination) error {
	var target *model.Trip
	for _, trip := range i.repo.Snapshot() {
		if trip.ID == tripID {
			t := trip
			target = &t
			break
		}
	}
	if target == nil {
		return repository.ErrTripNotFound
	}
	if target.IsLegacy() {
		return fmt.Errorf("%w: legacy trips cannot accept orders", ErrIllegalOperation)
	}

	_, err := i.repo.AddOrderToTrip(ctx, tripID, api.OrderParams{
		OrderID:     uuid.NewString(),
		Destination: destination,
	})
	return err
}

// CompleteTrip completes a whole trip and refreshes in the background.
func (i *TripsInteractor) CompleteTrip(ctx context.Context, tripID string) error {
	if err := i.repo.CompleteTrip(ctx, tripID); err != nil {
		return err
	}
	i.RefreshTripsSilently()
	return nil
}

func (i *TripsInteractor) setLocalStatus(orderID string, status model.OrderStatus) error {
	return i.repo.UpdateLocalOrder(orderID, func(o model.Order) model.Order {
		o.Status = status
		return o
	})
}

func (i *TripsInteractor) recomputeDerived(trips []model.Trip) {
	var current *model.Trip
	var completed []model.Trip
	for _, trip := range trips {
		if trip.Status == model.TripStatusActive {
			if current == nil {
				t := trip
				current = &t
			}
		} else {
			completed = append(completed, trip)
		}
	}
	i.currentTrip.Set(current)
	i.completedTrips.Set(completed)
}
