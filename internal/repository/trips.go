// Package repository holds the merged trip list: the authoritative remote
// trips joined with locally-only order state, persisted after every
// change and published to observers.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/courierapp/tripsync/internal/api"
	"github.com/courierapp/tripsync/internal/model"
	"github.com/courierapp/tripsync/internal/observable"
)

//go:generate mockgen -source ./trips.go -destination=./mocks/trips.go -package=mock_repository

var (
	// ErrOrderNotFound means no order with the given id exists in the
	// currently held trip list.
	ErrOrderNotFound = errors.New("order not found")
	// ErrTripNotFound means no trip with the given id exists in the
	// currently held trip list.
	ErrTripNotFound = errors.New("trip not found")
)

// Backend is the slice of the API client the repository consumes.
type Backend interface {
	GetTrips(ctx context.Context) ([]api.Trip, error)
	CreateTrip(ctx context.Context, params api.TripParams) (api.Trip, error)
	AddOrderToTrip(ctx context.Context, tripID string, params api.OrderParams) (api.Trip, error)
	CompleteTrip(ctx context.Context, tripID string) error
	GetImage(ctx context.Context, photoID string) (string, error)
}

// TripStore is the durable document store for the merged trip list.
type TripStore interface {
	Load() ([]model.Trip, error)
	Replace(trips []model.Trip) error
}

// TripCreationResult is the outcome of creating a trip.
type TripCreationResult interface {
	isTripCreationResult()
}

type TripCreationSuccess struct {
	Trip model.Trip
}

type TripCreationError struct {
	Err error
}

func (TripCreationSuccess) isTripCreationResult() {}
func (TripCreationError) isTripCreationResult()   {}

// TripsRepository owns the merged trip list. A single mutex serializes
// merges against local mutations, so a mutation is either visible to the
// merge snapshot or applied to the merged result — never lost.
type TripsRepository struct {
	backend       Backend
	store         TripStore
	logger        *zap.Logger
	deviceID      string
	pickUpAllowed bool

	mu    sync.Mutex
	group singleflight.Group
	trips *observable.State[[]model.Trip]
}

func NewTripsRepository(backend Backend, store TripStore, deviceID string, pickUpAllowed bool, logger *zap.Logger) (*TripsRepository, error) {
	repo := &TripsRepository{
		backend:       backend,
		store:         store,
		logger:        logger,
		deviceID:      deviceID,
		pickUpAllowed: pickUpAllowed,
		trips:         observable.NewState[[]model.Trip](),
	}

	persisted, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted trips: %w", err)
	}
	repo.trips.Set(persisted)

	return repo, nil
}

// Trips is the observable merged trip list.
func (r *TripsRepository) Trips() *observable.State[[]model.Trip] {
	return r.trips
}

// Snapshot returns the currently held trip list.
func (r *TripsRepository) Snapshot() []model.Trip {
	trips, _ := r.trips.Get()
	return trips
}

// FindOrder locates an order and its owning trip in the held list.
func (r *TripsRepository) FindOrder(orderID string) (model.Trip, model.Order, bool) {
	for _, trip := range r.Snapshot() {
		if order, ok := trip.Order(orderID); ok {
			return trip, order, true
		}
	}
	return model.Trip{}, model.Order{}, false
}

// RefreshTrips fetches the remote trip list, merges it with the held
// local order state, persists the result and publishes it. Concurrent
// calls collapse into a single fetch. On failure the previously
// published list stays untouched.
func (r *TripsRepository) RefreshTrips(ctx context.Context) error {
	_, err, _ := r.group.Do("refresh", func() (any, error) {
		remote, err := r.backend.GetTrips(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch trips: %w", err)
		}

		// Thumbnail fetches happen before the lock so a slow backend
		// never stalls local order mutations.
		thumbs := r.prefetchThumbnails(ctx, remote, r.Snapshot())

		r.mu.Lock()
		defer r.mu.Unlock()

		merged := r.mergeTrips(remote, r.Snapshot(), thumbs)
		if err := r.store.Replace(merged); err != nil {
			return nil, fmt.Errorf("failed to persist trips: %w", err)
		}
		r.trips.Set(merged)
		return nil, nil
	})
	return err
}

// UpdateLocalOrder applies a pure mutation to the order with the given
// id, re-persists the whole list and republishes it. The mutation must
// not keep references into the snapshot it receives.
func (r *TripsRepository) UpdateLocalOrder(orderID string, mutate func(model.Order) model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trips := r.Snapshot()
	found := false
	updated := make([]model.Trip, 0, len(trips))
	for _, trip := range trips {
		orders := make([]model.Order, 0, len(trip.Orders))
		for _, order := range trip.Orders {
			if order.ID == orderID {
				order = mutate(order)
				found = true
			}
			orders = append(orders, order)
		}
		trip.Orders = orders
		updated = append(updated, trip)
	}
	if !found {
		return ErrOrderNotFound
	}

	if err := r.store.Replace(updated); err != nil {
		return fmt.Errorf("failed to persist trips: %w", err)
	}
	r.trips.Set(updated)
	return nil
}

// CreateTrip creates a trip on the backend and splices it into the held
// list.
func (r *TripsRepository) CreateTrip(ctx context.Context, destination model.Destination) TripCreationResult {
	remote, err := r.backend.CreateTrip(ctx, api.TripParams{
		DeviceID:    r.deviceID,
		Destination: &destination,
	})
	if err != nil {
		return TripCreationError{Err: err}
	}

	thumbs := r.prefetchThumbnails(ctx, []api.Trip{remote}, r.Snapshot())

	r.mu.Lock()
	defer r.mu.Unlock()

	trip := r.localTripFromRemote(remote, nil, thumbs)
	updated := append(r.Snapshot(), trip)
	if err := r.store.Replace(updated); err != nil {
		return TripCreationError{Err: fmt.Errorf("failed to persist trips: %w", err)}
	}
	r.trips.Set(updated)
	return TripCreationSuccess{Trip: trip}
}

// AddOrderToTrip adds an order to a trip on the backend and replaces the
// held trip with the backend's updated version, carrying local order
// state forward.
func (r *TripsRepository) AddOrderToTrip(ctx context.Context, tripID string, params api.OrderParams) (model.Trip, error) {
	remote, err := r.backend.AddOrderToTrip(ctx, tripID, params)
	if err != nil {
		return model.Trip{}, fmt.Errorf("failed to add order to trip: %w", err)
	}

	thumbs := r.prefetchThumbnails(ctx, []api.Trip{remote}, r.Snapshot())

	r.mu.Lock()
	defer r.mu.Unlock()

	trips := r.Snapshot()
	var result model.Trip
	found := false
	updated := make([]model.Trip, 0, len(trips))
	for _, trip := range trips {
		if trip.ID == remote.TripID {
			trip = r.localTripFromRemote(remote, trip.Orders, thumbs)
			result = trip
			found = true
		}
		updated = append(updated, trip)
	}
	if !found {
		result = r.localTripFromRemote(remote, nil, thumbs)
		updated = append(updated, result)
	}

	if err := r.store.Replace(updated); err != nil {
		return model.Trip{}, fmt.Errorf("failed to persist trips: %w", err)
	}
	r.trips.Set(updated)
	return result, nil
}

// CompleteTrip completes a trip on the backend.
func (r *TripsRepository) CompleteTrip(ctx context.Context, tripID string) error {
	return r.backend.CompleteTrip(ctx, tripID)
}

// mergeTrips builds the new local list: the remote list decides which
// trips and orders exist, the old local list contributes unsynced local
// order state, joined by order id.
func (r *TripsRepository) mergeTrips(remote []api.Trip, local []model.Trip, thumbs map[string]string) []model.Trip {
	if legacy, ok := findLegacyTrip(remote); ok {
		// Legacy backend contract: the whole trip is one destination.
		// Only the first active legacy trip is honoured.
		return []model.Trip{r.localTripFromLegacyRemote(legacy, local)}
	}

	localByID := make(map[string]model.Trip, len(local))
	for _, t := range local {
		localByID[t.ID] = t
	}

	merged := make([]model.Trip, 0, len(remote))
	for _, remoteTrip := range remote {
		var prevOrders []model.Order
		if prev, ok := localByID[remoteTrip.TripID]; ok {
			prevOrders = prev.Orders
		}
		merged = append(merged, r.localTripFromRemote(remoteTrip, prevOrders, thumbs))
	}
	return merged
}

func findLegacyTrip(remote []api.Trip) (api.Trip, bool) {
	for _, t := range remote {
		if len(t.Orders) == 0 && model.TripStatusFromString(t.Status) == model.TripStatusActive {
			return t, true
		}
	}
	return api.Trip{}, false
}

func (r *TripsRepository) localTripFromRemote(remote api.Trip, prevOrders []model.Order, thumbs map[string]string) model.Trip {
	prevByID := make(map[string]model.Order, len(prevOrders))
	for _, o := range prevOrders {
		prevByID[o.ID] = o
	}

	orders := make([]model.Order, 0, len(remote.Orders))
	for _, remoteOrder := range remote.Orders {
		prev, hasPrev := prevByID[remoteOrder.OrderID]
		orders = append(orders, r.localOrderFromRemote(remoteOrder, prev, hasPrev, thumbs))
	}

	return model.Trip{
		ID:       remote.TripID,
		Status:   model.TripStatusFromString(remote.Status),
		Metadata: remote.Metadata.StringValues(),
		Orders:   orders,
		Views:    remote.Views,
	}
}

// localTripFromLegacyRemote synthesizes the single order of a legacy
// trip: its id is the trip id and its whole destination is the trip's.
func (r *TripsRepository) localTripFromLegacyRemote(remote api.Trip, local []model.Trip) model.Trip {
	var prev model.Order
	hasPrev := false
	for _, t := range local {
		if t.ID == remote.TripID {
			if o, ok := t.Order(remote.TripID); ok {
				prev, hasPrev = o, true
			}
			break
		}
	}

	var destination model.Destination
	if remote.Destination != nil {
		destination = *remote.Destination
	}

	status := model.OrderStatusOngoing
	if hasPrev && prev.Status == model.OrderStatusCompleted {
		// A locally completed legacy order stays completed: the legacy
		// backend never reports order status back.
		status = model.OrderStatusCompleted
	}

	order := model.Order{
		ID:          remote.TripID,
		Destination: destination,
		Estimate:    remote.Estimate,
		Status:      status,
		Metadata:    remote.Metadata,
		IsPickedUp:  r.initialPickedUp(prev, hasPrev),
		Legacy:      true,
	}
	if hasPrev {
		order.Note = prev.Note
		order.Photos = prev.Photos
	}

	return model.Trip{
		ID:       remote.TripID,
		Status:   model.TripStatusFromString(remote.Status),
		Metadata: remote.Metadata.StringValues(),
		Orders:   []model.Order{order},
		Views:    remote.Views,
	}
}

func (r *TripsRepository) localOrderFromRemote(remote api.Order, prev model.Order, hasPrev bool, thumbs map[string]string) model.Order {
	order := model.Order{
		ID:          remote.OrderID,
		Destination: remote.Destination,
		ScheduledAt: remote.ScheduledAt,
		Estimate:    remote.Estimate,
		Status:      model.OrderStatusFromString(remote.Status),
		Metadata:    remote.Metadata,
		IsPickedUp:  r.initialPickedUp(prev, hasPrev),
	}

	if hasPrev {
		order.Note = prev.Note
		order.Photos = prev.Photos
	} else {
		// First sighting: seed the local note from what the backend
		// already holds for this app.
		order.Note = remote.Metadata.App.Note
	}

	order.Photos = hydrateConfirmedPhotos(order, thumbs)
	return order
}

// prefetchThumbnails fetches thumbnails for photo ids the backend has
// confirmed but the local set does not hold yet. It runs before the
// repository lock is taken; a fetch failure degrades to an empty
// thumbnail rather than failing the merge.
func (r *TripsRepository) prefetchThumbnails(ctx context.Context, remote []api.Trip, local []model.Trip) map[string]string {
	known := make(map[string]struct{})
	for _, trip := range local {
		for _, order := range trip.Orders {
			for _, p := range order.Photos {
				known[p.PhotoID] = struct{}{}
			}
		}
	}

	thumbs := make(map[string]string)
	for _, trip := range remote {
		for _, order := range trip.Orders {
			for _, id := range order.Metadata.App.PhotoIDs {
				if _, ok := known[id]; ok {
					continue
				}
				if _, ok := thumbs[id]; ok {
					continue
				}
				thumbnail, err := r.backend.GetImage(ctx, id)
				if err != nil {
					r.logger.Warn("failed to fetch confirmed photo thumbnail",
						zap.String("photo_id", id), zap.Error(err))
				}
				thumbs[id] = thumbnail
			}
		}
	}
	return thumbs
}

// hydrateConfirmedPhotos materialises confirmed photo ids the local set
// does not hold as uploaded entries, using the prefetched thumbnails.
func hydrateConfirmedPhotos(order model.Order, thumbs map[string]string) []model.PhotoForUpload {
	photos := order.Photos
	known := make(map[string]struct{}, len(photos))
	for _, p := range photos {
		known[p.PhotoID] = struct{}{}
	}

	for _, id := range order.Metadata.App.PhotoIDs {
		if _, ok := known[id]; ok {
			continue
		}
		photos = append(photos, model.PhotoForUpload{
			PhotoID:         id,
			OrderID:         order.ID,
			Base64Thumbnail: thumbs[id],
			State:           model.PhotoStateUploaded,
		})
	}
	return photos
}

func (r *TripsRepository) initialPickedUp(prev model.Order, hasPrev bool) bool {
	if hasPrev {
		return prev.IsPickedUp
	}
	// When pickup is not part of the workflow, orders start as already
	// picked up.
	return !r.pickUpAllowed
}
