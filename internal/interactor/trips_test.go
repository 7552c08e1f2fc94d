package interactor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/courierapp/tripsync/internal/api"
	mock_imaging "github.com/courierapp/tripsync/internal/imaging/mocks"
	mock_interactor "github.com/courierapp/tripsync/internal/interactor/mocks"
	"github.com/courierapp/tripsync/internal/model"
	"github.com/courierapp/tripsync/internal/observable"
	"github.com/courierapp/tripsync/internal/repository"
	mock_repository "github.com/courierapp/tripsync/internal/repository/mocks"
	"github.com/courierapp/tripsync/internal/storage"
	"github.com/courierapp/tripsync/internal/taskdomain"
	mock_tracking "github.com/courierapp/tripsync/internal/tracking/mocks"
)

type interactorFixture struct {
	repoBackend *mock_repository.MockBackend
	backend     *mock_interactor.MockCompletionBackend
	tracker     *mock_tracking.MockService
	queue       *mock_interactor.MockQueue
	decoder     *mock_imaging.MockDecoder
	repo        *repository.TripsRepository
	errs        *observable.Stream[error]
	interactor  *TripsInteractor
}

// newInteractorFixture wires a real repository over a temp-dir store and
// mocks every outward dependency. The repository backend stays offline
// unless a test overrides it, so background refreshes leave the held
// list untouched.
func newInteractorFixture(t *testing.T, ctrl *gomock.Controller, trips []model.Trip) *interactorFixture {
	t.Helper()

	store, err := storage.NewTripFileStore(filepath.Join(t.TempDir(), "trips.json"))
	require.NoError(t, err)
	if trips != nil {
		require.NoError(t, store.Replace(trips))
	}

	repoBackend := mock_repository.NewMockBackend(ctrl)
	repoBackend.EXPECT().GetTrips(gomock.Any()).Return(nil, errors.New("offline")).AnyTimes()

	repo, err := repository.NewTripsRepository(repoBackend, store, "device-1", true, zap.NewNop())
	require.NoError(t, err)

	domain := taskdomain.New(zap.NewNop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		domain.Shutdown(ctx)
	})

	f := &interactorFixture{
		repoBackend: repoBackend,
		backend:     mock_interactor.NewMockCompletionBackend(ctrl),
		tracker:     mock_tracking.NewMockService(ctrl),
		queue:       mock_interactor.NewMockQueue(ctrl),
		decoder:     mock_imaging.NewMockDecoder(ctrl),
		repo:        repo,
		errs:        observable.NewStream[error](8),
	}
	f.interactor = NewTripsInteractor(
		repo, f.backend, f.tracker, f.queue, f.decoder,
		domain, taskdomain.NewPool(domain, 2), f.errs, zap.NewNop(),
	)
	return f
}

func singleOrderTrip(order model.Order) []model.Trip {
	return []model.Trip{{
		ID:     "t1",
		Status: model.TripStatusActive,
		Orders: []model.Order{order},
	}}
}

func legacyTrip(status model.OrderStatus) []model.Trip {
	return []model.Trip{{
		ID:     "t-legacy",
		Status: model.TripStatusActive,
		Orders: []model.Order{{
			ID:     "t-legacy",
			Status: status,
			Note:   "call on arrival",
			Legacy: true,
		}},
	}}
}

func TestCompleteOrderRejectedWhenNotClockedIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{ID: "o1", Status: model.OrderStatusOngoing}))
	f.tracker.EXPECT().IsTracking().Return(false)

	res := f.interactor.CompleteOrder(context.Background(), "o1")
	failure, ok := res.(api.OrderCompletionFailure)
	require.True(t, ok)
	assert.ErrorIs(t, failure.Err, ErrNotClockedIn)
}

func TestCompleteOrderUnknownOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, nil)
	f.tracker.EXPECT().IsTracking().Return(true)

	res := f.interactor.CompleteOrder(context.Background(), "nope")
	failure, ok := res.(api.OrderCompletionFailure)
	require.True(t, ok)
	assert.ErrorIs(t, failure.Err, repository.ErrOrderNotFound)
}

func TestCompleteOrderSkipsPushWhenMetadataInSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{
		ID:       "o1",
		Status:   model.OrderStatusOngoing,
		Note:     "fragile",
		Metadata: model.Metadata{App: model.AppMetadata{Note: "fragile"}},
	}))
	f.tracker.EXPECT().IsTracking().Return(true)
	f.backend.EXPECT().CompleteOrder(gomock.Any(), "t1", "o1").Return(api.OrderCompletionSuccess{})

	res := f.interactor.CompleteOrder(context.Background(), "o1")
	assert.IsType(t, api.OrderCompletionSuccess{}, res)

	order, ok := f.interactor.GetOrder("o1")
	require.True(t, ok)
	assert.Equal(t, model.OrderStatusCompleted, order.Status)
}

func TestCompleteOrderPushesUnsyncedMetadataFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{
		ID:     "o1",
		Status: model.OrderStatusOngoing,
		Note:   "ring twice",
		Photos: []model.PhotoForUpload{{PhotoID: "p1", State: model.PhotoStateUploaded}},
	}))
	f.tracker.EXPECT().IsTracking().Return(true)

	push := f.backend.EXPECT().
		UpdateOrderMetadata(gomock.Any(), "t1", "o1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, md model.Metadata) error {
			assert.Equal(t, "ring twice", md.App.Note)
			assert.Equal(t, []string{"p1"}, md.App.PhotoIDs)
			return nil
		})
	f.backend.EXPECT().CompleteOrder(gomock.Any(), "t1", "o1").
		Return(api.OrderCompletionSuccess{}).
		After(push)

	res := f.interactor.CompleteOrder(context.Background(), "o1")
	assert.IsType(t, api.OrderCompletionSuccess{}, res)
}

func TestCompleteOrderAbortsWhenMetadataPushFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{
		ID:     "o1",
		Status: model.OrderStatusOngoing,
		Note:   "unsynced",
	}))
	f.tracker.EXPECT().IsTracking().Return(true)

	pushErr := errors.New("metadata rejected")
	f.backend.EXPECT().UpdateOrderMetadata(gomock.Any(), "t1", "o1", gomock.Any()).Return(pushErr)
	// No CompleteOrder expectation: the completion call must not happen.

	res := f.interactor.CompleteOrder(context.Background(), "o1")
	failure, ok := res.(api.OrderCompletionFailure)
	require.True(t, ok)
	assert.ErrorIs(t, failure.Err, pushErr)

	order, _ := f.interactor.GetOrder("o1")
	assert.Equal(t, model.OrderStatusOngoing, order.Status)
}

func TestCompleteOrderConflictOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		conflict api.OrderCompletionResult
	}{
		{name: "already completed", conflict: api.OrderCompletionAlreadyCompleted{}},
		{name: "already canceled", conflict: api.OrderCompletionAlreadyCanceled{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{
				ID:     "o1",
				Status: model.OrderStatusOngoing,
			}))
			f.tracker.EXPECT().IsTracking().Return(true)
			f.backend.EXPECT().CompleteOrder(gomock.Any(), "t1", "o1").Return(tc.conflict)

			res := f.interactor.CompleteOrder(context.Background(), "o1")
			assert.IsType(t, tc.conflict, res)

			// The conflict is informational; the next refresh brings
			// the authoritative status, nothing is written locally.
			order, _ := f.interactor.GetOrder("o1")
			assert.Equal(t, model.OrderStatusOngoing, order.Status)
		})
	}
}

func TestCancelOrderSetsCanceledStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{
		ID:     "o1",
		Status: model.OrderStatusOngoing,
	}))
	f.tracker.EXPECT().IsTracking().Return(true)
	f.backend.EXPECT().CancelOrder(gomock.Any(), "t1", "o1").Return(api.OrderCompletionSuccess{})

	res := f.interactor.CancelOrder(context.Background(), "o1")
	assert.IsType(t, api.OrderCompletionSuccess{}, res)

	order, _ := f.interactor.GetOrder("o1")
	assert.Equal(t, model.OrderStatusCanceled, order.Status)
}

func TestCompleteLegacyOrderGoesThroughTracking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, legacyTrip(model.OrderStatusOngoing))
	f.tracker.EXPECT().IsTracking().Return(true)
	f.tracker.EXPECT().
		SendCompletionEvent(gomock.Any(), "t-legacy", "call on arrival", false).
		Return(nil)
	// No completion backend expectations: legacy completion never calls
	// the order API.

	res := f.interactor.CompleteOrder(context.Background(), "t-legacy")
	assert.IsType(t, api.OrderCompletionSuccess{}, res)

	order, _ := f.interactor.GetOrder("t-legacy")
	assert.Equal(t, model.OrderStatusCompleted, order.Status)
}

func TestCancelLegacyOrderMarksCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, legacyTrip(model.OrderStatusOngoing))
	f.tracker.EXPECT().IsTracking().Return(true)
	f.tracker.EXPECT().
		SendCompletionEvent(gomock.Any(), "t-legacy", "call on arrival", true).
		Return(nil)

	res := f.interactor.CancelOrder(context.Background(), "t-legacy")
	assert.IsType(t, api.OrderCompletionSuccess{}, res)

	order, _ := f.interactor.GetOrder("t-legacy")
	assert.Equal(t, model.OrderStatusCanceled, order.Status)
}

func TestCompleteLegacyOrderTrackingFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, legacyTrip(model.OrderStatusOngoing))
	f.tracker.EXPECT().IsTracking().Return(true)

	markerErr := errors.New("marker rejected")
	f.tracker.EXPECT().
		SendCompletionEvent(gomock.Any(), "t-legacy", gomock.Any(), false).
		Return(markerErr)

	res := f.interactor.CompleteOrder(context.Background(), "t-legacy")
	failure, ok := res.(api.OrderCompletionFailure)
	require.True(t, ok)
	assert.ErrorIs(t, failure.Err, markerErr)

	order, _ := f.interactor.GetOrder("t-legacy")
	assert.Equal(t, model.OrderStatusOngoing, order.Status)
}

func TestSnoozeOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{
		ID:     "o1",
		Status: model.OrderStatusOngoing,
	}))
	f.tracker.EXPECT().IsTracking().Return(true).AnyTimes()
	f.backend.EXPECT().SnoozeOrder(gomock.Any(), "t1", "o1").Return(nil)
	f.backend.EXPECT().UnsnoozeOrder(gomock.Any(), "t1", "o1").Return(nil)

	require.NoError(t, f.interactor.SnoozeOrder(context.Background(), "o1"))
	order, _ := f.interactor.GetOrder("o1")
	assert.Equal(t, model.OrderStatusSnoozed, order.Status)

	require.NoError(t, f.interactor.UnsnoozeOrder(context.Background(), "o1"))
	order, _ = f.interactor.GetOrder("o1")
	assert.Equal(t, model.OrderStatusOngoing, order.Status)
}

func TestSnoozeOrderGuards(t *testing.T) {
	t.Run("not clocked in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{ID: "o1", Status: model.OrderStatusOngoing}))
		f.tracker.EXPECT().IsTracking().Return(false)

		err := f.interactor.SnoozeOrder(context.Background(), "o1")
		assert.ErrorIs(t, err, ErrNotClockedIn)
	})

	t.Run("legacy orders cannot be snoozed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newInteractorFixture(t, ctrl, legacyTrip(model.OrderStatusOngoing))
		f.tracker.EXPECT().IsTracking().Return(true)
		// The guard fires before any network call.

		err := f.interactor.SnoozeOrder(context.Background(), "t-legacy")
		assert.ErrorIs(t, err, ErrIllegalOperation)
	})
}

func TestSetOrderPickedUp(t *testing.T) {
	t.Run("legacy order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newInteractorFixture(t, ctrl, legacyTrip(model.OrderStatusOngoing))
		f.tracker.EXPECT().SendPickedUp(gomock.Any(), "t-legacy").Return(nil)

		require.NoError(t, f.interactor.SetOrderPickedUp(context.Background(), "t-legacy"))

		order, _ := f.interactor.GetOrder("t-legacy")
		assert.True(t, order.IsPickedUp)
	})

	t.Run("regular order is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{ID: "o1", Status: model.OrderStatusOngoing}))

		err := f.interactor.SetOrderPickedUp(context.Background(), "o1")
		assert.ErrorIs(t, err, ErrIllegalOperation)
	})
}

func TestUpdateOrderNoteIsLocalOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{ID: "o1", Status: model.OrderStatusOngoing}))

	require.NoError(t, f.interactor.UpdateOrderNote("o1", "new instructions"))

	order, _ := f.interactor.GetOrder("o1")
	assert.Equal(t, "new instructions", order.Note)
	assert.False(t, order.MetadataInSync(), "the edit waits for the next metadata push")
}

func TestAddPhotoToOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{ID: "o1", Status: model.OrderStatusOngoing}))

	f.decoder.EXPECT().Thumbnail("/photos/shot.jpg", thumbnailMaxSide).Return("dGh1bWI=", nil)

	var queued model.PhotoForUpload
	f.queue.EXPECT().AddToQueue(gomock.Any()).DoAndReturn(func(p model.PhotoForUpload) error {
		queued = p
		return nil
	})

	require.NoError(t, f.interactor.AddPhotoToOrder(context.Background(), "o1", "/photos/shot.jpg"))

	require.NotEmpty(t, queued.PhotoID)
	assert.Equal(t, "o1", queued.OrderID)
	assert.Equal(t, model.PhotoStateNotUploaded, queued.State)
	assert.Equal(t, "dGh1bWI=", queued.Base64Thumbnail)

	order, _ := f.interactor.GetOrder("o1")
	photo, ok := order.Photo(queued.PhotoID)
	require.True(t, ok, "the photo is attached to the order before upload")
	assert.Equal(t, model.PhotoStateNotUploaded, photo.State)
}

func TestAddPhotoToOrderFailures(t *testing.T) {
	t.Run("unknown order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newInteractorFixture(t, ctrl, nil)

		err := f.interactor.AddPhotoToOrder(context.Background(), "nope", "/photos/shot.jpg")
		assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	})

	t.Run("unreadable image", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{ID: "o1", Status: model.OrderStatusOngoing}))
		f.decoder.EXPECT().Thumbnail(gomock.Any(), gomock.Any()).Return("", errors.New("corrupt file"))

		err := f.interactor.AddPhotoToOrder(context.Background(), "o1", "/photos/bad.jpg")
		require.Error(t, err)

		order, _ := f.interactor.GetOrder("o1")
		assert.Empty(t, order.Photos, "nothing is attached when decoding fails")
	})
}

func TestOnPhotoUploadedUpdatesOwningOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{
		ID:     "o1",
		Status: model.OrderStatusOngoing,
		Photos: []model.PhotoForUpload{{PhotoID: "p1", OrderID: "o1", State: model.PhotoStateUploading}},
	}))

	f.interactor.OnPhotoUploaded(model.PhotoForUpload{PhotoID: "p1", OrderID: "o1", State: model.PhotoStateUploaded})

	order, _ := f.interactor.GetOrder("o1")
	photo, ok := order.Photo("p1")
	require.True(t, ok)
	assert.Equal(t, model.PhotoStateUploaded, photo.State)
}

func TestOnPhotoUploadedTolerantOfGoneOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, nil)

	// The owning order got dropped by a refresh; the upload result is
	// simply discarded, not surfaced as an error.
	f.interactor.OnPhotoUploaded(model.PhotoForUpload{PhotoID: "p1", OrderID: "gone", State: model.PhotoStateUploaded})

	select {
	case err := <-f.errs.C():
		t.Fatalf("unexpected error surfaced: %v", err)
	default:
	}
}

func TestRetryPhotoUploadForwardsToQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, nil)
	f.queue.EXPECT().Retry("p1")

	f.interactor.RetryPhotoUpload("p1")
}

func TestAddOrderToTrip(t *testing.T) {
	t.Run("legacy trip rejects orders before any network call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newInteractorFixture(t, ctrl, legacyTrip(model.OrderStatusOngoing))

		err := f.interactor.AddOrderToTrip(context.Background(), "t-legacy", model.Destination{})
		assert.ErrorIs(t, err, ErrIllegalOperation)
	})

	t.Run("unknown trip", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newInteractorFixture(t, ctrl, nil)

		err := f.interactor.AddOrderToTrip(context.Background(), "nope", model.Destination{})
		assert.ErrorIs(t, err, repository.ErrTripNotFound)
	})

	t.Run("regular trip", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{ID: "o1", Status: model.OrderStatusOngoing}))

		f.repoBackend.EXPECT().AddOrderToTrip(gomock.Any(), "t1", gomock.Any()).DoAndReturn(
			func(_ context.Context, tripID string, params api.OrderParams) (api.Trip, error) {
				assert.NotEmpty(t, params.OrderID, "order ids are generated client-side")
				return api.Trip{
					TripID: "t1",
					Status: "active",
					Orders: []api.Order{
						{OrderID: "o1", Status: "ongoing"},
						{OrderID: params.OrderID, Destination: params.Destination, Status: "ongoing"},
					},
				}, nil
			})

		err := f.interactor.AddOrderToTrip(context.Background(), "t1", model.Destination{Address: "12 Main St"})
		require.NoError(t, err)

		trips := f.repo.Snapshot()
		require.Len(t, trips, 1)
		assert.Len(t, trips[0].Orders, 2)
	})
}

func TestCurrentAndCompletedTripViews(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, []model.Trip{
		{ID: "t-done", Status: model.TripStatusCompleted},
		{ID: "t-active", Status: model.TripStatusActive},
		{ID: "t-later", Status: model.TripStatusActive},
		{ID: "t-processing", Status: model.TripStatusProcessingCompletion},
	})

	current, set := f.interactor.CurrentTrip().Get()
	require.True(t, set)
	require.NotNil(t, current)
	assert.Equal(t, "t-active", current.ID, "the first active trip is current")

	completed, set := f.interactor.CompletedTrips().Get()
	require.True(t, set)
	ids := make([]string, 0, len(completed))
	for _, trip := range completed {
		ids = append(ids, trip.ID)
	}
	assert.ElementsMatch(t, []string{"t-done", "t-processing"}, ids)
}

func TestRefreshTripsSurfacesFailureOnErrorStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, nil)

	f.interactor.RefreshTrips()

	select {
	case err := <-f.errs.C():
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh failure never reached the error stream")
	}
}

func TestCompleteTripRefreshesInBackground(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, singleOrderTrip(model.Order{ID: "o1", Status: model.OrderStatusOngoing}))
	f.repoBackend.EXPECT().CompleteTrip(gomock.Any(), "t1").Return(nil)

	require.NoError(t, f.interactor.CompleteTrip(context.Background(), "t1"))
}

func TestCreateTripDelegatesToRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInteractorFixture(t, ctrl, nil)
	f.repoBackend.EXPECT().CreateTrip(gomock.Any(), gomock.Any()).Return(api.Trip{
		TripID: "t-new",
		Status: "active",
	}, nil)

	res := f.interactor.CreateTrip(context.Background(), model.Destination{Latitude: 53.5, Longitude: 10.0})
	success, ok := res.(repository.TripCreationSuccess)
	require.True(t, ok)
	assert.Equal(t, "t-new", success.Trip.ID)
}
