package interactor

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/courierapp/tripsync/internal/metrics"
	"github.com/courierapp/tripsync/internal/model"
	"github.com/courierapp/tripsync/internal/observable"
	"github.com/courierapp/tripsync/internal/taskdomain"
)

//go:generate mockgen -source ./photoqueue.go -destination=./mocks/photoqueue.go -package=mock_interactor

// Uploader is the slice of the API client the queue needs.
type Uploader interface {
	UploadImage(ctx context.Context, photoID, base64Data string) error
}

// Journal is the durable backing store of the queue.
type Journal interface {
	Put(photo model.PhotoForUpload) error
	All() ([]model.PhotoForUpload, error)
}

// PhotoUploadQueue is a durable, observable map of photoId -> photo that
// uploads entries in the background with exponential backoff. Entries
// survive restarts: Start reloads the journal and re-attempts everything
// not yet uploaded.
type PhotoUploadQueue struct {
	uploader Uploader
	journal  Journal
	domain   *taskdomain.Domain
	policy   RetryPolicy
	logger   *zap.Logger
	errs     *observable.Stream[error]

	mu        sync.Mutex
	uploading map[string]bool
	state     *observable.State[map[string]model.PhotoForUpload]

	// onUploaded lets the owner propagate a finished upload back onto
	// the owning order. Set before Start; may be nil.
	onUploaded func(photo model.PhotoForUpload)
}

func NewPhotoUploadQueue(uploader Uploader, journal Journal, domain *taskdomain.Domain, policy RetryPolicy, errs *observable.Stream[error], logger *zap.Logger) *PhotoUploadQueue {
	return &PhotoUploadQueue{
		uploader:  uploader,
		journal:   journal,
		domain:    domain,
		policy:    policy,
		logger:    logger,
		errs:      errs,
		uploading: make(map[string]bool),
		state:     observable.NewState[map[string]model.PhotoForUpload](),
	}
}

// SetUploadedHook registers the callback invoked after a successful
// upload. Must be called before Start.
func (q *PhotoUploadQueue) SetUploadedHook(hook func(photo model.PhotoForUpload)) {
	q.onUploaded = hook
}

// State is the observable queue contents for UI binding.
func (q *PhotoUploadQueue) State() *observable.State[map[string]model.PhotoForUpload] {
	return q.state
}

// Start loads the journal and schedules an upload for every entry that
// was interrupted or never attempted. Entries in the error state wait
// for a manual Retry.
func (q *PhotoUploadQueue) Start() error {
	photos, err := q.journal.All()
	if err != nil {
		return fmt.Errorf("failed to load photo journal: %w", err)
	}

	snapshot := make(map[string]model.PhotoForUpload, len(photos))
	for _, p := range photos {
		if p.State == model.PhotoStateUploading {
			// Interrupted by a previous shutdown; treat as never started.
			p.State = model.PhotoStateNotUploaded
		}
		snapshot[p.PhotoID] = p
	}
	q.state.Set(snapshot)
	q.publishDepth(snapshot)

	for _, p := range snapshot {
		if p.State == model.PhotoStateNotUploaded {
			q.schedule(p)
		}
	}
	return nil
}

// AddToQueue persists the photo and schedules its first upload attempt.
func (q *PhotoUploadQueue) AddToQueue(photo model.PhotoForUpload) error {
	photo.State = model.PhotoStateNotUploaded
	if err := q.journal.Put(photo); err != nil {
		return err
	}
	q.updateState(photo)
	q.schedule(photo)
	return nil
}

// Retry restarts uploading for an entry that exhausted its attempts. A
// retry while an upload is already running is a no-op.
func (q *PhotoUploadQueue) Retry(photoID string) {
	q.mu.Lock()
	if q.uploading[photoID] {
		q.mu.Unlock()
		return
	}
	q.mu.Unlock()

	snapshot, _ := q.state.Get()
	photo, ok := snapshot[photoID]
	if !ok || photo.State != model.PhotoStateError {
		return
	}
	photo.State = model.PhotoStateNotUploaded
	if err := q.journal.Put(photo); err != nil {
		q.logger.Warn("failed to persist photo state", zap.String("photo_id", photoID), zap.Error(err))
	}
	q.updateState(photo)
	q.schedule(photo)
}

// schedule starts the upload loop for a photo unless one is already
// running, guaranteeing at most one concurrent upload per photo id.
func (q *PhotoUploadQueue) schedule(photo model.PhotoForUpload) {
	q.mu.Lock()
	if q.uploading[photo.PhotoID] {
		q.mu.Unlock()
		return
	}
	q.uploading[photo.PhotoID] = true
	q.mu.Unlock()

	q.domain.Go("photo-upload-"+photo.PhotoID, func(ctx context.Context) error {
		defer func() {
			q.mu.Lock()
			delete(q.uploading, photo.PhotoID)
			q.mu.Unlock()
		}()
		return q.uploadWithRetries(ctx, photo)
	})
}

func (q *PhotoUploadQueue) uploadWithRetries(ctx context.Context, photo model.PhotoForUpload) error {
	for attempt := 0; ; attempt++ {
		photo.State = model.PhotoStateUploading
		q.persist(photo)

		// The journaled thumbnail is the upload payload. FilePath is kept
		// only for display; the original file may be gone by the time a
		// restarted queue resumes this entry.
		err := q.uploader.UploadImage(ctx, photo.PhotoID, photo.Base64Thumbnail)
		if err == nil {
			photo.State = model.PhotoStateUploaded
			q.persist(photo)
			metrics.PhotoUploadsTotal.WithLabelValues("success").Inc()
			if q.onUploaded != nil {
				q.onUploaded(photo)
			}
			return nil
		}

		metrics.PhotoUploadsTotal.WithLabelValues("failure").Inc()
		q.logger.Warn("photo upload attempt failed",
			zap.String("photo_id", photo.PhotoID), zap.Int("attempt", attempt), zap.Error(err))

		if attempt >= q.policy.RetryTimes {
			photo.State = model.PhotoStateError
			q.persist(photo)
			metrics.PhotoUploadsTotal.WithLabelValues("exhausted").Inc()
			q.errs.Emit(fmt.Errorf("photo %s upload retries exhausted: %w", photo.PhotoID, err))
			return nil
		}

		if err := taskdomain.Sleep(ctx, q.policy.Delay(attempt)); err != nil {
			// Shutdown mid-backoff: the entry stays pending in the
			// journal and is re-attempted on the next start.
			photo.State = model.PhotoStateNotUploaded
			q.persist(photo)
			return nil
		}
	}
}

func (q *PhotoUploadQueue) persist(photo model.PhotoForUpload) {
	if err := q.journal.Put(photo); err != nil {
		q.logger.Warn("failed to persist photo state",
			zap.String("photo_id", photo.PhotoID), zap.Error(err))
	}
	q.updateState(photo)
}

func (q *PhotoUploadQueue) updateState(photo model.PhotoForUpload) {
	q.mu.Lock()
	defer q.mu.Unlock()
	current, _ := q.state.Get()
	next := make(map[string]model.PhotoForUpload, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[photo.PhotoID] = photo
	q.state.Set(next)
	q.publishDepth(next)
}

func (q *PhotoUploadQueue) publishDepth(snapshot map[string]model.PhotoForUpload) {
	depth := 0
	for _, p := range snapshot {
		if p.State != model.PhotoStateUploaded {
			depth++
		}
	}
	metrics.PhotoQueueDepth.Set(float64(depth))
}
