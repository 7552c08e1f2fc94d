package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/courierapp/tripsync/internal/model"
)

// ErrPhotoNotFound is returned when a journal entry does not exist.
var ErrPhotoNotFound = errors.New("photo not found in journal")

var photoKeyPrefix = []byte("photo/")

// PhotoJournal is the durable photoId -> PhotoForUpload map backing the
// upload queue. Entries survive process restarts; the queue reloads
// everything not yet uploaded at startup.
type PhotoJournal struct {
	db *badger.DB
}

// OpenPhotoJournal opens (or creates) the journal at dir.
func OpenPhotoJournal(dir string) (*PhotoJournal, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo journal: %w", err)
	}
	return &PhotoJournal{db: db}, nil
}

func (j *PhotoJournal) Close() error {
	return j.db.Close()
}

func photoKey(photoID string) []byte {
	return append(append([]byte{}, photoKeyPrefix...), photoID...)
}

// Put writes or replaces a journal entry.
func (j *PhotoJournal) Put(photo model.PhotoForUpload) error {
	raw, err := json.Marshal(photo)
	if err != nil {
		return fmt.Errorf("failed to encode photo %s: %w", photo.PhotoID, err)
	}
	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(photoKey(photo.PhotoID), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to persist photo %s: %w", photo.PhotoID, err)
	}
	return nil
}

// Get reads a single entry.
func (j *PhotoJournal) Get(photoID string) (model.PhotoForUpload, error) {
	var photo model.PhotoForUpload
	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(photoKey(photoID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrPhotoNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &photo)
		})
	})
	if err != nil {
		return model.PhotoForUpload{}, err
	}
	return photo, nil
}

// Delete removes an entry. Deleting a missing entry is not an error.
func (j *PhotoJournal) Delete(photoID string) error {
	err := j.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(photoKey(photoID))
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo %s: %w", photoID, err)
	}
	return nil
}

// All lists every journal entry.
func (j *PhotoJournal) All() ([]model.PhotoForUpload, error) {
	var photos []model.PhotoForUpload
	err := j.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(photoKeyPrefix); it.ValidForPrefix(photoKeyPrefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var photo model.PhotoForUpload
				if err := json.Unmarshal(val, &photo); err != nil {
					return err
				}
				photos = append(photos, photo)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read photo journal: %w", err)
	}
	return photos, nil
}

// Pending lists entries that still need an upload attempt.
func (j *PhotoJournal) Pending() ([]model.PhotoForUpload, error) {
	all, err := j.All()
	if err != nil {
		return nil, err
	}
	var pending []model.PhotoForUpload
	for _, p := range all {
		if p.State != model.PhotoStateUploaded {
			pending = append(pending, p)
		}
	}
	return pending, nil
}
