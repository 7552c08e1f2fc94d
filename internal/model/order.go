package model

import (
	"fmt"
	"time"
)

// OrderStatus is the lifecycle state of an order. The backend spells
// canceled with a double l.
type OrderStatus string

const (
	OrderStatusOngoing   OrderStatus = "ongoing"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "cancelled"
	OrderStatusSnoozed   OrderStatus = "snoozed"
	OrderStatusUnknown   OrderStatus = ""
)

func OrderStatusFromString(s string) OrderStatus {
	switch OrderStatus(s) {
	case OrderStatusOngoing, OrderStatusCompleted, OrderStatusCanceled, OrderStatusSnoozed:
		return OrderStatus(s)
	default:
		return OrderStatusUnknown
	}
}

// Destination is the delivery point of an order.
type Destination struct {
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Estimate is the backend route estimate for reaching the destination.
type Estimate struct {
	ArriveAt        *time.Time `json:"arrive_at,omitempty"`
	DurationSeconds int        `json:"duration_seconds,omitempty"`
	DistanceMeters  int        `json:"distance_meters,omitempty"`
}

// Order is the merged local representation of a remote order. Remote
// fields are authoritative for everything except the local-only block,
// which survives refreshes by being re-attached during the merge.
type Order struct {
	ID          string      `json:"id"`
	Destination Destination `json:"destination"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty"`
	Estimate    *Estimate   `json:"estimate,omitempty"`
	Status      OrderStatus `json:"status"`
	Metadata    Metadata    `json:"metadata"`

	// Local-only fields, never sent as-is to the backend.
	IsPickedUp bool             `json:"is_picked_up"`
	Note       string           `json:"note,omitempty"`
	Photos     []PhotoForUpload `json:"photos,omitempty"`
	Legacy     bool             `json:"legacy,omitempty"`
}

// ShortLabel is a human label for the order: address, then scheduled
// time, then raw coordinates.
func (o Order) ShortLabel() string {
	if o.Destination.Address != "" {
		return o.Destination.Address
	}
	if o.ScheduledAt != nil {
		return o.ScheduledAt.Format(time.RFC1123)
	}
	return fmt.Sprintf("%f, %f", o.Destination.Latitude, o.Destination.Longitude)
}

// ETA returns the estimated arrival time, if the backend provided one.
func (o Order) ETA() (time.Time, bool) {
	if o.Estimate == nil || o.Estimate.ArriveAt == nil {
		return time.Time{}, false
	}
	return *o.Estimate.ArriveAt, true
}

// AwaySeconds is the number of seconds until the ETA, if it is in the
// future.
func (o Order) AwaySeconds(now time.Time) (int64, bool) {
	eta, ok := o.ETA()
	if !ok {
		return 0, false
	}
	secs := int64(eta.Sub(now).Seconds())
	if secs < 0 {
		return 0, false
	}
	return secs, true
}

// PhotoIDs lists the ids of locally attached photos, in attach order.
func (o Order) PhotoIDs() []string {
	ids := make([]string, 0, len(o.Photos))
	for _, p := range o.Photos {
		ids = append(ids, p.PhotoID)
	}
	return ids
}

// Photo returns the attached photo with the given id.
func (o Order) Photo(photoID string) (PhotoForUpload, bool) {
	for _, p := range o.Photos {
		if p.PhotoID == photoID {
			return p, true
		}
	}
	return PhotoForUpload{}, false
}

// WithPhoto returns a copy of the order with the photo appended, or with
// the existing entry replaced when the id is already attached.
func (o Order) WithPhoto(photo PhotoForUpload) Order {
	photos := make([]PhotoForUpload, 0, len(o.Photos)+1)
	replaced := false
	for _, p := range o.Photos {
		if p.PhotoID == photo.PhotoID {
			photos = append(photos, photo)
			replaced = true
		} else {
			photos = append(photos, p)
		}
	}
	if !replaced {
		photos = append(photos, photo)
	}
	res := o
	res.Photos = photos
	return res
}

// MetadataInSync reports whether the local note and photo id list match
// what the backend last confirmed in the order metadata. When true,
// completion can skip the metadata push.
func (o Order) MetadataInSync() bool {
	if o.Note != o.Metadata.App.Note {
		return false
	}
	local := o.PhotoIDs()
	remote := o.Metadata.App.PhotoIDs
	if len(local) != len(remote) {
		return false
	}
	for i := range local {
		if local[i] != remote[i] {
			return false
		}
	}
	return true
}

// SyncedMetadata builds the metadata object to push: the remote map with
// the app sub-object replaced by the current local note and photo ids.
func (o Order) SyncedMetadata() Metadata {
	md := o.Metadata
	md.App.Note = o.Note
	md.App.PhotoIDs = o.PhotoIDs()
	return md
}
