package model

// TripStatus is the backend-reported lifecycle state of a trip.
type TripStatus string

const (
	TripStatusActive               TripStatus = "active"
	TripStatusCompleted            TripStatus = "completed"
	TripStatusProcessingCompletion TripStatus = "processing_completion"
	TripStatusUnknown              TripStatus = ""
)

// TripStatusFromString maps a raw backend value onto a known status,
// falling back to TripStatusUnknown for anything unrecognized.
func TripStatusFromString(s string) TripStatus {
	switch TripStatus(s) {
	case TripStatusActive, TripStatusCompleted, TripStatusProcessingCompletion:
		return TripStatus(s)
	default:
		return TripStatusUnknown
	}
}

// TripViews holds the shareable URLs the backend generates for a trip.
type TripViews struct {
	ShareURL string `json:"share_url,omitempty"`
	EmbedURL string `json:"embed_url,omitempty"`
}

// Trip is the merged local representation of a remote trip: remote fields
// plus orders that carry locally-edited state. Trips are value objects; a
// refresh builds a fresh list instead of mutating trips in place.
type Trip struct {
	ID       string            `json:"id"`
	Status   TripStatus        `json:"status"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Orders   []Order           `json:"orders"`
	Views    *TripViews        `json:"views,omitempty"`
}

// Order returns the order with the given id, if present.
func (t Trip) Order(orderID string) (Order, bool) {
	for _, o := range t.Orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return Order{}, false
}

// OngoingOrders lists the orders still waiting to be delivered.
func (t Trip) OngoingOrders() []Order {
	var res []Order
	for _, o := range t.Orders {
		if o.Status == OrderStatusOngoing {
			res = append(res, o)
		}
	}
	return res
}

// NextOrder is the first ongoing order, skipping snoozed ones.
func (t Trip) NextOrder() (Order, bool) {
	for _, o := range t.Orders {
		if o.Status == OrderStatusOngoing {
			return o, true
		}
	}
	return Order{}, false
}

// IsLegacy reports whether the trip was synthesized from a backend trip
// without discrete order sub-resources.
func (t Trip) IsLegacy() bool {
	for _, o := range t.Orders {
		if o.Legacy {
			return true
		}
	}
	return false
}
