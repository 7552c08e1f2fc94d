package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TripRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripsync_trip_refreshes_total",
		Help: "Total number of successful trip list refreshes.",
	})

	TripRefreshFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripsync_trip_refresh_failures_total",
		Help: "Total number of failed trip list refreshes.",
	})

	OrderCompletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripsync_order_completions_total",
		Help: "Order completion attempts by outcome.",
	},
		[]string{"outcome"},
	)

	MetadataPushesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripsync_metadata_pushes_total",
		Help: "Total number of order metadata pushes issued before completion.",
	})

	PhotoUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripsync_photo_uploads_total",
		Help: "Photo upload attempts by outcome.",
	},
		[]string{"outcome"},
	)

	PhotoQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tripsync_photo_queue_depth",
		Help: "Current number of photos waiting for upload.",
	})

	RefreshObservers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tripsync_refresh_observers",
		Help: "Current number of observers keeping the periodic refresh alive.",
	})

	BackgroundPanicsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripsync_background_panics_total",
		Help: "Total number of panics recovered in background tasks.",
	})
)
