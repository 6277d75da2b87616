package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Chat store metrics
	MessagesStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "laborhire_messages_stored_total",
			Help: "Total chat messages persisted",
		},
	)

	// Relay metrics. Dropped events are the silent-offline case: the
	// sender is never told, so the counter is the only place it shows up.
	RelayDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laborhire_relay_delivered_total",
			Help: "Events relayed to a connected recipient",
		},
		[]string{"event"},
	)

	RelayDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laborhire_relay_dropped_total",
			Help: "Events dropped because the recipient was offline",
		},
		[]string{"event"},
	)

	// Presence metrics
	ConnectedUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "laborhire_connected_users",
			Help: "Users currently registered in the presence table",
		},
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laborhire_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)
)
