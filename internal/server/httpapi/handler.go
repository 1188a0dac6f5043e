// Package httpapi exposes the VoltDrive REST API over chi.
package httpapi

import (
	"time"

	"github.com/dmitrijs2005/voltdrive/internal/logging"
)

type Handler struct {
	users       UserService
	avatars     AvatarService
	cars        CarService
	bookings    BookingService
	ping        Pinger
	metrics     *Metrics
	logger      logging.Logger
	development bool
	started     time.Time
	now         func() time.Time
}

// Deps carries everything the router needs.
type Deps struct {
	Users       UserService
	Avatars     AvatarService
	Cars        CarService
	Bookings    BookingService
	Ping        Pinger
	Metrics     *Metrics
	Logger      logging.Logger
	Secret      []byte
	Development bool
	RateLimit   int
	RateWindow  time.Duration
}

func newHandler(d Deps) *Handler {
	now := time.Now
	return &Handler{
		users:       d.Users,
		avatars:     d.Avatars,
		cars:        d.Cars,
		bookings:    d.Bookings,
		ping:        d.Ping,
		metrics:     d.Metrics,
		logger:      d.Logger,
		development: d.Development,
		started:     now(),
		now:         now,
	}
}

func (h *Handler) authFailed(operation string) {
	if h.metrics != nil {
		h.metrics.AuthFailures.WithLabelValues(operation).Inc()
	}
}
