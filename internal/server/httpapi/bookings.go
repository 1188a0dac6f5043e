package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/voltdrive/internal/server/models"
	"github.com/dmitrijs2005/voltdrive/internal/server/services"
)

type bookingRequest struct {
	CarID         string    `json:"carId"`
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	TransactionID string    `json:"transactionId"`
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	var req bookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, "Error creating booking")
		return
	}

	b, err := h.bookings.Create(r.Context(), id.UserID, services.BookingRequest{
		CarID:         req.CarID,
		From:          req.From,
		To:            req.To,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		h.writeError(w, r, err, "Error creating booking")
		return
	}

	h.logger.Info(r.Context(), "booking created", "booking_id", b.ID, "user_id", id.UserID, "car_id", b.CarID)
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	list, err := h.bookings.ListByUser(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err, "Error fetching bookings")
		return
	}
	if list == nil {
		list = []*models.Booking{}
	}

	writeJSON(w, http.StatusOK, list)
}
