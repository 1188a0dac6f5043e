package models

import "time"

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// TimeSlot is the rental window of a booking.
type TimeSlot struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Booking reserves a car for a user over a time slot.
type Booking struct {
	ID              string    `json:"id"`
	CarID           string    `json:"carId"`
	UserID          string    `json:"userId"`
	BookedTimeSlots TimeSlot  `json:"bookedTimeSlots"`
	TotalHours      int       `json:"totalHours"`
	TotalAmount     float64   `json:"totalAmount"`
	TransactionID   *string   `json:"transactionId,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
