package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/voltdrive/internal/common"
	"github.com/dmitrijs2005/voltdrive/internal/dbx"
	"github.com/dmitrijs2005/voltdrive/internal/server/models"
	"github.com/dmitrijs2005/voltdrive/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// BookingRequest describes a rental the user wants to make.
type BookingRequest struct {
	CarID         string
	From          time.Time
	To            time.Time
	TransactionID string
}

type BookingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBookingService(db *sql.DB, m repomanager.RepositoryManager) *BookingService {
	return &BookingService{db: db, repomanager: m}
}

// Quote returns the billed hours and amount for a slot. Hours are rounded
// up and every started day is charged in full.
func Quote(from, to time.Time, pricePerDay float64) (int, float64) {
	hours := int(math.Ceil(to.Sub(from).Hours()))
	days := int(math.Ceil(float64(hours) / 24))
	return hours, float64(days) * pricePerDay
}

func (s *BookingService) Create(ctx context.Context, userID string, req BookingRequest) (*models.Booking, error) {
	req.CarID = strings.TrimSpace(req.CarID)
	if req.CarID == "" {
		return nil, fmt.Errorf("%w: carId is required", common.ErrValidation)
	}
	if _, err := uuid.Parse(req.CarID); err != nil {
		return nil, fmt.Errorf("%w: invalid carId %q", common.ErrValidation, req.CarID)
	}
	if req.From.IsZero() || req.To.IsZero() || !req.From.Before(req.To) {
		return nil, fmt.Errorf("%w: from must be before to", common.ErrValidation)
	}

	var booking *models.Booking

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		car, err := s.repomanager.Cars(tx).GetByID(ctx, req.CarID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("%w: car %s", common.ErrorNotFound, req.CarID)
			}
			return err
		}
		if !car.Availability {
			return fmt.Errorf("%w: car is not available", common.ErrValidation)
		}

		hours, amount := Quote(req.From, req.To, car.PricePerDay)

		b := &models.Booking{
			CarID:           car.ID,
			UserID:          userID,
			BookedTimeSlots: models.TimeSlot{From: req.From.UTC(), To: req.To.UTC()},
			TotalHours:      hours,
			TotalAmount:     amount,
			Status:          models.BookingPending,
		}
		if tid := strings.TrimSpace(req.TransactionID); tid != "" {
			b.TransactionID = &tid
			b.Status = models.BookingConfirmed
		}

		booking, err = s.repomanager.Bookings(tx).Create(ctx, b)
		return err
	})

	if err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	return s.repomanager.Bookings(s.db).ListByUser(ctx, userID)
}
