package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/voltdrive/internal/common"
	"github.com/dmitrijs2005/voltdrive/internal/fleet"
	"github.com/dmitrijs2005/voltdrive/internal/server/models"
	"github.com/dmitrijs2005/voltdrive/internal/server/repositories/repomanager"
)

type CarService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCarService(db *sql.DB, m repomanager.RepositoryManager) *CarService {
	return &CarService{db: db, repomanager: m}
}

func (s *CarService) List(ctx context.Context, f fleet.Filter) ([]*models.Car, error) {
	cars, err := s.repomanager.Cars(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	return fleet.Apply(cars, f), nil
}

// Create validates the car, fills defaults and stores it.
func (s *CarService) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	if err := normalizeCar(car); err != nil {
		return nil, err
	}
	return s.repomanager.Cars(s.db).Create(ctx, car)
}

func normalizeCar(car *models.Car) error {
	car.Name = strings.TrimSpace(car.Name)
	car.Brand = strings.TrimSpace(car.Brand)

	if car.Name == "" || car.Brand == "" {
		return fmt.Errorf("%w: name and brand are required", common.ErrValidation)
	}
	if !slices.Contains(models.CarTypes, car.Type) {
		return fmt.Errorf("%w: unknown car type %q", common.ErrValidation, car.Type)
	}
	if car.Transmission == "" {
		car.Transmission = models.TransmissionAutomatic
	}
	if !slices.Contains(models.Transmissions, car.Transmission) {
		return fmt.Errorf("%w: unknown transmission %q", common.ErrValidation, car.Transmission)
	}
	if car.FuelType != "" && !slices.Contains(models.FuelTypes, car.FuelType) {
		return fmt.Errorf("%w: unknown fuel type %q", common.ErrValidation, car.FuelType)
	}
	if car.Seats <= 0 {
		return fmt.Errorf("%w: seats must be positive", common.ErrValidation)
	}
	if car.PricePerDay <= 0 {
		return fmt.Errorf("%w: pricePerDay must be positive", common.ErrValidation)
	}
	if car.Rating < 0 || car.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", common.ErrValidation)
	}
	if car.ReviewsCount < 0 {
		return fmt.Errorf("%w: reviewsCount must not be negative", common.ErrValidation)
	}
	return nil
}
