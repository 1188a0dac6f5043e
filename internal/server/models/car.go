package models

import (
	"time"

	"github.com/dmitrijs2005/voltdrive/internal/fleet"
)

// Car type, transmission and fuel enumerations.
const (
	CarTypeSedan  = "Sedan"
	CarTypeSUV    = "SUV"
	CarTypeLuxury = "Luxury"
	CarTypeSport  = "Sport"

	TransmissionAutomatic = "Automatic"
	TransmissionManual    = "Manual"

	FuelPetrol   = "Petrol"
	FuelDiesel   = "Diesel"
	FuelElectric = "Electric"
	FuelHybrid   = "Hybrid"
)

var (
	CarTypes      = []string{CarTypeSedan, CarTypeSUV, CarTypeLuxury, CarTypeSport}
	Transmissions = []string{TransmissionAutomatic, TransmissionManual}
	FuelTypes     = []string{FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid}
)

// Car is a vehicle in the rental fleet.
type Car struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Type         string    `json:"type"`
	Transmission string    `json:"transmission"`
	FuelType     string    `json:"fuelType,omitempty"`
	Seats        int       `json:"seats"`
	PricePerDay  float64   `json:"pricePerDay"`
	Images       []string  `json:"images"`
	Description  string    `json:"description,omitempty"`
	Features     []string  `json:"features"`
	Availability bool      `json:"availability"`
	Rating       float64   `json:"rating"`
	ReviewsCount int       `json:"reviewsCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (c *Car) Listing() fleet.Listing {
	return fleet.Listing{Type: c.Type, FuelType: c.FuelType, PricePerDay: c.PricePerDay, Rating: c.Rating, CreatedAt: c.CreatedAt}
}
