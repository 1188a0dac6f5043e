package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/voltdrive/internal/fleet"
	"github.com/dmitrijs2005/voltdrive/internal/server/models"
)

type carRequest struct {
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	Type         string   `json:"type"`
	Transmission string   `json:"transmission"`
	FuelType     string   `json:"fuelType"`
	Seats        int      `json:"seats"`
	PricePerDay  float64  `json:"pricePerDay"`
	Images       []string `json:"images"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Availability *bool    `json:"availability"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviewsCount"`
}

func (c carRequest) toModel() *models.Car {
	available := true
	if c.Availability != nil {
		available = *c.Availability
	}
	return &models.Car{
		Name:         c.Name,
		Brand:        c.Brand,
		Type:         c.Type,
		Transmission: c.Transmission,
		FuelType:     c.FuelType,
		Seats:        c.Seats,
		PricePerDay:  c.PricePerDay,
		Images:       c.Images,
		Description:  c.Description,
		Features:     c.Features,
		Availability: available,
		Rating:       c.Rating,
		ReviewsCount: c.ReviewsCount,
	}
}

func (h *Handler) ListCars(w http.ResponseWriter, r *http.Request) {
	f, err := fleet.ParseQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err, "Error fetching cars")
		return
	}

	cars, err := h.cars.List(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err, "Error fetching cars")
		return
	}
	if cars == nil {
		cars = []*models.Car{}
	}

	writeJSON(w, http.StatusOK, cars)
}

func (h *Handler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid car data", Error: detail(err)})
		return
	}

	car, err := h.cars.Create(r.Context(), req.toModel())
	if err != nil {
		if statusFor(err) == http.StatusBadRequest {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid car data", Error: detail(err)})
			return
		}
		h.writeError(w, r, err, "Error creating car")
		return
	}

	writeJSON(w, http.StatusCreated, car)
}
