package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/voltdrive/internal/client/client"
	"github.com/dmitrijs2005/voltdrive/internal/client/models"
	"github.com/dmitrijs2005/voltdrive/internal/fleet"
)

var errAdminOnly = fmt.Errorf("%w: admin role required", client.ErrForbidden)

// filterKeys maps CLI argument names onto listing query parameters.
var filterKeys = map[string]string{
	"type":     "type",
	"fuel":     "fuelType",
	"fuelType": "fuelType",
	"min":      "minPrice",
	"minPrice": "minPrice",
	"max":      "maxPrice",
	"maxPrice": "maxPrice",
	"sort":     "sort",
}

// parseFilter turns "key=value" arguments into a fleet.Filter.
func parseFilter(args []string) (fleet.Filter, error) {
	q := url.Values{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return fleet.Filter{}, fmt.Errorf("expected key=value, got %q", arg)
		}
		param, known := filterKeys[k]
		if !known {
			return fleet.Filter{}, fmt.Errorf("unknown filter %q", k)
		}
		q.Set(param, v)
	}
	return fleet.ParseQuery(q)
}

func (a *App) Cars(ctx context.Context, args []string) error {
	f, err := parseFilter(args)
	if err != nil {
		return err
	}

	cars, err := a.api.ListCars(ctx, f)
	if err != nil {
		return err
	}
	cars = fleet.Apply(cars, f)

	if len(cars) == 0 {
		a.printf("No cars found\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tTYPE\tFUEL\tSEATS\tPRICE/DAY\tRATING\tAVAILABLE")
	for _, c := range cars {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%.2f\t%.1f\t%t\n",
			c.ID, c.Name, c.Brand, c.Type, c.FuelType, c.Seats, c.PricePerDay, c.Rating, c.Availability)
	}
	return tw.Flush()
}

func (a *App) AddCar(ctx context.Context) error {
	if !a.session.User().IsAdmin() {
		return errAdminOnly
	}

	car := &models.Car{Availability: true}
	var err error

	if car.Name, err = a.ask("Name"); err != nil {
		return err
	}
	if car.Brand, err = a.ask("Brand"); err != nil {
		return err
	}
	if car.Type, err = a.ask("Type (" + strings.Join(models.CarTypes, ", ") + ")"); err != nil {
		return err
	}
	if car.Transmission, err = a.ask("Transmission (" + strings.Join(models.Transmissions, ", ") + ", empty for Automatic)"); err != nil {
		return err
	}
	if car.FuelType, err = a.ask("Fuel type (" + strings.Join(models.FuelTypes, ", ") + ", optional)"); err != nil {
		return err
	}

	seats, err := a.ask("Seats")
	if err != nil {
		return err
	}
	if car.Seats, err = strconv.Atoi(seats); err != nil {
		return errors.New("seats must be a whole number")
	}

	price, err := a.ask("Price per day")
	if err != nil {
		return err
	}
	if car.PricePerDay, err = strconv.ParseFloat(price, 64); err != nil {
		return errors.New("price per day must be a number")
	}

	if car.Description, err = a.ask("Description (optional)"); err != nil {
		return err
	}
	if car.Images, err = GetLines(a.reader, "Image URLs, one per line", a.out); err != nil {
		return err
	}
	if car.Features, err = GetLines(a.reader, "Features, one per line", a.out); err != nil {
		return err
	}

	created, err := a.api.CreateCar(ctx, car)
	if err != nil {
		return err
	}

	a.printf("Car %s added: %s %s\n", created.ID, created.Brand, created.Name)
	return nil
}
