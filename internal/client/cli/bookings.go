package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/voltdrive/internal/client/client"
	"github.com/google/uuid"
)

// timeLayouts are accepted for booking bounds; the short ones are read in
// local time.
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q, use YYYY-MM-DD HH:MM", s)
}

func (a *App) Book(ctx context.Context, args []string) error {
	var (
		req client.BookingRequest
		err error
	)

	if len(args) > 0 {
		req.CarID = args[0]
	} else if req.CarID, err = a.ask("Car ID"); err != nil {
		return err
	}

	from, err := a.ask("From (YYYY-MM-DD HH:MM)")
	if err != nil {
		return err
	}
	if req.From, err = parseTime(from); err != nil {
		return err
	}

	to, err := a.ask("To (YYYY-MM-DD HH:MM)")
	if err != nil {
		return err
	}
	if req.To, err = parseTime(to); err != nil {
		return err
	}
	if !req.From.Before(req.To) {
		return errors.New("booking must end after it starts")
	}

	if req.TransactionID, err = a.ask("Payment transaction ID (optional)"); err != nil {
		return err
	}
	if req.TransactionID != "" {
		if _, err := uuid.Parse(req.TransactionID); err != nil {
			return errors.New("transaction ID must be a UUID")
		}
	}

	b, err := a.api.CreateBooking(ctx, req)
	if err != nil {
		return err
	}

	a.printf("Booking %s %s: %d hours, total %.2f\n", b.ID, b.Status, b.TotalHours, b.TotalAmount)
	return nil
}

func (a *App) Bookings(ctx context.Context) error {
	list, err := a.api.ListBookings(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No bookings yet\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCAR\tFROM\tTO\tHOURS\tTOTAL\tSTATUS")
	for _, b := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.2f\t%s\n",
			b.ID, b.CarID,
			b.BookedTimeSlots.From.Local().Format("2006-01-02 15:04"),
			b.BookedTimeSlots.To.Local().Format("2006-01-02 15:04"),
			b.TotalHours, b.TotalAmount, b.Status)
	}
	return tw.Flush()
}
