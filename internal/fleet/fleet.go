// Package fleet filters and orders car listings.
package fleet

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/voltdrive/internal/common"
)

const (
	SortPrice  = "price"
	SortRating = "rating"
	SortNewest = "newest"
)

// Listing is the part of a car that filtering and ordering look at.
type Listing struct {
	Type        string
	FuelType    string
	PricePerDay float64
	Rating      float64
	CreatedAt   time.Time
}

// Listed is implemented by the server and client car models.
type Listed interface {
	Listing() Listing
}

// Filter narrows a listing. Zero values disable the corresponding criterion.
type Filter struct {
	Types     []string
	FuelTypes []string
	MinPrice  float64
	MaxPrice  float64
	Sort      string
}

// ParseQuery builds a Filter from URL query parameters. Comma separated
// values are accepted for type and fuelType.
func ParseQuery(q url.Values) (Filter, error) {
	f := Filter{
		Types:     splitList(q.Get("type")),
		FuelTypes: splitList(q.Get("fuelType")),
		Sort:      q.Get("sort"),
	}

	var err error
	if v := q.Get("minPrice"); v != "" {
		if f.MinPrice, err = strconv.ParseFloat(v, 64); err != nil || f.MinPrice < 0 {
			return Filter{}, fmt.Errorf("%w: invalid minPrice %q", common.ErrValidation, v)
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if f.MaxPrice, err = strconv.ParseFloat(v, 64); err != nil || f.MaxPrice < 0 {
			return Filter{}, fmt.Errorf("%w: invalid maxPrice %q", common.ErrValidation, v)
		}
	}

	switch f.Sort {
	case "", SortPrice, SortRating, SortNewest:
	default:
		return Filter{}, fmt.Errorf("%w: unknown sort %q", common.ErrValidation, f.Sort)
	}

	return f, nil
}

// Query is the inverse of ParseQuery.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if len(f.Types) > 0 {
		q.Set("type", strings.Join(f.Types, ","))
	}
	if len(f.FuelTypes) > 0 {
		q.Set("fuelType", strings.Join(f.FuelTypes, ","))
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	return q
}

func (f Filter) Match(c Listing) bool {
	if len(f.Types) > 0 && !slices.Contains(f.Types, c.Type) {
		return false
	}
	if len(f.FuelTypes) > 0 && !slices.Contains(f.FuelTypes, c.FuelType) {
		return false
	}
	if f.MinPrice > 0 && c.PricePerDay < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && c.PricePerDay > f.MaxPrice {
		return false
	}
	return true
}

// Apply returns the matching cars in the requested order. The input slice
// is left untouched.
func Apply[T Listed](cars []T, f Filter) []T {
	result := make([]T, 0, len(cars))
	for _, c := range cars {
		if f.Match(c.Listing()) {
			result = append(result, c)
		}
	}

	switch f.Sort {
	case SortPrice:
		slices.SortStableFunc(result, func(a, b T) int {
			return compareFloat(a.Listing().PricePerDay, b.Listing().PricePerDay)
		})
	case SortRating:
		slices.SortStableFunc(result, func(a, b T) int {
			return compareFloat(b.Listing().Rating, a.Listing().Rating)
		})
	case SortNewest:
		slices.SortStableFunc(result, func(a, b T) int {
			return b.Listing().CreatedAt.Compare(a.Listing().CreatedAt)
		})
	}

	return result
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
