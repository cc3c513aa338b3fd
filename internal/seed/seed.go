// Package seed loads the sample beers and customers available at startup.
package seed

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"

	"restmvc/internal/domain"
)

type BeerSaver interface {
	Save(ctx context.Context, beer domain.Beer) (domain.Beer, error)
}

type CustomerSaver interface {
	Save(ctx context.Context, customer domain.Customer) (domain.Customer, error)
}

// Beers returns the sample beers. Ids, versions and dates are assigned on save.
func Beers() []domain.Beer {
	return []domain.Beer{
		{
			BeerName:       "Galaxy Cat",
			BeerStyle:      domain.BeerStylePaleAle,
			Upc:            "123456",
			Price:          decimal.RequireFromString("12.99"),
			QuantityOnHand: 122,
		},
		{
			BeerName:       "Crank",
			BeerStyle:      domain.BeerStylePaleAle,
			Upc:            "123456222",
			Price:          decimal.RequireFromString("11.99"),
			QuantityOnHand: 392,
		},
		{
			BeerName:       "Sunshine City",
			BeerStyle:      domain.BeerStyleIPA,
			Upc:            "12356",
			Price:          decimal.RequireFromString("13.99"),
			QuantityOnHand: 144,
		},
	}
}

func Customers() []domain.Customer {
	return []domain.Customer{
		{Name: "Tom"},
		{Name: "Sally"},
		{Name: "May"},
	}
}

// Run saves every sample record. It keeps going after a failed save and
// returns all failures together.
func Run(ctx context.Context, beers BeerSaver, customers CustomerSaver) error {
	var result *multierror.Error

	for _, b := range Beers() {
		if _, err := beers.Save(ctx, b); err != nil {
			result = multierror.Append(result, fmt.Errorf("seeding beer %q: %w", b.BeerName, err))
		}
	}
	for _, c := range Customers() {
		if _, err := customers.Save(ctx, c); err != nil {
			result = multierror.Append(result, fmt.Errorf("seeding customer %q: %w", c.Name, err))
		}
	}

	return result.ErrorOrNil()
}
