package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// BeerStyle is the category a beer is sold under.
type BeerStyle string

const (
	BeerStyleLager   BeerStyle = "LAGER"
	BeerStylePilsner BeerStyle = "PILSNER"
	BeerStyleStout   BeerStyle = "STOUT"
	BeerStyleGose    BeerStyle = "GOSE"
	BeerStylePorter  BeerStyle = "PORTER"
	BeerStyleAle     BeerStyle = "ALE"
	BeerStyleWheat   BeerStyle = "WHEAT"
	BeerStyleIPA     BeerStyle = "IPA"
	BeerStylePaleAle BeerStyle = "PALE_ALE"
	BeerStyleSaison  BeerStyle = "SAISON"
)

var beerStyles = map[BeerStyle]struct{}{
	BeerStyleLager:   {},
	BeerStylePilsner: {},
	BeerStyleStout:   {},
	BeerStyleGose:    {},
	BeerStylePorter:  {},
	BeerStyleAle:     {},
	BeerStyleWheat:   {},
	BeerStyleIPA:     {},
	BeerStylePaleAle: {},
	BeerStyleSaison:  {},
}

// ParseBeerStyle returns the BeerStyle named by s or an error for unknown names.
func ParseBeerStyle(s string) (BeerStyle, error) {
	style := BeerStyle(s)
	if _, ok := beerStyles[style]; !ok {
		return "", fmt.Errorf("unknown beer style %q", s)
	}
	return style, nil
}

// MarshalJSON writes an unset style as null.
func (s BeerStyle) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON rejects styles outside the enumeration. A JSON null leaves the
// style unset.
func (s *BeerStyle) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("beerStyle must be a string: %w", err)
	}

	style, err := ParseBeerStyle(raw)
	if err != nil {
		return err
	}
	*s = style
	return nil
}

// Beer is a single beer record. ID, Version and the timestamps are owned by
// the repository; clients never set them.
type Beer struct {
	ID             uuid.UUID       `json:"id"`
	Version        int             `json:"version"`
	BeerName       string          `json:"beerName"`
	BeerStyle      BeerStyle       `json:"beerStyle"`
	Upc            string          `json:"upc"`
	Price          decimal.Decimal `json:"price"`
	QuantityOnHand int             `json:"quantityOnHand"`
	CreatedDate    LocalDateTime   `json:"createdDate"`
	UpdatedDate    LocalDateTime   `json:"updatedDate"`
}

// BeerPatch carries a partial update. A nil field is left untouched.
type BeerPatch struct {
	BeerName       *string          `json:"beerName"`
	BeerStyle      *BeerStyle       `json:"beerStyle"`
	Upc            *string          `json:"upc"`
	Price          *decimal.Decimal `json:"price"`
	QuantityOnHand *int             `json:"quantityOnHand"`
}

// ApplyUpdate overwrites every mutable field of b with the values from src.
func (b *Beer) ApplyUpdate(src Beer) {
	b.BeerName = src.BeerName
	b.BeerStyle = src.BeerStyle
	b.Upc = src.Upc
	b.Price = src.Price
	b.QuantityOnHand = src.QuantityOnHand
}

// ApplyPatch overwrites only the fields present in p.
func (b *Beer) ApplyPatch(p BeerPatch) {
	if p.BeerName != nil {
		b.BeerName = *p.BeerName
	}
	if p.BeerStyle != nil {
		b.BeerStyle = *p.BeerStyle
	}
	if p.Upc != nil {
		b.Upc = *p.Upc
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.QuantityOnHand != nil {
		b.QuantityOnHand = *p.QuantityOnHand
	}
}
