package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restmvc/internal/domain"
)

func TestBeerJSONShape(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 15, 30, 123000000, time.Local)
	b := domain.Beer{
		ID:             uuid.MustParse("9f2c1f5e-3c0a-4b7e-8d7b-0d6f4f2a1c11"),
		Version:        1,
		BeerName:       "Galaxy Cat",
		BeerStyle:      domain.BeerStylePaleAle,
		Upc:            "123456",
		Price:          decimal.RequireFromString("12.99"),
		QuantityOnHand: 122,
		CreatedDate:    domain.LocalDateTime{Time: created},
		UpdatedDate:    domain.LocalDateTime{Time: created},
	}

	data, err := json.Marshal(b)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "9f2c1f5e-3c0a-4b7e-8d7b-0d6f4f2a1c11",
		"version": 1,
		"beerName": "Galaxy Cat",
		"beerStyle": "PALE_ALE",
		"upc": "123456",
		"price": 12.99,
		"quantityOnHand": 122,
		"createdDate": "2024-05-01T10:15:30.123",
		"updatedDate": "2024-05-01T10:15:30.123"
	}`, string(data))
}

func TestBeerStyle(t *testing.T) {
	t.Run("every enumerated style parses", func(t *testing.T) {
		for _, name := range []string{"LAGER", "PILSNER", "STOUT", "GOSE", "PORTER", "ALE", "WHEAT", "IPA", "PALE_ALE", "SAISON"} {
			style, err := domain.ParseBeerStyle(name)
			assert.NoError(t, err)
			assert.Equal(t, domain.BeerStyle(name), style)
		}
	})

	t.Run("unknown and lower-case styles are rejected", func(t *testing.T) {
		for _, name := range []string{"LAMBIC", "ipa", ""} {
			_, err := domain.ParseBeerStyle(name)
			assert.Error(t, err, name)
		}

		var b domain.Beer
		assert.Error(t, json.Unmarshal([]byte(`{"beerStyle":"LAMBIC"}`), &b))
		assert.Error(t, json.Unmarshal([]byte(`{"beerStyle":7}`), &b))
	})

	t.Run("unset style round trips as null", func(t *testing.T) {
		data, err := json.Marshal(domain.Beer{})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"beerStyle":null`)

		var b domain.Beer
		require.NoError(t, json.Unmarshal(data, &b))
		assert.Equal(t, domain.BeerStyle(""), b.BeerStyle)
	})
}

func TestLocalDateTime(t *testing.T) {
	t.Run("zero is null", func(t *testing.T) {
		data, err := json.Marshal(domain.LocalDateTime{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})

	t.Run("local layout and RFC 3339 both decode", func(t *testing.T) {
		var local domain.LocalDateTime
		require.NoError(t, json.Unmarshal([]byte(`"2024-05-01T10:15:30.5"`), &local))
		assert.Equal(t, 500*time.Millisecond, time.Duration(local.Nanosecond()))
		assert.Equal(t, time.Local, local.Location())

		var zoned domain.LocalDateTime
		require.NoError(t, json.Unmarshal([]byte(`"2024-05-01T10:15:30Z"`), &zoned))
		assert.Equal(t, 2024, zoned.Year())
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		var d domain.LocalDateTime
		assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`12`), &d))
	})
}

func TestBeerApplyPatch(t *testing.T) {
	base := domain.Beer{
		BeerName:       "Galaxy Cat",
		BeerStyle:      domain.BeerStylePaleAle,
		Upc:            "123456",
		Price:          decimal.RequireFromString("12.99"),
		QuantityOnHand: 122,
	}

	var patch domain.BeerPatch
	require.NoError(t, json.Unmarshal([]byte(`{"upc":"999","quantityOnHand":0,"beerStyle":null}`), &patch))

	b := base
	b.ApplyPatch(patch)

	assert.Equal(t, "Galaxy Cat", b.BeerName)
	assert.Equal(t, domain.BeerStylePaleAle, b.BeerStyle)
	assert.Equal(t, "999", b.Upc)
	assert.True(t, b.Price.Equal(base.Price))
	assert.Equal(t, 0, b.QuantityOnHand)
}

func TestBeerApplyUpdate(t *testing.T) {
	id := uuid.New()
	b := domain.Beer{ID: id, Version: 3, BeerName: "Galaxy Cat", Upc: "123456"}

	b.ApplyUpdate(domain.Beer{ID: uuid.New(), Version: 99, BeerName: "Crank"})

	assert.Equal(t, id, b.ID)
	assert.Equal(t, 3, b.Version)
	assert.Equal(t, "Crank", b.BeerName)
	assert.Equal(t, "", b.Upc)
}

func TestCustomerPatchAndUpdate(t *testing.T) {
	c := domain.Customer{Name: "Tom"}

	c.ApplyPatch(domain.CustomerPatch{})
	assert.Equal(t, "Tom", c.Name)

	name := "Sally"
	c.ApplyPatch(domain.CustomerPatch{Name: &name})
	assert.Equal(t, "Sally", c.Name)

	c.ApplyUpdate(domain.Customer{})
	assert.Equal(t, "", c.Name)
}
