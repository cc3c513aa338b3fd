package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restmvc/internal/api/beer"
	"restmvc/internal/api/customer"
	"restmvc/internal/api/router"
	"restmvc/internal/client"
	"restmvc/internal/domain"
	"restmvc/internal/pkg/logger"
	"restmvc/internal/pkg/memstore"
	"restmvc/internal/repository/beerrepo"
	"restmvc/internal/repository/customerrepo"
	"restmvc/internal/service/beerservice"
	"restmvc/internal/service/customerservice"
)

func newTestServer(t *testing.T) *client.Client {
	t.Helper()

	db, err := memstore.New()
	require.NoError(t, err)

	log := logger.NewLoggerWithOutput("error", io.Discard)
	h := router.NewRouter(router.Deps{
		BeerHandler:     beer.NewHandler(beerservice.NewService(beerrepo.NewBeerRepository(db, nil, 0, log), log), log),
		CustomerHandler: customer.NewHandler(customerservice.NewService(customerrepo.NewCustomerRepository(db, nil, 0, log), log), log),
		Logger:          log,
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return client.New(srv.URL + "/").WithHTTPClient(srv.Client())
}

func TestBeerRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t)

	id, err := c.CreateBeer(ctx, domain.Beer{
		BeerName:       "Galaxy Cat",
		BeerStyle:      domain.BeerStylePaleAle,
		Upc:            "123456",
		Price:          decimal.RequireFromString("12.99"),
		QuantityOnHand: 122,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	got, err := c.GetBeer(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, "Galaxy Cat", got.BeerName)
	assert.Equal(t, 1, got.Version)

	name := "Galaxy Dog"
	require.NoError(t, c.PatchBeer(ctx, id.String(), domain.BeerPatch{BeerName: &name}))

	got, err = c.GetBeer(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, "Galaxy Dog", got.BeerName)
	assert.Equal(t, "123456", got.Upc)

	require.NoError(t, c.UpdateBeer(ctx, id.String(), domain.Beer{BeerName: "Crank"}))

	beers, err := c.ListBeers(ctx)
	require.NoError(t, err)
	require.Len(t, beers, 1)
	assert.Equal(t, "Crank", beers[0].BeerName)

	require.NoError(t, c.DeleteBeer(ctx, id.String()))
	require.NoError(t, c.DeleteBeer(ctx, id.String()))

	_, err = c.GetBeer(ctx, id.String())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Category)
}

func TestCustomerRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t)

	id, err := c.CreateCustomer(ctx, domain.Customer{Name: "Sally"})
	require.NoError(t, err)

	name := "Sal"
	require.NoError(t, c.PatchCustomer(ctx, id.String(), domain.CustomerPatch{Name: &name}))
	require.NoError(t, c.UpdateCustomer(ctx, id.String(), domain.Customer{Name: "Sally Ann"}))

	got, err := c.GetCustomer(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, "Sally Ann", got.Name)
	assert.Equal(t, 3, got.Version)

	customers, err := c.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)

	require.NoError(t, c.DeleteCustomer(ctx, id.String()))
}

func TestInvalidIDIsReported(t *testing.T) {
	c := newTestServer(t)

	_, err := c.GetCustomer(context.Background(), "nope")

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Category)
}
