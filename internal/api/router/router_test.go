package router_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restmvc/internal/api/beer"
	"restmvc/internal/api/customer"
	"restmvc/internal/api/router"
	"restmvc/internal/domain"
	"restmvc/internal/pkg/cache/cachetest"
	"restmvc/internal/pkg/logger"
	"restmvc/internal/pkg/memstore"
	"restmvc/internal/repository/beerrepo"
	"restmvc/internal/repository/customerrepo"
	"restmvc/internal/seed"
	"restmvc/internal/service/beerservice"
	"restmvc/internal/service/customerservice"
)

func newDeps(t *testing.T) router.Deps {
	t.Helper()

	db, err := memstore.New()
	require.NoError(t, err)

	log := logger.NewLoggerWithOutput("error", io.Discard)
	beers := beerrepo.NewBeerRepository(db, nil, 0, log)
	customers := customerrepo.NewCustomerRepository(db, nil, 0, log)
	require.NoError(t, seed.Run(t.Context(), beers, customers))

	return router.Deps{
		BeerHandler:     beer.NewHandler(beerservice.NewService(beers, log), log),
		CustomerHandler: customer.NewHandler(customerservice.NewService(customers, log), log),
		Logger:          log,
	}
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, r))
	return rr
}

func TestPing(t *testing.T) {
	h := router.NewRouter(newDeps(t))

	rr := serve(h, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestSeededCollections(t *testing.T) {
	h := router.NewRouter(newDeps(t))

	rr := serve(h, http.MethodGet, "/api/v1/beer", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var beers []domain.Beer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &beers))
	assert.Len(t, beers, 3)

	rr = serve(h, http.MethodGet, "/api/v1/customers", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var customers []domain.Customer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &customers))
	assert.Len(t, customers, 3)
}

func TestCreateAddsToList(t *testing.T) {
	h := router.NewRouter(newDeps(t))

	rr := serve(h, http.MethodPost, "/api/v1/customers", `{"name":"Ann"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(h, http.MethodGet, "/api/v1/customers", "")
	var customers []domain.Customer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &customers))
	assert.Len(t, customers, 4)
}

func TestMethodAndPathMismatches(t *testing.T) {
	h := router.NewRouter(newDeps(t))

	assert.Equal(t, http.StatusMethodNotAllowed, serve(h, http.MethodDelete, "/api/v1/beer", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/api/v1/unknown", "").Code)
}

func TestSwaggerDoc(t *testing.T) {
	h := router.NewRouter(newDeps(t))

	rr := serve(h, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/api/v1/beer/{beerId}")
	assert.Contains(t, paths, "/api/v1/customers/{customerId}")
}

func TestRateLimiterIsMountedWithCache(t *testing.T) {
	deps := newDeps(t)
	deps.RateLimitCache = cachetest.New()
	deps.RateLimitMaxRequests = 1
	deps.RateLimitPeriod = time.Minute
	h := router.NewRouter(deps)

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/ping", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodGet, "/ping", "").Code)
}
