// Package client is a typed HTTP client for the beer and customer API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"restmvc/internal/domain"
)

const (
	beerPath     = "/api/v1/beer"
	customerPath = "/api/v1/customers"
)

// APIError is a non-2xx answer decoded from the standard error body.
type APIError struct {
	Status   int
	Category string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Category, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithHTTPClient replaces the underlying transport, used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) ListBeers(ctx context.Context) ([]domain.Beer, error) {
	var beers []domain.Beer
	err := c.do(ctx, http.MethodGet, beerPath, nil, &beers)
	return beers, err
}

func (c *Client) GetBeer(ctx context.Context, id string) (domain.Beer, error) {
	var beer domain.Beer
	err := c.do(ctx, http.MethodGet, beerPath+"/"+id, nil, &beer)
	return beer, err
}

// CreateBeer returns the id the server assigned to the new beer.
func (c *Client) CreateBeer(ctx context.Context, beer domain.Beer) (uuid.UUID, error) {
	return c.create(ctx, beerPath, beer)
}

func (c *Client) UpdateBeer(ctx context.Context, id string, beer domain.Beer) error {
	return c.do(ctx, http.MethodPut, beerPath+"/"+id, beer, nil)
}

func (c *Client) PatchBeer(ctx context.Context, id string, patch domain.BeerPatch) error {
	return c.do(ctx, http.MethodPatch, beerPath+"/"+id, patch, nil)
}

func (c *Client) DeleteBeer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, beerPath+"/"+id, nil, nil)
}

func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := c.do(ctx, http.MethodGet, customerPath, nil, &customers)
	return customers, err
}

func (c *Client) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	var customer domain.Customer
	err := c.do(ctx, http.MethodGet, customerPath+"/"+id, nil, &customer)
	return customer, err
}

func (c *Client) CreateCustomer(ctx context.Context, customer domain.Customer) (uuid.UUID, error) {
	return c.create(ctx, customerPath, customer)
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, customer domain.Customer) error {
	return c.do(ctx, http.MethodPut, customerPath+"/"+id, customer, nil)
}

func (c *Client) PatchCustomer(ctx context.Context, id string, patch domain.CustomerPatch) error {
	return c.do(ctx, http.MethodPatch, customerPath+"/"+id, patch, nil)
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, customerPath+"/"+id, nil, nil)
}

func (c *Client) create(ctx context.Context, collection string, body interface{}) (uuid.UUID, error) {
	resp, err := c.send(ctx, http.MethodPost, collection, body)
	if err != nil {
		return uuid.Nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return uuid.Nil, err
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return uuid.Nil, fmt.Errorf("server answered %d without a Location header", resp.StatusCode)
	}
	id, err := uuid.Parse(path.Base(location))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing id from Location %q: %w", location, err)
	}
	return id, nil
}

func (c *Client) do(ctx context.Context, method, p string, body, out interface{}) error {
	resp, err := c.send(ctx, method, p, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, p, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, p string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+p, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, p, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body domain.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Category != "" {
		apiErr.Category = body.Category
		apiErr.Message = body.Message
	}
	return apiErr
}
