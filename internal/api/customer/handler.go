package customer

import (
	"context"
	"net/http"

	"restmvc/internal/api/response"
	"restmvc/internal/domain"
	"restmvc/internal/pkg/logger"
)

const (
	BasePath  = "/api/v1/customers"
	PathParam = "customerId"
)

// CustomerService is the contract the handler expects from the service layer.
type CustomerService interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (domain.Customer, error)
	SaveNewCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	UpdateCustomerByID(ctx context.Context, id string, customer domain.Customer) (domain.Customer, error)
	PatchCustomerByID(ctx context.Context, id string, patch domain.CustomerPatch) (domain.Customer, error)
	DeleteCustomerByID(ctx context.Context, id string) error
}

type Handler struct {
	Service CustomerService
	Logger  logger.Logger
}

func NewHandler(svc CustomerService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// @Summary  List customers
// @Tags     customer
// @Produce  json
// @Success  200 {array} domain.Customer
// @Router   /api/v1/customers [get]
func (h *Handler) ListCustomersHandler(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Service.ListCustomers(r.Context())
	response.Write(w, r, h.Logger, customers, err, http.StatusOK)
}

// @Summary  Get a customer
// @Tags     customer
// @Produce  json
// @Param    customerId path     string true "Customer id (UUID)"
// @Success  200        {object} domain.Customer
// @Failure  404        {object} domain.ErrorResponse
// @Router   /api/v1/customers/{customerId} [get]
func (h *Handler) GetCustomerByIDHandler(w http.ResponseWriter, r *http.Request) {
	customer, err := h.Service.GetCustomerByID(r.Context(), r.PathValue(PathParam))
	response.Write(w, r, h.Logger, customer, err, http.StatusOK)
}

// @Summary  Create a customer
// @Tags     customer
// @Accept   json
// @Param    customer body domain.Customer true "Customer to create"
// @Success  201
// @Header   201 {string} Location "/api/v1/customers/{customerId}"
// @Router   /api/v1/customers [post]
func (h *Handler) CreateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.Customer
	if err := response.DecodeJSON(r, &input); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	saved, err := h.Service.SaveNewCustomer(r.Context(), input)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	w.Header().Set("Location", BasePath+"/"+saved.ID.String())
	w.WriteHeader(http.StatusCreated)
}

// @Summary  Replace a customer
// @Tags     customer
// @Accept   json
// @Param    customerId path string          true "Customer id (UUID)"
// @Param    customer   body domain.Customer true "Full customer record"
// @Success  204
// @Router   /api/v1/customers/{customerId} [put]
func (h *Handler) UpdateCustomerByIDHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.Customer
	if err := response.DecodeJSON(r, &input); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	_, err := h.Service.UpdateCustomerByID(r.Context(), r.PathValue(PathParam), input)
	response.Write(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// @Summary  Partially update a customer
// @Tags     customer
// @Accept   json
// @Param    customerId path string               true "Customer id (UUID)"
// @Param    patch      body domain.CustomerPatch true "Fields to change"
// @Success  204
// @Router   /api/v1/customers/{customerId} [patch]
func (h *Handler) PatchCustomerByIDHandler(w http.ResponseWriter, r *http.Request) {
	var patch domain.CustomerPatch
	if err := response.DecodeJSON(r, &patch); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	_, err := h.Service.PatchCustomerByID(r.Context(), r.PathValue(PathParam), patch)
	response.Write(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// @Summary  Delete a customer
// @Tags     customer
// @Param    customerId path string true "Customer id (UUID)"
// @Success  204
// @Router   /api/v1/customers/{customerId} [delete]
func (h *Handler) DeleteCustomerByIDHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteCustomerByID(r.Context(), r.PathValue(PathParam))
	response.Write(w, r, h.Logger, nil, err, http.StatusNoContent)
}

func (h *Handler) Register(mux *http.ServeMux) {
	byID := BasePath + "/{" + PathParam + "}"

	mux.HandleFunc("GET "+BasePath, h.ListCustomersHandler)
	mux.HandleFunc("POST "+BasePath, h.CreateCustomerHandler)
	mux.HandleFunc("GET "+byID, h.GetCustomerByIDHandler)
	mux.HandleFunc("PUT "+byID, h.UpdateCustomerByIDHandler)
	mux.HandleFunc("PATCH "+byID, h.PatchCustomerByIDHandler)
	mux.HandleFunc("DELETE "+byID, h.DeleteCustomerByIDHandler)
}
