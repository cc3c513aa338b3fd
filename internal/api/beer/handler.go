package beer

import (
	"context"
	"net/http"

	"restmvc/internal/api/response"
	"restmvc/internal/domain"
	"restmvc/internal/pkg/logger"
)

// BasePath is the collection path of the beer resource.
const BasePath = "/api/v1/beer"

// PathParam names the id segment in the route patterns.
const PathParam = "beerId"

// BeerService is the contract the handler expects from the service layer.
type BeerService interface {
	ListBeers(ctx context.Context) ([]domain.Beer, error)
	GetBeerByID(ctx context.Context, id string) (domain.Beer, error)
	SaveNewBeer(ctx context.Context, beer domain.Beer) (domain.Beer, error)
	UpdateBeerByID(ctx context.Context, id string, beer domain.Beer) (domain.Beer, error)
	PatchBeerByID(ctx context.Context, id string, patch domain.BeerPatch) (domain.Beer, error)
	DeleteBeerByID(ctx context.Context, id string) error
}

// Handler groups the beer endpoints.
type Handler struct {
	Service BeerService
	Logger  logger.Logger
}

func NewHandler(svc BeerService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListBeersHandler handles GET /api/v1/beer.
//
// @Summary  List beers
// @Tags     beer
// @Produce  json
// @Success  200 {array}  domain.Beer
// @Failure  500 {object} domain.ErrorResponse
// @Router   /api/v1/beer [get]
func (h *Handler) ListBeersHandler(w http.ResponseWriter, r *http.Request) {
	beers, err := h.Service.ListBeers(r.Context())
	response.Write(w, r, h.Logger, beers, err, http.StatusOK)
}

// GetBeerByIDHandler handles GET /api/v1/beer/{beerId}.
//
// @Summary  Get a beer
// @Tags     beer
// @Produce  json
// @Param    beerId path     string true "Beer id (UUID)"
// @Success  200    {object} domain.Beer
// @Failure  400    {object} domain.ErrorResponse
// @Failure  404    {object} domain.ErrorResponse
// @Router   /api/v1/beer/{beerId} [get]
func (h *Handler) GetBeerByIDHandler(w http.ResponseWriter, r *http.Request) {
	beer, err := h.Service.GetBeerByID(r.Context(), r.PathValue(PathParam))
	response.Write(w, r, h.Logger, beer, err, http.StatusOK)
}

// CreateBeerHandler handles POST /api/v1/beer. The new resource is
// announced in the Location header; the body is empty.
//
// @Summary  Create a beer
// @Tags     beer
// @Accept   json
// @Param    beer body domain.Beer true "Beer to create; id, version and dates are ignored"
// @Success  201
// @Header   201 {string} Location "/api/v1/beer/{beerId}"
// @Failure  400 {object} domain.ErrorResponse
// @Router   /api/v1/beer [post]
func (h *Handler) CreateBeerHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.Beer
	if err := response.DecodeJSON(r, &input); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	saved, err := h.Service.SaveNewBeer(r.Context(), input)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	w.Header().Set("Location", BasePath+"/"+saved.ID.String())
	response.Write(w, r, h.Logger, nil, nil, http.StatusCreated)
}

// UpdateBeerByIDHandler handles PUT /api/v1/beer/{beerId}.
//
// @Summary  Replace a beer
// @Tags     beer
// @Accept   json
// @Param    beerId path string      true "Beer id (UUID)"
// @Param    beer   body domain.Beer true "Full beer record"
// @Success  204
// @Failure  400 {object} domain.ErrorResponse
// @Failure  404 {object} domain.ErrorResponse
// @Router   /api/v1/beer/{beerId} [put]
func (h *Handler) UpdateBeerByIDHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.Beer
	if err := response.DecodeJSON(r, &input); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	_, err := h.Service.UpdateBeerByID(r.Context(), r.PathValue(PathParam), input)
	response.Write(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// PatchBeerByIDHandler handles PATCH /api/v1/beer/{beerId}.
//
// @Summary  Partially update a beer
// @Tags     beer
// @Accept   json
// @Param    beerId path string           true "Beer id (UUID)"
// @Param    patch  body domain.BeerPatch true "Fields to change"
// @Success  204
// @Failure  400 {object} domain.ErrorResponse
// @Failure  404 {object} domain.ErrorResponse
// @Router   /api/v1/beer/{beerId} [patch]
func (h *Handler) PatchBeerByIDHandler(w http.ResponseWriter, r *http.Request) {
	var patch domain.BeerPatch
	if err := response.DecodeJSON(r, &patch); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	_, err := h.Service.PatchBeerByID(r.Context(), r.PathValue(PathParam), patch)
	response.Write(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// DeleteBeerByIDHandler handles DELETE /api/v1/beer/{beerId}. Deleting an
// unknown beer still answers 204.
//
// @Summary  Delete a beer
// @Tags     beer
// @Param    beerId path string true "Beer id (UUID)"
// @Success  204
// @Failure  400 {object} domain.ErrorResponse
// @Router   /api/v1/beer/{beerId} [delete]
func (h *Handler) DeleteBeerByIDHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteBeerByID(r.Context(), r.PathValue(PathParam))
	response.Write(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// Register mounts the beer routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+BasePath, h.ListBeersHandler)
	mux.HandleFunc("POST "+BasePath, h.CreateBeerHandler)
	mux.HandleFunc("GET "+BasePath+"/{"+PathParam+"}", h.GetBeerByIDHandler)
	mux.HandleFunc("PUT "+BasePath+"/{"+PathParam+"}", h.UpdateBeerByIDHandler)
	mux.HandleFunc("PATCH "+BasePath+"/{"+PathParam+"}", h.PatchBeerByIDHandler)
	mux.HandleFunc("DELETE "+BasePath+"/{"+PathParam+"}", h.DeleteBeerByIDHandler)
}
