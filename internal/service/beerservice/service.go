package beerservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"restmvc/internal/domain"
	apperror "restmvc/internal/errors"
	"restmvc/internal/pkg/logger"
)

// BeerRepository is the persistence contract the service expects.
type BeerRepository interface {
	Save(ctx context.Context, beer domain.Beer) (domain.Beer, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Beer, error)
	FindAll(ctx context.Context) ([]domain.Beer, error)
	Update(ctx context.Context, id uuid.UUID, beer domain.Beer) (domain.Beer, error)
	Patch(ctx context.Context, id uuid.UUID, patch domain.BeerPatch) (domain.Beer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service implements the beer operations exposed over HTTP.
type Service struct {
	repo   BeerRepository
	logger logger.Logger
}

func NewService(repo BeerRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListBeers returns every stored beer.
func (s *Service) ListBeers(ctx context.Context) ([]domain.Beer, error) {
	beers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list beers.", err)
		return nil, internal("Failed to list beers.", err)
	}

	s.logger.Debug("Beers listed.", map[string]interface{}{"count": len(beers)})
	return beers, nil
}

// GetBeerByID validates id and looks the beer up.
func (s *Service) GetBeerByID(ctx context.Context, id string) (domain.Beer, error) {
	s.logger.Debug("Get beer by id.", map[string]interface{}{"id": id})

	beerID, err := s.parseID(id)
	if err != nil {
		return domain.Beer{}, err
	}

	beer, err := s.repo.FindByID(ctx, beerID)
	if err != nil {
		return domain.Beer{}, internal("Failed to fetch beer.", err)
	}
	return beer, nil
}

// SaveNewBeer stores beer as a new record and returns it with its assigned id.
func (s *Service) SaveNewBeer(ctx context.Context, beer domain.Beer) (domain.Beer, error) {
	saved, err := s.repo.Save(ctx, beer)
	if err != nil {
		s.logger.Error("Failed to save beer.", err)
		return domain.Beer{}, internal("Failed to save beer.", err)
	}

	s.logger.Info("Beer created.", map[string]interface{}{"id": saved.ID.String(), "beer_name": saved.BeerName})
	return saved, nil
}

// UpdateBeerByID replaces every mutable field of the beer.
func (s *Service) UpdateBeerByID(ctx context.Context, id string, beer domain.Beer) (domain.Beer, error) {
	beerID, err := s.parseID(id)
	if err != nil {
		return domain.Beer{}, err
	}

	updated, err := s.repo.Update(ctx, beerID, beer)
	if err != nil {
		return domain.Beer{}, internal("Failed to update beer.", err)
	}

	s.logger.Info("Beer updated.", map[string]interface{}{"id": id, "version": updated.Version})
	return updated, nil
}

// PatchBeerByID changes only the fields present in patch.
func (s *Service) PatchBeerByID(ctx context.Context, id string, patch domain.BeerPatch) (domain.Beer, error) {
	beerID, err := s.parseID(id)
	if err != nil {
		return domain.Beer{}, err
	}

	patched, err := s.repo.Patch(ctx, beerID, patch)
	if err != nil {
		return domain.Beer{}, internal("Failed to patch beer.", err)
	}

	s.logger.Info("Beer patched.", map[string]interface{}{"id": id, "version": patched.Version})
	return patched, nil
}

// DeleteBeerByID removes the beer. Unknown ids succeed.
func (s *Service) DeleteBeerByID(ctx context.Context, id string) error {
	beerID, err := s.parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, beerID); err != nil {
		return internal("Failed to delete beer.", err)
	}

	s.logger.Info("Beer deleted.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) parseID(id string) (uuid.UUID, error) {
	beerID, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn("Invalid beer id.", map[string]interface{}{"id": id, "error": err.Error()})
		return uuid.Nil, apperror.NewValidationError("beer id must be a valid UUID.")
	}
	return beerID, nil
}

// internal passes typed errors through and wraps anything else as an
// InternalError.
func internal(msg string, err error) error {
	var appErr apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
