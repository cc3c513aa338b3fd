package beerservice_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"restmvc/internal/domain"
	apperror "restmvc/internal/errors"
	"restmvc/internal/pkg/logger"
	"restmvc/internal/service/beerservice"
)

// MockBeerRepository is a testify mock of beerservice.BeerRepository.
type MockBeerRepository struct {
	mock.Mock
}

func (m *MockBeerRepository) Save(ctx context.Context, beer domain.Beer) (domain.Beer, error) {
	args := m.Called(ctx, beer)
	return args.Get(0).(domain.Beer), args.Error(1)
}

func (m *MockBeerRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Beer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Beer), args.Error(1)
}

func (m *MockBeerRepository) FindAll(ctx context.Context) ([]domain.Beer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Beer), args.Error(1)
}

func (m *MockBeerRepository) Update(ctx context.Context, id uuid.UUID, beer domain.Beer) (domain.Beer, error) {
	args := m.Called(ctx, id, beer)
	return args.Get(0).(domain.Beer), args.Error(1)
}

func (m *MockBeerRepository) Patch(ctx context.Context, id uuid.UUID, patch domain.BeerPatch) (domain.Beer, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Beer), args.Error(1)
}

func (m *MockBeerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestLogger() logger.Logger {
	return logger.NewLoggerWithOutput("debug", io.Discard)
}

func TestListBeers_Success(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	svc := beerservice.NewService(mockRepo, newTestLogger())

	expected := []domain.Beer{
		{ID: uuid.New(), BeerName: "Galaxy Cat"},
		{ID: uuid.New(), BeerName: "Crank"},
	}
	mockRepo.On("FindAll", mock.Anything).Return(expected, nil)

	beers, err := svc.ListBeers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, beers)
	mockRepo.AssertExpectations(t)
}

func TestListBeers_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	svc := beerservice.NewService(mockRepo, newTestLogger())

	mockRepo.On("FindAll", mock.Anything).Return([]domain.Beer(nil), errors.New("store corrupted"))

	_, err := svc.ListBeers(context.Background())

	assert.Error(t, err)
	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "store corrupted")
}

func TestGetBeerByID_Success(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	svc := beerservice.NewService(mockRepo, newTestLogger())

	id := uuid.New()
	expected := domain.Beer{ID: id, BeerName: "Galaxy Cat", Version: 1}
	mockRepo.On("FindByID", mock.Anything, id).Return(expected, nil)

	beer, err := svc.GetBeerByID(context.Background(), id.String())

	assert.NoError(t, err)
	assert.Equal(t, expected, beer)
	mockRepo.AssertExpectations(t)
}

func TestGetBeerByID_Fail_InvalidID(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	svc := beerservice.NewService(mockRepo, newTestLogger())

	_, err := svc.GetBeerByID(context.Background(), "not-a-uuid")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "valid UUID")
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetBeerByID_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	svc := beerservice.NewService(mockRepo, newTestLogger())

	id := uuid.New()
	mockRepo.On("FindByID", mock.Anything, id).Return(domain.Beer{}, apperror.NewNotFoundError("beer missing"))

	_, err := svc.GetBeerByID(context.Background(), id.String())

	assert.True(t, apperror.IsNotFound(err))
	mockRepo.AssertExpectations(t)
}

func TestSaveNewBeer_Success(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	svc := beerservice.NewService(mockRepo, newTestLogger())

	input := domain.Beer{
		BeerName:       "Galaxy Cat",
		BeerStyle:      domain.BeerStylePaleAle,
		Upc:            "123456",
		Price:          decimal.RequireFromString("12.99"),
		QuantityOnHand: 122,
	}
	stored := input
	stored.ID = uuid.New()
	stored.Version = 1

	mockRepo.On("Save", mock.Anything, input).Return(stored, nil)

	saved, err := svc.SaveNewBeer(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, stored.ID, saved.ID)
	assert.Equal(t, 1, saved.Version)
	mockRepo.AssertExpectations(t)
}

func TestSaveNewBeer_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	svc := beerservice.NewService(mockRepo, newTestLogger())

	mockRepo.On("Save", mock.Anything, mock.Anything).Return(domain.Beer{}, errors.New("out of memory"))

	_, err := svc.SaveNewBeer(context.Background(), domain.Beer{BeerName: "x"})

	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "Failed to save beer.")
}

func TestUpdateBeerByID(t *testing.T) {
	t.Run("delegates full record", func(t *testing.T) {
		mockRepo := new(MockBeerRepository)
		svc := beerservice.NewService(mockRepo, newTestLogger())

		id := uuid.New()
		input := domain.Beer{BeerName: "Crank"}
		mockRepo.On("Update", mock.Anything, id, input).Return(domain.Beer{ID: id, BeerName: "Crank", Version: 2}, nil)

		updated, err := svc.UpdateBeerByID(context.Background(), id.String(), input)

		assert.NoError(t, err)
		assert.Equal(t, 2, updated.Version)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not found passes through", func(t *testing.T) {
		mockRepo := new(MockBeerRepository)
		svc := beerservice.NewService(mockRepo, newTestLogger())

		id := uuid.New()
		mockRepo.On("Update", mock.Anything, id, mock.Anything).Return(domain.Beer{}, apperror.NewNotFoundError("gone"))

		_, err := svc.UpdateBeerByID(context.Background(), id.String(), domain.Beer{})

		assert.IsType(t, &apperror.NotFoundError{}, err)
	})

	t.Run("invalid id", func(t *testing.T) {
		mockRepo := new(MockBeerRepository)
		svc := beerservice.NewService(mockRepo, newTestLogger())

		_, err := svc.UpdateBeerByID(context.Background(), "123", domain.Beer{})

		assert.IsType(t, &apperror.ValidationError{}, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPatchBeerByID(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	svc := beerservice.NewService(mockRepo, newTestLogger())

	id := uuid.New()
	name := "New Name"
	patch := domain.BeerPatch{BeerName: &name}
	mockRepo.On("Patch", mock.Anything, id, patch).Return(domain.Beer{ID: id, BeerName: name, Version: 2}, nil)

	patched, err := svc.PatchBeerByID(context.Background(), id.String(), patch)

	assert.NoError(t, err)
	assert.Equal(t, name, patched.BeerName)
	mockRepo.AssertExpectations(t)
}

func TestDeleteBeerByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockBeerRepository)
		svc := beerservice.NewService(mockRepo, newTestLogger())

		id := uuid.New()
		mockRepo.On("Delete", mock.Anything, id).Return(nil)

		assert.NoError(t, svc.DeleteBeerByID(context.Background(), id.String()))
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		mockRepo := new(MockBeerRepository)
		svc := beerservice.NewService(mockRepo, newTestLogger())

		err := svc.DeleteBeerByID(context.Background(), "nope")

		assert.IsType(t, &apperror.ValidationError{}, err)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		mockRepo := new(MockBeerRepository)
		svc := beerservice.NewService(mockRepo, newTestLogger())

		id := uuid.New()
		mockRepo.On("Delete", mock.Anything, id).Return(errors.New("boom"))

		err := svc.DeleteBeerByID(context.Background(), id.String())

		assert.IsType(t, &apperror.InternalError{}, err)
	})
}
