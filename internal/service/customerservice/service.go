package customerservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"restmvc/internal/domain"
	apperror "restmvc/internal/errors"
	"restmvc/internal/pkg/logger"
)

// CustomerRepository is the persistence contract the service expects.
type CustomerRepository interface {
	Save(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, id uuid.UUID, customer domain.Customer) (domain.Customer, error)
	Patch(ctx context.Context, id uuid.UUID, patch domain.CustomerPatch) (domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo   CustomerRepository
	logger logger.Logger
}

func NewService(repo CustomerRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list customers.", err)
		return nil, internal("Failed to list customers.", err)
	}
	return customers, nil
}

func (s *Service) GetCustomerByID(ctx context.Context, id string) (domain.Customer, error) {
	customerID, err := s.parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return domain.Customer{}, internal("Failed to fetch customer.", err)
	}
	return customer, nil
}

func (s *Service) SaveNewCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	saved, err := s.repo.Save(ctx, customer)
	if err != nil {
		s.logger.Error("Failed to save customer.", err)
		return domain.Customer{}, internal("Failed to save customer.", err)
	}

	s.logger.Info("Customer created.", map[string]interface{}{"id": saved.ID.String()})
	return saved, nil
}

// UpdateCustomerByID overwrites the name even when the new one is empty.
func (s *Service) UpdateCustomerByID(ctx context.Context, id string, customer domain.Customer) (domain.Customer, error) {
	customerID, err := s.parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	updated, err := s.repo.Update(ctx, customerID, customer)
	if err != nil {
		return domain.Customer{}, internal("Failed to update customer.", err)
	}

	s.logger.Info("Customer updated.", map[string]interface{}{"id": id, "version": updated.Version})
	return updated, nil
}

func (s *Service) PatchCustomerByID(ctx context.Context, id string, patch domain.CustomerPatch) (domain.Customer, error) {
	customerID, err := s.parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	patched, err := s.repo.Patch(ctx, customerID, patch)
	if err != nil {
		return domain.Customer{}, internal("Failed to patch customer.", err)
	}

	s.logger.Info("Customer patched.", map[string]interface{}{"id": id, "version": patched.Version})
	return patched, nil
}

func (s *Service) DeleteCustomerByID(ctx context.Context, id string) error {
	customerID, err := s.parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, customerID); err != nil {
		return internal("Failed to delete customer.", err)
	}

	s.logger.Info("Customer deleted.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) parseID(id string) (uuid.UUID, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn("Invalid customer id.", map[string]interface{}{"id": id, "error": err.Error()})
		return uuid.Nil, apperror.NewValidationError("customer id must be a valid UUID.")
	}
	return customerID, nil
}

func internal(msg string, err error) error {
	var appErr apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
