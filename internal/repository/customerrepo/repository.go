package customerrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"restmvc/internal/domain"
	"restmvc/internal/errors"
	"restmvc/internal/pkg/cache"
	"restmvc/internal/pkg/logger"
	"restmvc/internal/pkg/memstore"
)

const customerCacheKey = "customer:%s"

// tombstone marks a deleted customer in the cache.
const tombstone = "deleted"

type row struct {
	ID       string
	Customer domain.Customer
}

// CustomerRepository owns the customer table.
type CustomerRepository struct {
	DB       *memdb.MemDB
	Cache    cache.Client
	CacheTTL time.Duration

	logger logger.Logger
	now    func() domain.LocalDateTime
}

func NewCustomerRepository(db *memdb.MemDB, cacheClient cache.Client, cacheTTL time.Duration, log logger.Logger) *CustomerRepository {
	return &CustomerRepository{
		DB:       db,
		Cache:    cacheClient,
		CacheTTL: cacheTTL,
		logger:   log,
		now:      domain.Now,
	}
}

// Save stores a new customer with a fresh id, version 1 and current timestamps.
func (r *CustomerRepository) Save(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, errors.NewInternalError("request cancelled before saving customer", err)
	}

	now := r.now()
	customer.ID = uuid.New()
	customer.Version = 1
	customer.CreatedDate = now
	customer.UpdatedDate = now

	txn := r.DB.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(memstore.TableCustomer, &row{ID: customer.ID.String(), Customer: customer}); err != nil {
		r.logger.Error("Failed to insert customer.", err)
		return domain.Customer{}, errors.NewStoreError("failed to insert customer", err)
	}
	txn.Commit()

	r.logger.Debug("Customer stored.", map[string]interface{}{"id": customer.ID.String()})
	return customer, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	key := fmt.Sprintf(customerCacheKey, id)

	if r.Cache != nil {
		cached, err := r.Cache.Get(ctx, key)
		if err == nil && cached == tombstone {
			return domain.Customer{}, errors.NewNotFoundError(fmt.Sprintf("customer %s does not exist", id))
		} else if err == nil {
			var customer domain.Customer
			if json.Unmarshal([]byte(cached), &customer) == nil {
				return customer, nil
			}
			r.logger.Warn("Discarding undecodable cache entry.", map[string]interface{}{"key": key})
			r.evict(ctx, key)
		} else if err != cache.ErrCacheMiss {
			r.logger.Warn("Cache read failed, falling back to store.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	txn := r.DB.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(memstore.TableCustomer, memstore.IndexID, id.String())
	if err != nil {
		r.logger.Error("Failed to read customer.", err)
		return domain.Customer{}, errors.NewStoreError("failed to read customer", err)
	}
	if raw == nil {
		return domain.Customer{}, errors.NewNotFoundError(fmt.Sprintf("customer %s does not exist", id))
	}
	customer := raw.(*row).Customer

	// SetNX: a writer that committed after our read has already stored the newer row.
	if r.Cache != nil {
		if payload, err := json.Marshal(customer); err == nil {
			if _, err := r.Cache.SetNX(ctx, key, payload, r.CacheTTL); err != nil {
				r.logger.Warn("Cache fill failed.", map[string]interface{}{"key": key, "error": err.Error()})
			}
		}
	}

	return customer, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	txn := r.DB.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(memstore.TableCustomer, memstore.IndexID)
	if err != nil {
		r.logger.Error("Failed to list customers.", err)
		return nil, errors.NewStoreError("failed to list customers", err)
	}

	customers := []domain.Customer{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		customers = append(customers, obj.(*row).Customer)
	}
	return customers, nil
}

// Update overwrites the name unconditionally, an empty one included.
func (r *CustomerRepository) Update(ctx context.Context, id uuid.UUID, customer domain.Customer) (domain.Customer, error) {
	return r.modify(ctx, id, func(existing *domain.Customer) {
		existing.ApplyUpdate(customer)
	})
}

func (r *CustomerRepository) Patch(ctx context.Context, id uuid.UUID, patch domain.CustomerPatch) (domain.Customer, error) {
	return r.modify(ctx, id, func(existing *domain.Customer) {
		existing.ApplyPatch(patch)
	})
}

func (r *CustomerRepository) modify(ctx context.Context, id uuid.UUID, change func(*domain.Customer)) (domain.Customer, error) {
	txn := r.DB.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(memstore.TableCustomer, memstore.IndexID, id.String())
	if err != nil {
		r.logger.Error("Failed to read customer for modification.", err)
		return domain.Customer{}, errors.NewStoreError("failed to read customer", err)
	}
	if raw == nil {
		return domain.Customer{}, errors.NewNotFoundError(fmt.Sprintf("customer %s does not exist", id))
	}

	customer := raw.(*row).Customer
	change(&customer)
	customer.ID = id
	customer.Version++
	customer.UpdatedDate = r.now()

	if err := txn.Insert(memstore.TableCustomer, &row{ID: id.String(), Customer: customer}); err != nil {
		r.logger.Error("Failed to write modified customer.", err)
		return domain.Customer{}, errors.NewStoreError("failed to write customer", err)
	}

	// written before Commit so concurrent writers reach the cache in commit order
	key := fmt.Sprintf(customerCacheKey, id)
	if payload, err := json.Marshal(customer); err == nil {
		r.cacheWrite(ctx, key, payload)
	} else {
		r.evict(ctx, key)
	}
	txn.Commit()

	return customer, nil
}

// Delete removes the customer; unknown ids are ignored.
func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	txn := r.DB.Txn(true)
	defer txn.Abort()

	if _, err := txn.DeleteAll(memstore.TableCustomer, memstore.IndexID, id.String()); err != nil {
		r.logger.Error("Failed to delete customer.", err)
		return errors.NewStoreError("failed to delete customer", err)
	}

	r.cacheWrite(ctx, fmt.Sprintf(customerCacheKey, id), tombstone)
	txn.Commit()

	return nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	customers, err := r.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(customers), nil
}

func (r *CustomerRepository) cacheWrite(ctx context.Context, key string, value interface{}) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Set(ctx, key, value, r.CacheTTL); err != nil {
		r.logger.Warn("Cache write failed.", map[string]interface{}{"key": key, "error": err.Error()})
		r.evict(ctx, key)
	}
}

func (r *CustomerRepository) evict(ctx context.Context, key string) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("Cache eviction failed.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
