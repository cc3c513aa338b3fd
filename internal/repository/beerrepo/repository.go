package beerrepo

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

const beerCacheKey = "beer:%s"

// deletedMarker is cached for deleted beers so that a read which started
// before the delete cannot put the row back.
const deletedMarker = "deleted"

// row is the value stored in the memdb table. The Beer inside is never
// mutated after insertion.
type row struct {
	ID   string
	Beer domain.Beer
}

// BeerRepository owns the beer table. Cache is optional; when set, FindByID
// reads through it and every write replaces the cached entry while still
// holding the memdb write lock, so cache writes follow commit order.
type BeerRepository struct {
	DB       *memdb.MemDB
	Cache    cache.Client
	CacheTTL time.Duration

	logger logger.Logger
	now    func() domain.LocalDateTime
}

// NewBeerRepository creates the repository. Pass a nil cacheClient to disable
// caching.
func NewBeerRepository(db *memdb.MemDB, cacheClient cache.Client, cacheTTL time.Duration, log logger.Logger) *BeerRepository {
	return &BeerRepository{
		DB:       db,
		Cache:    cacheClient,
		CacheTTL: cacheTTL,
		logger:   log,
		now:      domain.Now,
	}
}

// Save stores a new beer. Any ID, version or timestamps on the input are
// replaced by server-assigned values.
func (r *BeerRepository) Save(ctx context.Context, beer domain.Beer) (domain.Beer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Beer{}, errors.NewInternalError("request cancelled before saving beer", err)
	}

	now := r.now()
	beer.ID = uuid.New()
	beer.Version = 1
	beer.CreatedDate = now
	beer.UpdatedDate = now

	txn := r.DB.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(memstore.TableBeer, &row{ID: beer.ID.String(), Beer: beer}); err != nil {
		r.logger.Error("Failed to insert beer.", err)
		return domain.Beer{}, errors.NewStoreError("failed to insert beer", err)
	}
	txn.Commit()

	r.logger.Debug("Beer stored.", map[string]interface{}{"id": beer.ID.String(), "beer_name": beer.BeerName})
	return beer, nil
}

// FindByID returns the beer or a NotFoundError. Reads go through the cache
// first when one is configured. The cache is filled only when the key is
// empty, so a row read before a concurrent write never replaces the newer
// entry that write stored.
func (r *BeerRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Beer, error) {
	key := fmt.Sprintf(beerCacheKey, id)

	if r.Cache != nil {
		cached, err := r.Cache.Get(ctx, key)
		switch {
		case err == nil && cached == deletedMarker:
			return domain.Beer{}, errors.NewNotFoundError(fmt.Sprintf("beer %s does not exist", id))
		case err == nil:
			var beer domain.Beer
			if json.Unmarshal([]byte(cached), &beer) == nil {
				return beer, nil
			}
			r.logger.Warn("Discarding undecodable cache entry.", map[string]interface{}{"key": key})
			r.evict(ctx, key)
		case err != cache.ErrCacheMiss:
			r.logger.Warn("Cache read failed, falling back to store.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	txn := r.DB.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(memstore.TableBeer, memstore.IndexID, id.String())
	if err != nil {
		r.logger.Error("Failed to read beer.", err)
		return domain.Beer{}, errors.NewStoreError("failed to read beer", err)
	}
	if raw == nil {
		return domain.Beer{}, errors.NewNotFoundError(fmt.Sprintf("beer %s does not exist", id))
	}
	beer := raw.(*row).Beer

	if r.Cache != nil {
		if payload, err := json.Marshal(beer); err == nil {
			if _, err := r.Cache.SetNX(ctx, key, payload, r.CacheTTL); err != nil {
				r.logger.Warn("Cache fill failed.", map[string]interface{}{"key": key, "error": err.Error()})
			}
		}
	}

	return beer, nil
}

// FindAll returns a snapshot of every stored beer, ordered by id.
func (r *BeerRepository) FindAll(ctx context.Context) ([]domain.Beer, error) {
	txn := r.DB.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(memstore.TableBeer, memstore.IndexID)
	if err != nil {
		r.logger.Error("Failed to list beers.", err)
		return nil, errors.NewStoreError("failed to list beers", err)
	}

	beers := []domain.Beer{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		beers = append(beers, obj.(*row).Beer)
	}

	r.logger.Debug("Beers listed.", map[string]interface{}{"total_beers": len(beers)})
	return beers, nil
}

// Update overwrites every mutable field of the stored beer.
func (r *BeerRepository) Update(ctx context.Context, id uuid.UUID, beer domain.Beer) (domain.Beer, error) {
	return r.modify(ctx, id, func(existing *domain.Beer) {
		existing.ApplyUpdate(beer)
	})
}

// Patch overwrites only the fields present in patch.
func (r *BeerRepository) Patch(ctx context.Context, id uuid.UUID, patch domain.BeerPatch) (domain.Beer, error) {
	return r.modify(ctx, id, func(existing *domain.Beer) {
		existing.ApplyPatch(patch)
	})
}

// modify replaces the stored beer with a changed copy inside one write
// transaction, bumping version and updatedDate.
func (r *BeerRepository) modify(ctx context.Context, id uuid.UUID, change func(*domain.Beer)) (domain.Beer, error) {
	txn := r.DB.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(memstore.TableBeer, memstore.IndexID, id.String())
	if err != nil {
		r.logger.Error("Failed to read beer for modification.", err)
		return domain.Beer{}, errors.NewStoreError("failed to read beer", err)
	}
	if raw == nil {
		return domain.Beer{}, errors.NewNotFoundError(fmt.Sprintf("beer %s does not exist", id))
	}

	beer := raw.(*row).Beer
	change(&beer)
	beer.ID = id
	beer.Version++
	beer.UpdatedDate = r.now()

	if err := txn.Insert(memstore.TableBeer, &row{ID: id.String(), Beer: beer}); err != nil {
		r.logger.Error("Failed to write modified beer.", err)
		return domain.Beer{}, errors.NewStoreError("failed to write beer", err)
	}

	// memdb commits cannot fail, so the cache is written first while writers
	// are still serialised by the transaction.
	key := fmt.Sprintf(beerCacheKey, id)
	if payload, err := json.Marshal(beer); err == nil {
		r.cacheWrite(ctx, key, payload)
	} else {
		r.evict(ctx, key)
	}
	txn.Commit()

	return beer, nil
}

// Delete removes the beer. Deleting an unknown id is a no-op.
func (r *BeerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	txn := r.DB.Txn(true)
	defer txn.Abort()

	n, err := txn.DeleteAll(memstore.TableBeer, memstore.IndexID, id.String())
	if err != nil {
		r.logger.Error("Failed to delete beer.", err)
		return errors.NewStoreError("failed to delete beer", err)
	}

	r.cacheWrite(ctx, fmt.Sprintf(beerCacheKey, id), deletedMarker)
	txn.Commit()

	r.logger.Debug("Beer delete applied.", map[string]interface{}{"id": id.String(), "removed": n})
	return nil
}

// Count returns the number of stored beers.
func (r *BeerRepository) Count(ctx context.Context) (int, error) {
	beers, err := r.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(beers), nil
}

// cacheWrite overwrites key. When that fails the key is dropped so the
// old entry is not served.
func (r *BeerRepository) cacheWrite(ctx context.Context, key string, value interface{}) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Set(ctx, key, value, r.CacheTTL); err != nil {
		r.logger.Warn("Cache write failed.", map[string]interface{}{"key": key, "error": err.Error()})
		r.evict(ctx, key)
	}
}

func (r *BeerRepository) evict(ctx context.Context, key string) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("Cache eviction failed.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
