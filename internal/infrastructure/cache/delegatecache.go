package cache

import (
	"context"
	"time"

	"github.com/atelier-edu/atelier/internal/domain/principal"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

// CachingDelegationRepository decorates a DelegationRepository with a
// short-lived in-process cache. Delegate edges change rarely relative to
// how often delegated access is resolved, so a small TTL keeps the hot
// path off the database without a separate invalidation channel.
type CachingDelegationRepository struct {
	inner  principal.DelegationRepository
	cache  *TTLCache[uint, []uint]
	logger logger.Interface
}

func NewCachingDelegationRepository(inner principal.DelegationRepository, ttl time.Duration, now func() time.Time, logger logger.Interface) *CachingDelegationRepository {
	return &CachingDelegationRepository{
		inner:  inner,
		cache:  NewTTLCache[uint, []uint](ttl, now),
		logger: logger,
	}
}

func (r *CachingDelegationRepository) FindDelegates(ctx context.Context, dependentID uint) ([]uint, error) {
	if delegates, ok := r.cache.Get(dependentID); ok {
		return delegates, nil
	}

	delegates, err := r.inner.FindDelegates(ctx, dependentID)
	if err != nil {
		return nil, err
	}

	r.cache.Set(dependentID, delegates)
	r.logger.Debugw("delegate lookup cached",
		"dependent_id", dependentID,
		"delegate_count", len(delegates),
	)
	return delegates, nil
}

// Invalidate drops the cached delegate set for a dependent, for callers
// that mutate delegation edges and want the next lookup to hit the store.
func (r *CachingDelegationRepository) Invalidate(dependentID uint) {
	r.cache.Delete(dependentID)
}
