package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blogapp/internal/cache"
	"blogapp/internal/model"
)

const userCacheTTL = 5 * time.Minute

// cachedUserRepository serves FindByID from redis. Cached users are JSON
// encoded, so their Password is always empty; credential checks must go
// through FindByEmail, which is never cached.
type cachedUserRepository struct {
	UserRepository
	cache *cache.Client
}

// NewCachedUserRepository wraps repo with a read-through cache for FindByID.
// Redis failures degrade to plain database reads.
func NewCachedUserRepository(repo UserRepository, cache *cache.Client) UserRepository {
	return &cachedUserRepository{UserRepository: repo, cache: cache}
}

func (r *cachedUserRepository) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (r *cachedUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.UserRepository.Create(ctx, user); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, r.cacheKey(user.ID))
	return nil
}

func (r *cachedUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := r.cache.Get(ctx, r.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := r.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = r.cache.Set(ctx, r.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}
