package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/Parth2500/Jwt-Auth/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const (
	userByIDKeyPrefix       = "user:id:"
	userByUsernameKeyPrefix = "user:username:"
)

// cachedUser carries the password hash that model.User hides from JSON.
type cachedUser struct {
	User         *model.User `json:"user"`
	PasswordHash string      `json:"password_hash"`
}

// CachedUserRepository is a read-through Redis cache in front of another
// UserRepository. Redis failures are logged and the inner store answers.
type CachedUserRepository struct {
	inner UserRepository
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedUserRepository(inner UserRepository, rdb *redis.Client, ttl time.Duration) *CachedUserRepository {
	return &CachedUserRepository{inner: inner, rdb: rdb, ttl: ttl}
}

func (r *CachedUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.inner.Create(ctx, user)
}

func (r *CachedUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	key := userByUsernameKeyPrefix + username
	if u := r.get(ctx, key); u != nil {
		return u, nil
	}
	u, err := r.inner.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	r.set(ctx, u)
	return u, nil
}

func (r *CachedUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	key := userByIDKeyPrefix + id
	if u := r.get(ctx, key); u != nil {
		return u, nil
	}
	u, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.set(ctx, u)
	return u, nil
}

func (r *CachedUserRepository) Update(ctx context.Context, user *model.User) error {
	// Drop before and after the write so a concurrent read cannot pin the
	// old record for a full TTL.
	r.invalidate(ctx, user)
	if err := r.inner.Update(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx, user)
	return nil
}

func (r *CachedUserRepository) get(ctx context.Context, key string) *model.User {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("WARN: user cache read %s: %v", key, err)
		}
		return nil
	}
	var entry cachedUser
	if err := json.Unmarshal(raw, &entry); err != nil || entry.User == nil {
		log.Printf("WARN: dropping corrupt user cache entry %s", key)
		r.rdb.Del(ctx, key)
		return nil
	}
	entry.User.PasswordHash = entry.PasswordHash
	return entry.User
}

func (r *CachedUserRepository) set(ctx context.Context, u *model.User) {
	raw, err := json.Marshal(cachedUser{User: u, PasswordHash: u.PasswordHash})
	if err != nil {
		log.Printf("WARN: user cache encode %s: %v", u.ID, err)
		return
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, userByIDKeyPrefix+u.ID, raw, r.ttl)
		pipe.Set(ctx, userByUsernameKeyPrefix+u.Username, raw, r.ttl)
		return nil
	})
	if err != nil {
		log.Printf("WARN: user cache write %s: %v", u.ID, err)
	}
}

func (r *CachedUserRepository) invalidate(ctx context.Context, u *model.User) {
	keys := []string{userByIDKeyPrefix + u.ID}
	if u.Username != "" {
		keys = append(keys, userByUsernameKeyPrefix+u.Username)
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("WARN: user cache invalidate %s: %v", u.ID, err)
	}
}

var (
	_ UserRepository = (*CachedUserRepository)(nil)
	_ UserRepository = (*MongoUserRepository)(nil)
)
