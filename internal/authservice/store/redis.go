package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// userKeyPrefix namespaces user documents inside Redis.
const userKeyPrefix = "user:"

// RedisStore keeps one JSON document per user under user:<username>.
// SETNX guards creation so two concurrent registrations of the same name
// cannot both succeed.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func userKey(username string) string { return userKeyPrefix + username }

func (s *RedisStore) CreateUser(ctx context.Context, u User) error {
	doc, err := json.Marshal(u)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetNX(ctx, userKey(u.Username), doc, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserExists
	}
	return nil
}

func (s *RedisStore) GetUser(ctx context.Context, username string) (User, error) {
	raw, err := s.rdb.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *RedisStore) UpdateUser(ctx context.Context, u User) error {
	doc, err := json.Marshal(u)
	if err != nil {
		return err
	}
	// SET XX: only overwrite an existing document.
	ok, err := s.rdb.SetXX(ctx, userKey(u.Username), doc, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

func (s *RedisStore) Rename(ctx context.Context, oldName, newName string) error {
	u, err := s.GetUser(ctx, oldName)
	if err != nil {
		return err
	}
	u.Username = newName
	doc, err := json.Marshal(u)
	if err != nil {
		return err
	}
	// Claim the new key first; only then drop the old one.  A crash in
	// between leaves both documents rather than neither.
	ok, err := s.rdb.SetNX(ctx, userKey(newName), doc, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserExists
	}
	return s.rdb.Del(ctx, userKey(oldName)).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
