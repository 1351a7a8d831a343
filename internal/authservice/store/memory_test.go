package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	u := User{Username: "johndoe", HashedPassword: "hash", Disabled: false}
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.GetUser(ctx, "johndoe")
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestMemoryStoreCreateDuplicate(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, User{Username: "johndoe"}))
	err := s.CreateUser(ctx, User{Username: "johndoe"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemory()
	_, err := s.GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryStoreUpdate(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, User{Username: "johndoe", HashedPassword: "old"}))
	require.NoError(t, s.UpdateUser(ctx, User{Username: "johndoe", HashedPassword: "new"}))

	got, err := s.GetUser(ctx, "johndoe")
	require.NoError(t, err)
	assert.Equal(t, "new", got.HashedPassword)
}

func TestMemoryStoreUpdateMissing(t *testing.T) {
	s := NewMemory()
	err := s.UpdateUser(context.Background(), User{Username: "ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryStoreRename(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, User{Username: "johndoe", HashedPassword: "hash"}))
	require.NoError(t, s.Rename(ctx, "johndoe", "janedoe"))

	_, err := s.GetUser(ctx, "johndoe")
	assert.ErrorIs(t, err, ErrUserNotFound)

	got, err := s.GetUser(ctx, "janedoe")
	require.NoError(t, err)
	assert.Equal(t, "janedoe", got.Username)
	assert.Equal(t, "hash", got.HashedPassword)
}

func TestMemoryStoreRenameTargetTaken(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, User{Username: "johndoe"}))
	require.NoError(t, s.CreateUser(ctx, User{Username: "janedoe"}))

	err := s.Rename(ctx, "johndoe", "janedoe")
	assert.ErrorIs(t, err, ErrUserExists)

	// the source must survive a failed rename
	_, err = s.GetUser(ctx, "johndoe")
	assert.NoError(t, err)
}

func TestMemoryStorePing(t *testing.T) {
	assert.NoError(t, NewMemory().Ping(context.Background()))
}
