package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-lookup-service/internal/db"
	"user-lookup-service/internal/testutil"
)

type failingProvider struct{}

func (failingProvider) Acquire(ctx context.Context) (*sqlx.Conn, error) {
	return nil, db.ErrConnection
}

func TestGetByIDFound(t *testing.T) {
	d := testutil.OpenUsersDB(t)
	testutil.SeedUser(t, d, 1, "Alice", "admin")
	repo := NewUserRepository(db.NewProvider(d))

	user, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "admin", user.Role)
}

func TestGetByIDNotFound(t *testing.T) {
	d := testutil.OpenUsersDB(t)
	testutil.SeedUser(t, d, 1, "Alice", "admin")
	repo := NewUserRepository(db.NewProvider(d))

	user, err := repo.GetByID(context.Background(), 2)
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
}

func TestGetByIDReturnsRequestedID(t *testing.T) {
	d := testutil.OpenUsersDB(t)
	ids := []int64{0, 1, 42, -7, 1 << 40}
	for _, id := range ids {
		testutil.SeedUser(t, d, id, "user", "member")
	}
	repo := NewUserRepository(db.NewProvider(d))

	for _, id := range ids {
		user, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
	}
}

func TestGetByIDIdempotent(t *testing.T) {
	d := testutil.OpenUsersDB(t)
	testutil.SeedUser(t, d, 5, "Bob", "viewer")
	repo := NewUserRepository(db.NewProvider(d))

	first, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := repo.GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGetByIDTreatsInputAsParameter(t *testing.T) {
	d := testutil.OpenUsersDB(t)
	testutil.SeedUser(t, d, 1, "Alice", "admin")
	testutil.SeedUser(t, d, 2, "Robert'); DROP TABLE users;--", "member")
	repo := NewUserRepository(db.NewProvider(d))

	user, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Robert'); DROP TABLE users;--", user.Name)

	_, err = repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
}

func TestGetByIDConnectionError(t *testing.T) {
	repo := NewUserRepository(failingProvider{})

	user, err := repo.GetByID(context.Background(), 1)
	require.ErrorIs(t, err, db.ErrConnection)
	assert.False(t, errors.Is(err, ErrUserNotFound))
	assert.Nil(t, user)
}

func TestGetByIDReleasesConnectionsOnFailure(t *testing.T) {
	d := testutil.OpenUsersDB(t)
	testutil.DropUsers(t, d)
	repo := NewUserRepository(db.NewProvider(d))

	before := d.Stats().InUse
	for i := 0; i < 25; i++ {
		_, err := repo.GetByID(context.Background(), int64(i))
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrUserNotFound))
	}
	assert.Equal(t, before, d.Stats().InUse)
	assert.Zero(t, d.Stats().InUse)
}

func TestGetByIDReleasesConnectionsOnSuccessAndMiss(t *testing.T) {
	d := testutil.OpenUsersDB(t)
	testutil.SeedUser(t, d, 1, "Alice", "admin")
	repo := NewUserRepository(db.NewProvider(d))

	for i := 0; i < 10; i++ {
		_, _ = repo.GetByID(context.Background(), int64(i%2+1))
	}
	assert.Zero(t, d.Stats().InUse)
}
