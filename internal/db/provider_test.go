package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-lookup-service/internal/config"
	"user-lookup-service/internal/testutil"
)

func unreachableConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:           "127.0.0.1",
		Port:           1,
		Name:           "showroom_db",
		User:           "showroom_user",
		Password:       "wrong",
		SSLMode:        "disable",
		ConnectTimeout: time.Second,
		MaxOpenConns:   2,
	}
}

func TestAcquireAndRelease(t *testing.T) {
	d := testutil.OpenUsersDB(t)
	p := NewProvider(d)

	conn, err := p.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stats().InUse)

	require.NoError(t, conn.Close())
	assert.Equal(t, 0, p.Stats().InUse)
}

func TestPingSQLite(t *testing.T) {
	p := NewProvider(testutil.OpenUsersDB(t))
	require.NoError(t, p.Ping(context.Background()))
}

func TestOpenDoesNotDial(t *testing.T) {
	d, err := Open(unreachableConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	assert.Equal(t, 0, d.Stats().OpenConnections)
}

func TestAcquireUnreachableStore(t *testing.T) {
	d, err := Open(unreachableConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	p := NewProvider(d)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	conn, err := p.Acquire(ctx)
	require.ErrorIs(t, err, ErrConnection)
	assert.Nil(t, conn)
	assert.Less(t, time.Since(start), 3*time.Second)

	require.ErrorIs(t, p.Ping(ctx), ErrConnection)
	assert.Equal(t, 0, p.Stats().InUse)
}
