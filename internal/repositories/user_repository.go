package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"user-lookup-service/internal/db"
	"user-lookup-service/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

const (
	queryTimeout = 3 * time.Second

	getUserByIDQuery = "SELECT id, name, role FROM users WHERE id = ?"
)

type UserRepository interface {
	// GetByID returns ErrUserNotFound when no row matches and wraps
	// db.ErrConnection when the store cannot be reached.
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type userRepository struct {
	conns db.ConnectionProvider
}

func NewUserRepository(conns db.ConnectionProvider) UserRepository {
	return &userRepository{conns: conns}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	conn, err := r.conns.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var user models.User
	// GetContext closes its cursor before returning, on success and on error.
	err = conn.GetContext(ctx, &user, conn.Rebind(getUserByIDQuery), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user %d: %w", id, err)
	}
	return &user, nil
}
