package services

import (
	"context"
	"errors"
	"log"

	"user-lookup-service/internal/metrics"
	"user-lookup-service/internal/models"
	"user-lookup-service/internal/repositories"
	"user-lookup-service/internal/telemetry"
)

type UserService struct {
	users repositories.UserRepository
	audit *telemetry.AuditEmitter
}

// NewUserService wires the lookup path. audit may be nil.
func NewUserService(users repositories.UserRepository, audit *telemetry.AuditEmitter) *UserService {
	return &UserService{users: users, audit: audit}
}

// Lookup returns the user with the given id, repositories.ErrUserNotFound when
// there is none, or the store error otherwise. A user is only returned whole.
func (s *UserService) Lookup(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	outcome := metrics.OutcomeFound
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		outcome = metrics.OutcomeNotFound
		user = nil
	case err != nil:
		outcome = metrics.OutcomeFailed
		user = nil
		log.Printf("error: lookup user %d (request %s): %v", userID, telemetry.RequestIDFromContext(ctx), err)
	}

	metrics.IncLookup(outcome)
	s.audit.EmitLookup(ctx, telemetry.RequestIDFromContext(ctx), userID, outcome, auditError(outcome, err))

	if err != nil {
		return nil, err
	}
	return user, nil
}

// NotFound is an expected outcome, not an error worth auditing as one.
func auditError(outcome string, err error) error {
	if outcome == metrics.OutcomeFailed {
		return err
	}
	return nil
}
