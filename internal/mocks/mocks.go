package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"user-lookup-service/internal/models"
	"user-lookup-service/internal/rabbitmq"
	"user-lookup-service/internal/repositories"
)

// MockUserRepository mocks UserRepository for services and handlers.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

// MockPublisher mocks the RabbitMQ publisher for telemetry.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Compile-time assertions
var _ repositories.UserRepository = (*MockUserRepository)(nil)
var _ rabbitmq.Publisher = (*MockPublisher)(nil)
