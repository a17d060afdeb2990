package ports

import (
	"context"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

// CreateUserInput carries the fields an admin submits when managing accounts.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// UserService defines the admin-facing account management operations.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, id int64, input CreateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
