package application

import (
	"context"

	"github.com/pixelmart/storefront/internal/user/domain"
)

type UserRepository interface {
	// Create returns a conflict error when the email is already registered.
	Create(ctx context.Context, u domain.User) error
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}
