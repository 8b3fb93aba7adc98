package repository

import (
	"context"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
)

// UserRepository defines the storage operations behind the identity provider.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByEmailWithPassword(ctx context.Context, email string) (*domain.User, error)
}
