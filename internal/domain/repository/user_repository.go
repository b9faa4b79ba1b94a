package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/entity"
)

var (
	// ErrUserNotFound is returned by lookups that match no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by Save when storage rejects a duplicate email.
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository defines the persistence contract for the user aggregate.
type UserRepository interface {
	// Save inserts a user without id and updates one with id. The returned
	// user carries the persisted id and timestamps.
	Save(ctx context.Context, u *entity.User) (*entity.User, error)
	// FindByID returns ErrUserNotFound when absent.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// FindByEmail matches the stored email exactly. Returns ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context, req PageRequest) (Page[*entity.User], error)
	// Delete removes the user; deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// UnitOfWork runs fn atomically: every read and write done through users
// commits together or not at all.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, users UserRepository) error) error
}
