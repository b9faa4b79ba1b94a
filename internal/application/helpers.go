package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
	vo "github.com/oksasatya/go-ddd-user-accounts/internal/domain/valueobject"
)

type profile struct {
	name      vo.Name
	email     vo.Email
	telephone vo.Telephone
}

func newProfile(name, email, telephone string) (profile, error) {
	n, err := vo.NewName(name)
	if err != nil {
		return profile{}, err
	}
	e, err := vo.NewEmail(email)
	if err != nil {
		return profile{}, err
	}
	t, err := vo.NewTelephone(telephone)
	if err != nil {
		return profile{}, err
	}
	return profile{name: n, email: e, telephone: t}, nil
}

// loadUser fetches id or fails with a not-found domain error naming op.
func loadUser(ctx context.Context, users repository.UserRepository, id, op string) (*entity.User, error) {
	u, err := users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerr.NewNotFound("User", "id", id, op)
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return u, nil
}

// save persists u and turns a storage uniqueness violation into a
// duplicate email failure.
func save(ctx context.Context, users repository.UserRepository, u *entity.User, op string) (*entity.User, error) {
	saved, err := users.Save(ctx, u)
	if errors.Is(err, repository.ErrEmailTaken) {
		return nil, domainerr.NewDuplicateEmail(u.Email().Value(), op)
	}
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return saved, nil
}
