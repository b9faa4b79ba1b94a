package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
)

// FindUserByID reads through the user cache when one is configured.
type FindUserByID struct {
	users repository.UserRepository
	collaborators
}

func NewFindUserByID(users repository.UserRepository, opts ...Option) *FindUserByID {
	return &FindUserByID{users: users, collaborators: newCollaborators(opts)}
}

func (uc *FindUserByID) Execute(ctx context.Context, id string) (UserOutput, error) {
	const op = "find_by_id"

	if uc.cache != nil {
		out, ok, err := uc.cache.Get(ctx, id)
		if err != nil {
			uc.logger.WithError(err).WithField("user_id", id).Warn("cache read failed")
		} else if ok {
			return out, nil
		}
	}

	u, err := loadUser(ctx, uc.users, id, op)
	if err != nil {
		uc.failed(op, err, logrus.Fields{"user_id": id})
		return UserOutput{}, err
	}
	out := toOutput(u)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, out); err != nil {
			uc.logger.WithError(err).WithField("user_id", id).Warn("cache fill failed")
		}
	}
	return out, nil
}

type FindUserByEmail struct {
	users repository.UserRepository
	collaborators
}

func NewFindUserByEmail(users repository.UserRepository, opts ...Option) *FindUserByEmail {
	return &FindUserByEmail{users: users, collaborators: newCollaborators(opts)}
}

// Execute matches the stored email exactly.
func (uc *FindUserByEmail) Execute(ctx context.Context, email string) (UserOutput, error) {
	const op = "find_by_email"

	u, err := uc.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		err = domainerr.NewNotFound("User", "email", email, op)
	} else if err != nil {
		err = fmt.Errorf("find user by email: %w", err)
	}
	if err != nil {
		uc.failed(op, err, nil)
		return UserOutput{}, err
	}
	return toOutput(u), nil
}
