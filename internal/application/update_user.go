package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/event"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
)

type UpdateUser struct {
	uow repository.UnitOfWork
	collaborators
}

func NewUpdateUser(uow repository.UnitOfWork, opts ...Option) *UpdateUser {
	return &UpdateUser{uow: uow, collaborators: newCollaborators(opts)}
}

// Execute replaces name, email and telephone. Status and password are left
// alone; the email may stay the same but may not belong to another user.
func (uc *UpdateUser) Execute(ctx context.Context, in UpdateUserInput) (UserOutput, error) {
	const op = "update"
	fields := logrus.Fields{"user_id": in.ID}

	p, err := newProfile(in.Name, in.Email, in.Telephone)
	if err != nil {
		uc.failed(op, err, fields)
		return UserOutput{}, err
	}

	var saved *entity.User
	err = uc.uow.Do(ctx, func(ctx context.Context, users repository.UserRepository) error {
		u, err := loadUser(ctx, users, in.ID, op)
		if err != nil {
			return err
		}
		owner, err := users.FindByEmail(ctx, p.email.Value())
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
		case err != nil:
			return fmt.Errorf("find user by email: %w", err)
		case owner.ID() != u.ID():
			return domainerr.NewDuplicateEmail(p.email.Value(), op)
		}
		u.Update(p.name, p.email, p.telephone)
		saved, err = save(ctx, users, u, op)
		return err
	})
	if err != nil {
		uc.failed(op, err, fields)
		return UserOutput{}, err
	}

	out := toOutput(saved)
	uc.committed(ctx, event.UserUpdated, out)
	return out, nil
}
