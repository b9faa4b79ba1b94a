package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
)

type DeleteUser struct {
	uow repository.UnitOfWork
	collaborators
}

func NewDeleteUser(uow repository.UnitOfWork, opts ...Option) *DeleteUser {
	return &DeleteUser{uow: uow, collaborators: newCollaborators(opts)}
}

func (uc *DeleteUser) Execute(ctx context.Context, id string) error {
	const op = "delete"

	var gone UserOutput
	err := uc.uow.Do(ctx, func(ctx context.Context, users repository.UserRepository) error {
		u, err := loadUser(ctx, users, id, op)
		if err != nil {
			return err
		}
		if err := users.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete user %s: %w", id, err)
		}
		gone = toOutput(u)
		return nil
	})
	if err != nil {
		uc.failed(op, err, logrus.Fields{"user_id": id})
		return err
	}

	uc.removed(ctx, gone)
	return nil
}
