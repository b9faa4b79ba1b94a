package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/event"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
)

// transition loads a user, applies a lifecycle method and saves the result.
type transition struct {
	uow    repository.UnitOfWork
	op     string
	apply  func(*entity.User) error
	signal event.Type
	collaborators
}

func (t *transition) execute(ctx context.Context, id string) (UserOutput, error) {
	var saved *entity.User
	err := t.uow.Do(ctx, func(ctx context.Context, users repository.UserRepository) error {
		u, err := loadUser(ctx, users, id, t.op)
		if err != nil {
			return err
		}
		if err := t.apply(u); err != nil {
			return err
		}
		saved, err = save(ctx, users, u, t.op)
		return err
	})
	if err != nil {
		t.failed(t.op, err, logrus.Fields{"user_id": id})
		return UserOutput{}, err
	}

	out := toOutput(saved)
	t.committed(ctx, t.signal, out)
	return out, nil
}

type ActivateUser struct{ transition }

func NewActivateUser(uow repository.UnitOfWork, opts ...Option) *ActivateUser {
	return &ActivateUser{transition{
		uow:           uow,
		op:            "activate",
		apply:         (*entity.User).Activate,
		signal:        event.UserActivated,
		collaborators: newCollaborators(opts),
	}}
}

func (uc *ActivateUser) Execute(ctx context.Context, id string) (UserOutput, error) {
	return uc.execute(ctx, id)
}

type DeactivateUser struct{ transition }

func NewDeactivateUser(uow repository.UnitOfWork, opts ...Option) *DeactivateUser {
	return &DeactivateUser{transition{
		uow:           uow,
		op:            "deactivate",
		apply:         (*entity.User).Deactivate,
		signal:        event.UserDeactivated,
		collaborators: newCollaborators(opts),
	}}
}

func (uc *DeactivateUser) Execute(ctx context.Context, id string) (UserOutput, error) {
	return uc.execute(ctx, id)
}

type BlockUser struct{ transition }

func NewBlockUser(uow repository.UnitOfWork, opts ...Option) *BlockUser {
	return &BlockUser{transition{
		uow:           uow,
		op:            "block",
		apply:         (*entity.User).Block,
		signal:        event.UserBlocked,
		collaborators: newCollaborators(opts),
	}}
}

func (uc *BlockUser) Execute(ctx context.Context, id string) (UserOutput, error) {
	return uc.execute(ctx, id)
}
