package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/event"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/service"
	vo "github.com/oksasatya/go-ddd-user-accounts/internal/domain/valueobject"
)

type ChangePassword struct {
	uow    repository.UnitOfWork
	hasher service.PasswordHasher
	collaborators
}

func NewChangePassword(uow repository.UnitOfWork, hasher service.PasswordHasher, opts ...Option) *ChangePassword {
	return &ChangePassword{uow: uow, hasher: hasher, collaborators: newCollaborators(opts)}
}

// Execute checks the current password against the stored hash before the
// new one is validated, so a wrong current password is reported even when
// the replacement is also invalid.
func (uc *ChangePassword) Execute(ctx context.Context, in ChangePasswordInput) (UserOutput, error) {
	const op = "change_password"
	fields := logrus.Fields{"user_id": in.ID}

	var saved *entity.User
	err := uc.uow.Do(ctx, func(ctx context.Context, users repository.UserRepository) error {
		u, err := loadUser(ctx, users, in.ID, op)
		if err != nil {
			return err
		}
		if !uc.hasher.Matches(in.CurrentPassword, u.Password().Value()) {
			return domainerr.NewMatching("currentPassword")
		}
		raw, err := vo.NewRawPassword(in.NewPassword)
		if err != nil {
			return err
		}
		hash, err := uc.hasher.Encrypt(raw.Value())
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		pwd, err := vo.NewHashedPassword(hash)
		if err != nil {
			return err
		}
		u.ChangePassword(pwd)
		saved, err = save(ctx, users, u, op)
		return err
	})
	if err != nil {
		uc.failed(op, err, fields)
		return UserOutput{}, err
	}

	out := toOutput(saved)
	uc.committed(ctx, event.UserPasswordChanged, out)
	return out, nil
}
