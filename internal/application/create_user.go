package application

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/event"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/service"
	vo "github.com/oksasatya/go-ddd-user-accounts/internal/domain/valueobject"
)

type CreateUser struct {
	uow    repository.UnitOfWork
	hasher service.PasswordHasher
	collaborators
}

func NewCreateUser(uow repository.UnitOfWork, hasher service.PasswordHasher, opts ...Option) *CreateUser {
	return &CreateUser{uow: uow, hasher: hasher, collaborators: newCollaborators(opts)}
}

// Execute registers a new ACTIVE user. The raw password is validated and
// hashed before the transaction opens; the email check and the insert run
// inside it.
func (uc *CreateUser) Execute(ctx context.Context, in CreateUserInput) (UserOutput, error) {
	const op = "create"

	p, err := newProfile(in.Name, in.Email, in.Telephone)
	if err != nil {
		uc.failed(op, err, nil)
		return UserOutput{}, err
	}
	raw, err := vo.NewRawPassword(in.Password)
	if err != nil {
		uc.failed(op, err, nil)
		return UserOutput{}, err
	}
	hash, err := uc.hasher.Encrypt(raw.Value())
	if err != nil {
		err = fmt.Errorf("hash password: %w", err)
		uc.failed(op, err, nil)
		return UserOutput{}, err
	}
	pwd, err := vo.NewHashedPassword(hash)
	if err != nil {
		uc.failed(op, err, nil)
		return UserOutput{}, err
	}

	var saved *entity.User
	err = uc.uow.Do(ctx, func(ctx context.Context, users repository.UserRepository) error {
		taken, err := users.ExistsByEmail(ctx, p.email.Value())
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if taken {
			return domainerr.NewDuplicateEmail(p.email.Value(), op)
		}
		saved, err = save(ctx, users, entity.NewUser(p.name, p.email, p.telephone, pwd), op)
		return err
	})
	if err != nil {
		uc.failed(op, err, nil)
		return UserOutput{}, err
	}

	out := toOutput(saved)
	uc.committed(ctx, event.UserCreated, out)
	return out, nil
}
