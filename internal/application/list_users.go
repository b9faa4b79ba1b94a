package application

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
)

type ListUsers struct {
	users repository.UserRepository
	collaborators
}

func NewListUsers(users repository.UserRepository, opts ...Option) *ListUsers {
	return &ListUsers{users: users, collaborators: newCollaborators(opts)}
}

// Execute returns one page of users. A zero size means the default page
// size; an empty order means name ascending.
func (uc *ListUsers) Execute(ctx context.Context, in ListUsersInput) (PageOutput, error) {
	const op = "list"

	req, err := repository.NewPageRequest(in.Page, in.Size, in.OrderBy, in.Direction)
	if err != nil {
		uc.failed(op, err, nil)
		return PageOutput{}, err
	}
	page, err := uc.users.FindAll(ctx, req)
	if err != nil {
		err = fmt.Errorf("list users: %w", err)
		uc.failed(op, err, nil)
		return PageOutput{}, err
	}
	return toPageOutput(page), nil
}
