package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
)

const (
	DefaultSearchSize = 10
	MaxSearchSize     = 50
)

// SearchUsers runs a full text query against the user index. Without an
// index it answers with an empty result.
type SearchUsers struct {
	collaborators
}

func NewSearchUsers(opts ...Option) *SearchUsers {
	return &SearchUsers{collaborators: newCollaborators(opts)}
}

func (uc *SearchUsers) Execute(ctx context.Context, query string, size int) ([]UserOutput, error) {
	const op = "search"

	query = strings.TrimSpace(query)
	if query == "" {
		err := domainerr.NewEmpty("q")
		uc.failed(op, err, nil)
		return nil, err
	}
	if size <= 0 || size > MaxSearchSize {
		size = DefaultSearchSize
	}
	if uc.index == nil {
		return []UserOutput{}, nil
	}

	found, err := uc.index.Search(ctx, query, size)
	if err != nil {
		err = fmt.Errorf("search users: %w", err)
		uc.failed(op, err, nil)
		return nil, err
	}
	if found == nil {
		found = []UserOutput{}
	}
	return found, nil
}
