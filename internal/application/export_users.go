package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
)

// ExportUsers writes every user as one JSON object per line, ordered by
// creation time.
type ExportUsers struct {
	list *ListUsers
}

func NewExportUsers(users repository.UserRepository, opts ...Option) *ExportUsers {
	return &ExportUsers{list: NewListUsers(users, opts...)}
}

// Execute returns the number of users written.
func (uc *ExportUsers) Execute(ctx context.Context, w io.Writer) (int, error) {
	enc := json.NewEncoder(w)
	written := 0
	for page := 0; ; page++ {
		p, err := uc.list.Execute(ctx, ListUsersInput{
			Page:      page,
			Size:      repository.MaxPageSize,
			OrderBy:   "createdAt",
			Direction: string(repository.Asc),
		})
		if err != nil {
			return written, err
		}
		for _, u := range p.Items {
			if err := enc.Encode(u); err != nil {
				return written, fmt.Errorf("write user %s: %w", u.ID, err)
			}
			written++
		}
		if p.IsLast || len(p.Items) == 0 {
			return written, nil
		}
	}
}
