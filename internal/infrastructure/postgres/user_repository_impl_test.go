package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
)

func TestListQueryUsesWhitelistedColumns(t *testing.T) {
	tests := []struct {
		name string
		req  repository.PageRequest
		want string
	}{
		{
			name: "default order",
			req:  repository.PageRequest{Size: 10, OrderBy: "name", Direction: repository.Asc},
			want: "ORDER BY name ASC, id ASC",
		},
		{
			name: "camel case field maps to column",
			req:  repository.PageRequest{Size: 10, OrderBy: "createdAt", Direction: repository.Desc},
			want: "ORDER BY created_at DESC, id ASC",
		},
		{
			name: "unknown field falls back to name",
			req:  repository.PageRequest{Size: 10, OrderBy: "name; DROP TABLE users", Direction: repository.Asc},
			want: "ORDER BY name ASC, id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := listQuery(tt.req)
			assert.Contains(t, q, tt.want)
			assert.Contains(t, q, "LIMIT $1 OFFSET $2")
			assert.NotContains(t, q, "DROP")
		})
	}
}

func TestTranslateUniqueViolation(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	assert.ErrorIs(t, translate(dup), repository.ErrEmailTaken)

	other := &pgconn.PgError{Code: pgerrcode.CheckViolation}
	assert.Equal(t, error(other), translate(other))

	plain := errors.New("conn reset")
	assert.Equal(t, plain, translate(plain))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("3f2504e0-4f89-11d3-9a0c-0305e82c3301"))
	assert.False(t, isUUID("not-an-id"))
	assert.False(t, isUUID(""))
}
