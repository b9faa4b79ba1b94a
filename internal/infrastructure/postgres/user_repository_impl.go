package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
	vo "github.com/oksasatya/go-ddd-user-accounts/internal/domain/valueobject"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const userColumns = `id, name, email, telephone, password_hash, status, created_at, updated_at`

// sortColumns whitelists the ORDER BY targets accepted from a PageRequest.
var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"telephone": "telephone",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type UserRepository struct {
	db querier
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	if !u.IsPersisted() {
		return r.insert(ctx, u)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, telephone = $3, password_hash = $4, status = $5, updated_at = $6
		WHERE id = $7
	`, u.Name().Value(), u.Email().Value(), u.Telephone().Value(), u.Password().Value(),
		u.Status().String(), u.UpdatedAt(), u.ID())
	if err != nil {
		return nil, translate(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) insert(ctx context.Context, u *entity.User) (*entity.User, error) {
	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, telephone, password_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, u.Name().Value(), u.Email().Value(), u.Telephone().Value(), u.Password().Value(),
		u.Status().String(), u.CreatedAt(), u.UpdatedAt()).Scan(&id)
	if err != nil {
		return nil, translate(err)
	}
	return entity.ReconstructUser(id, u.Name(), u.Email(), u.Telephone(), u.Password(),
		u.Status(), u.CreatedAt(), u.UpdatedAt()), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if !isUUID(id) {
		return nil, repository.ErrUserNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&ok)
	return ok, err
}

func (r *UserRepository) FindAll(ctx context.Context, req repository.PageRequest) (repository.Page[*entity.User], error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return repository.Page[*entity.User]{}, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.db.Query(ctx, listQuery(req), req.Size, req.Offset())
	if err != nil {
		return repository.Page[*entity.User]{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	items := make([]*entity.User, 0, req.Size)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return repository.Page[*entity.User]{}, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[*entity.User]{}, fmt.Errorf("list users: %w", err)
	}
	return repository.NewPage(items, total, req), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// listQuery builds the page query. Only whitelisted columns reach the SQL;
// id breaks ties so pages stay stable.
func listQuery(req repository.PageRequest) string {
	col, ok := sortColumns[req.OrderBy]
	if !ok {
		col = sortColumns[repository.DefaultOrderBy]
	}
	dir := "ASC"
	if req.Direction == repository.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(`SELECT %s FROM users ORDER BY %s %s, id ASC LIMIT $1 OFFSET $2`, userColumns, col, dir)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		id, name, email, telephone, hash, status string
		createdAt, updatedAt                     time.Time
	)
	if err := row.Scan(&id, &name, &email, &telephone, &hash, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	n, err := vo.NewName(name)
	if err != nil {
		return nil, fmt.Errorf("user %s: stored name: %w", id, err)
	}
	e, err := vo.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("user %s: stored email: %w", id, err)
	}
	t, err := vo.NewTelephone(telephone)
	if err != nil {
		return nil, fmt.Errorf("user %s: stored telephone: %w", id, err)
	}
	p, err := vo.NewHashedPassword(hash)
	if err != nil {
		return nil, fmt.Errorf("user %s: stored password: %w", id, err)
	}
	s, err := entity.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return entity.ReconstructUser(id, n, e, t, p, s, createdAt.UTC(), updatedAt.UTC()), nil
}

// isUUID reports whether id can be compared against the uuid primary key.
// Anything else cannot match a row.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// translate maps storage constraint violations onto repository sentinels.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return repository.ErrEmailTaken
	}
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
