// Package memory keeps users in process memory. It backs local runs with
// STORAGE_DRIVER=memory and the use case tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
)

// Store holds the user table. Its repository view and unit of work share
// one mutex, so a Do call is serialized against every other access.
type Store struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func NewStore() *Store {
	return &Store{users: make(map[string]*entity.User)}
}

// Users returns a repository that locks the store per call.
func (s *Store) Users() repository.UserRepository {
	return lockedRepo{s: s}
}

// Do runs fn against a snapshot-protected view of the store. When fn fails
// or panics the table is restored.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, users repository.UserRepository) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]*entity.User, len(s.users))
	for id, u := range s.users {
		snapshot[id] = u
	}
	defer func() {
		if p := recover(); p != nil {
			s.users = snapshot
			panic(p)
		}
		if err != nil {
			s.users = snapshot
		}
	}()

	return fn(ctx, table{s: s})
}

// Len reports the number of stored users.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// table is the unlocked repository; callers hold s.mu. Stored users are
// never handed out directly: writes store a copy and reads return one, so
// a caller mutating its entity cannot change the table.
type table struct {
	s *Store
}

func clone(u *entity.User) *entity.User {
	return entity.ReconstructUser(u.ID(), u.Name(), u.Email(), u.Telephone(), u.Password(),
		u.Status(), u.CreatedAt(), u.UpdatedAt())
}

func (t table) Save(_ context.Context, u *entity.User) (*entity.User, error) {
	id := u.ID()
	if id == "" {
		id = uuid.NewString()
	} else if _, ok := t.s.users[id]; !ok {
		return nil, repository.ErrUserNotFound
	}
	for otherID, other := range t.s.users {
		if otherID != id && other.Email().Value() == u.Email().Value() {
			return nil, repository.ErrEmailTaken
		}
	}

	stored := entity.ReconstructUser(id, u.Name(), u.Email(), u.Telephone(), u.Password(),
		u.Status(), u.CreatedAt(), u.UpdatedAt())
	// Replace rather than mutate so snapshots taken by Do stay intact.
	t.s.users[id] = stored
	return clone(stored), nil
}

func (t table) FindByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := t.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return clone(u), nil
}

func (t table) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range t.s.users {
		if u.Email().Value() == email {
			return clone(u), nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (t table) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := t.s.users[id]
	return ok, nil
}

func (t table) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := t.FindByEmail(ctx, email)
	return err == nil, nil
}

func (t table) FindAll(_ context.Context, req repository.PageRequest) (repository.Page[*entity.User], error) {
	all := make([]*entity.User, 0, len(t.s.users))
	for _, u := range t.s.users {
		all = append(all, u)
	}
	sort.SliceStable(all, func(i, j int) bool {
		c := compare(all[i], all[j], req.OrderBy)
		if c == 0 {
			return all[i].ID() < all[j].ID()
		}
		if req.Direction == repository.Desc {
			return c > 0
		}
		return c < 0
	})

	start := req.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}
	items := make([]*entity.User, 0, end-start)
	for _, u := range all[start:end] {
		items = append(items, clone(u))
	}
	return repository.NewPage(items, int64(len(all)), req), nil
}

func (t table) Delete(_ context.Context, id string) error {
	delete(t.s.users, id)
	return nil
}

func compare(a, b *entity.User, field string) int {
	switch field {
	case "email":
		return strings.Compare(a.Email().Value(), b.Email().Value())
	case "telephone":
		return strings.Compare(a.Telephone().Value(), b.Telephone().Value())
	case "status":
		return strings.Compare(a.Status().String(), b.Status().String())
	case "createdAt":
		return a.CreatedAt().Compare(b.CreatedAt())
	case "updatedAt":
		return a.UpdatedAt().Compare(b.UpdatedAt())
	default:
		return strings.Compare(a.Name().Value(), b.Name().Value())
	}
}

// lockedRepo takes the store mutex around each table call.
type lockedRepo struct {
	s *Store
}

func (r lockedRepo) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return table{s: r.s}.Save(ctx, u)
}

func (r lockedRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return table{s: r.s}.FindByID(ctx, id)
}

func (r lockedRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return table{s: r.s}.FindByEmail(ctx, email)
}

func (r lockedRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return table{s: r.s}.ExistsByID(ctx, id)
}

func (r lockedRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return table{s: r.s}.ExistsByEmail(ctx, email)
}

func (r lockedRepo) FindAll(ctx context.Context, req repository.PageRequest) (repository.Page[*entity.User], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return table{s: r.s}.FindAll(ctx, req)
}

func (r lockedRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return table{s: r.s}.Delete(ctx, id)
}

var (
	_ repository.UserRepository = table{}
	_ repository.UserRepository = lockedRepo{}
	_ repository.UnitOfWork     = (*Store)(nil)
)
