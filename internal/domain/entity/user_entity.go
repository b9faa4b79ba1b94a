package entity

import (
	"time"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
	vo "github.com/oksasatya/go-ddd-user-accounts/internal/domain/valueobject"
)

const entityName = "User"

// now is swapped in tests that need a controlled clock.
var now = func() time.Time { return time.Now().UTC() }

// User is the aggregate root for the account domain. Its fields are only
// changed through the lifecycle methods below.
type User struct {
	id        string
	name      vo.Name
	email     vo.Email
	telephone vo.Telephone
	password  vo.Password
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewUser builds an account that has not been persisted yet. password is
// expected to hold a hash.
func NewUser(name vo.Name, email vo.Email, telephone vo.Telephone, password vo.Password) *User {
	ts := now()
	return &User{
		name:      name,
		email:     email,
		telephone: telephone,
		password:  password,
		status:    StatusActive,
		createdAt: ts,
		updatedAt: ts,
	}
}

// ReconstructUser rebuilds an account loaded from storage.
func ReconstructUser(id string, name vo.Name, email vo.Email, telephone vo.Telephone, password vo.Password,
	status Status, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		telephone: telephone,
		password:  password,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() string              { return u.id }
func (u *User) Name() vo.Name           { return u.name }
func (u *User) Email() vo.Email         { return u.email }
func (u *User) Telephone() vo.Telephone { return u.telephone }
func (u *User) Password() vo.Password   { return u.password }
func (u *User) Status() Status          { return u.status }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) UpdatedAt() time.Time    { return u.updatedAt }

// IsPersisted reports whether storage has assigned an id.
func (u *User) IsPersisted() bool { return u.id != "" }

// Update replaces the profile fields regardless of status.
func (u *User) Update(name vo.Name, email vo.Email, telephone vo.Telephone) {
	u.name = name
	u.email = email
	u.telephone = telephone
	u.touch()
}

// ChangePassword replaces the stored hash.
func (u *User) ChangePassword(password vo.Password) {
	u.password = password
	u.touch()
}

func (u *User) Activate() error {
	if u.status == StatusActive {
		return domainerr.NewInvalidState(entityName, u.status.String(), "activate")
	}
	u.status = StatusActive
	u.touch()
	return nil
}

func (u *User) Deactivate() error {
	if u.status == StatusInactive {
		return domainerr.NewInvalidState(entityName, u.status.String(), "deactivate")
	}
	u.status = StatusInactive
	u.touch()
	return nil
}

func (u *User) Block() error {
	if u.status == StatusBlocked {
		return domainerr.NewInvalidState(entityName, u.status.String(), "block")
	}
	u.status = StatusBlocked
	u.touch()
	return nil
}

// Equals compares by id. Unsaved users are only equal to themselves.
func (u *User) Equals(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	if u.id == "" || other.id == "" {
		return u == other
	}
	return u.id == other.id
}

// touch keeps updatedAt from going backwards when the wall clock does.
func (u *User) touch() {
	ts := now()
	if ts.Before(u.updatedAt) {
		ts = u.updatedAt
	}
	u.updatedAt = ts
}
