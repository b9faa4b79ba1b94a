package application

import (
	"time"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
)

type CreateUserInput struct {
	Name      string
	Email     string
	Telephone string
	Password  string
}

type UpdateUserInput struct {
	ID        string
	Name      string
	Email     string
	Telephone string
}

type ChangePasswordInput struct {
	ID              string
	CurrentPassword string
	NewPassword     string
}

type ListUsersInput struct {
	Page      int
	Size      int
	OrderBy   string
	Direction string
}

// UserOutput is the read projection of a user. It never carries the password.
type UserOutput struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Telephone         string    `json:"telephone"`
	Status            string    `json:"status"`
	StatusDescription string    `json:"status_description"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PageOutput struct {
	Items      []UserOutput `json:"items"`
	TotalItems int64        `json:"total_items"`
	TotalPages int          `json:"total_pages"`
	PageNumber int          `json:"page_number"`
	PageSize   int          `json:"page_size"`
	IsFirst    bool         `json:"is_first"`
	IsLast     bool         `json:"is_last"`
}

func toOutput(u *entity.User) UserOutput {
	return UserOutput{
		ID:                u.ID(),
		Name:              u.Name().Value(),
		Email:             u.Email().Value(),
		Telephone:         u.Telephone().Value(),
		Status:            u.Status().String(),
		StatusDescription: u.Status().Description(),
		CreatedAt:         u.CreatedAt(),
		UpdatedAt:         u.UpdatedAt(),
	}
}

func toPageOutput(p repository.Page[*entity.User]) PageOutput {
	mapped := repository.MapPage(p, toOutput)
	return PageOutput{
		Items:      mapped.Items,
		TotalItems: mapped.TotalItems,
		TotalPages: mapped.TotalPages,
		PageNumber: mapped.PageNumber,
		PageSize:   mapped.PageSize,
		IsFirst:    mapped.IsFirst,
		IsLast:     mapped.IsLast,
	}
}
