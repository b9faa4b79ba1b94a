// Package valueobject contains the self-validating wrappers used by the
// user aggregate. Values are validated once by their constructor and never
// change afterwards.
package valueobject

import (
	"strings"
	"unicode/utf8"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
)

const (
	NameMinLength = 5
	NameMaxLength = 100
)

// Name is a person's display name.
type Name struct {
	value string
}

// NewName trims raw and checks its length.
func NewName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Name{}, domainerr.NewEmpty("name")
	}
	n := utf8.RuneCountInString(trimmed)
	if n < NameMinLength {
		return Name{}, domainerr.NewMinLength("name", NameMinLength, n)
	}
	if n > NameMaxLength {
		return Name{}, domainerr.NewMaxLength("name", NameMaxLength, n)
	}
	return Name{value: trimmed}, nil
}

func (n Name) Value() string { return n.value }

func (n Name) String() string { return n.value }

func (n Name) Equals(other Name) bool { return n.value == other.value }
