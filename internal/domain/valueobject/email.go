package valueobject

import (
	"regexp"
	"strings"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// Email keeps the address exactly as it was given. Validation runs on a
// trimmed, lower-cased copy.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, domainerr.NewEmpty("email")
	}
	if !emailPattern.MatchString(normalized) {
		return Email{}, domainerr.NewPatternMismatch("email", "email must be a valid address",
			map[string]any{"expectedFormat": "local@domain.tld"})
	}
	return Email{value: raw}, nil
}

func (e Email) Value() string { return e.value }

func (e Email) String() string { return e.value }

func (e Email) Equals(other Email) bool { return e.value == other.value }
