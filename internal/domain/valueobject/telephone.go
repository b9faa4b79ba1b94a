package valueobject

import (
	"regexp"
	"strings"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
)

// Accepts "(11) 98765-4321", "11987654321" and "+55 (11) 98765-4321".
var telephonePattern = regexp.MustCompile(`^(\+\d{1,3}\s?)?\(?\d{2}\)?\s?\d{4,5}-?\d{4}$`)

type Telephone struct {
	value string
}

func NewTelephone(raw string) (Telephone, error) {
	if strings.TrimSpace(raw) == "" {
		return Telephone{}, domainerr.NewEmpty("telephone")
	}
	if !telephonePattern.MatchString(raw) {
		return Telephone{}, domainerr.NewPatternMismatch("telephone", "telephone must be a valid phone number",
			map[string]any{"expectedFormat": "(99) 99999-9999"})
	}
	return Telephone{value: raw}, nil
}

func (t Telephone) Value() string { return t.value }

func (t Telephone) String() string { return t.value }

func (t Telephone) Equals(other Telephone) bool { return t.value == other.value }
