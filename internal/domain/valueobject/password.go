package valueobject

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 50
	// PasswordMaxBytes is the most bcrypt accepts.
	PasswordMaxBytes = 72
)

// Password holds either a raw secret that passed the strength rules or a
// hash loaded from storage. It never prints its value.
type Password struct {
	value  string
	hashed bool
}

type characterRule struct {
	class string
	match func(rune) bool
}

var passwordRules = []characterRule{
	{class: "digit", match: unicode.IsDigit},
	{class: "uppercase", match: unicode.IsUpper},
	{class: "lowercase", match: unicode.IsLower},
	{class: "special", match: isSpecial},
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// NewRawPassword validates a plain text password.
func NewRawPassword(raw string) (Password, error) {
	if strings.TrimSpace(raw) == "" {
		return Password{}, domainerr.NewEmpty("password")
	}
	n := utf8.RuneCountInString(raw)
	if n < PasswordMinLength {
		return Password{}, domainerr.NewMinLength("password", PasswordMinLength, n)
	}
	if n > PasswordMaxLength {
		return Password{}, domainerr.NewMaxLength("password", PasswordMaxLength, n)
	}
	if b := len(raw); b > PasswordMaxBytes {
		return Password{}, domainerr.NewValidation("password", domainerr.MaxLength,
			fmt.Sprintf("password must be at most %d bytes when UTF-8 encoded", PasswordMaxBytes),
			map[string]any{"maxBytes": PasswordMaxBytes, "actualBytes": b})
	}
	for _, rule := range passwordRules {
		if !strings.ContainsFunc(raw, rule.match) {
			return Password{}, domainerr.NewPatternMismatch("password",
				"password must contain at least one "+rule.class+" character",
				map[string]any{"missingCharacters": rule.class})
		}
	}
	return Password{value: raw}, nil
}

// NewHashedPassword wraps a value that is already hashed.
func NewHashedPassword(hash string) (Password, error) {
	if strings.TrimSpace(hash) == "" {
		return Password{}, domainerr.NewEmpty("password")
	}
	return Password{value: hash, hashed: true}, nil
}

func (p Password) Value() string { return p.value }

func (p Password) IsHashed() bool { return p.hashed }

func (p Password) String() string { return "********" }

func (p Password) Equals(other Password) bool {
	return p.value == other.value && p.hashed == other.hashed
}
