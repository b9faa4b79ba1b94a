package entity

import "fmt"

// Status is the lifecycle state of a user account.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusBlocked  Status = "BLOCKED"
)

// ParseStatus accepts the stored representation of a status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusInactive, StatusBlocked:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown user status %q", s)
}

func (s Status) String() string { return string(s) }

// Description is the human readable label used in API responses.
func (s Status) Description() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	case StatusBlocked:
		return "Blocked"
	}
	return "Unknown"
}
