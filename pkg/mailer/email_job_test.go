package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/event"
	mailtpl "github.com/oksasatya/go-ddd-user-accounts/pkg/mailer/templates"
)

func TestJobFor(t *testing.T) {
	brand := mailtpl.Brand{CompanyName: "Acme", AppName: "Accounts"}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		evt      event.UserEvent
		ok       bool
		template string
		subject  string
	}{
		{
			name:     "created sends welcome",
			evt:      event.UserEvent{Type: event.UserCreated, Name: "Maria Silva", Email: "maria@example.com", Status: "ACTIVE", OccurredAt: at},
			ok:       true,
			template: mailtpl.Welcome,
			subject:  "Welcome to Accounts",
		},
		{
			name:     "blocked sends notice",
			evt:      event.UserEvent{Type: event.UserBlocked, Name: "Maria Silva", Email: "maria@example.com", Status: "BLOCKED", OccurredAt: at},
			ok:       true,
			template: mailtpl.AccountNotice,
			subject:  "Your account was blocked",
		},
		{
			name: "no address",
			evt:  event.UserEvent{Type: event.UserBlocked},
		},
		{
			name: "unknown type",
			evt:  event.UserEvent{Type: "user.renamed", Email: "maria@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, ok := JobFor(tt.evt, brand)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.evt.Email, job.To)
			assert.Equal(t, tt.template, job.Template)

			subject, _, _, err := job.Render()
			require.NoError(t, err)
			assert.Equal(t, tt.subject, subject)
		})
	}
}

func TestJobForCarriesStatusDescription(t *testing.T) {
	job, ok := JobFor(event.UserEvent{Type: event.UserDeactivated, Email: "maria@example.com", Status: "INACTIVE"}, mailtpl.Brand{})
	require.True(t, ok)
	assert.Equal(t, "Inactive", job.Data.Status)
}
