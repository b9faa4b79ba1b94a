package mailer

import (
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/event"
	mailtpl "github.com/oksasatya/go-ddd-user-accounts/pkg/mailer/templates"
)

// EmailJob is one rendered-to-be email for a single recipient.
type EmailJob struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     mailtpl.EmailData `json:"data"`
}

type notice struct {
	headline string
	message  string
}

var notices = map[event.Type]notice{
	event.UserUpdated:         {"Your profile was updated", "The name, email or telephone on your account changed."},
	event.UserPasswordChanged: {"Your password was changed", "The password for your account was changed."},
	event.UserActivated:       {"Your account is active", "Your account was activated and you can use it again."},
	event.UserDeactivated:     {"Your account was deactivated", "Your account was deactivated."},
	event.UserBlocked:         {"Your account was blocked", "Your account was blocked. Reach out to support to restore access."},
	event.UserDeleted:         {"Your account was deleted", "Your account and its data were removed."},
}

// JobFor maps a user event to the email its owner receives. It reports
// false for events without an address or without a notification.
func JobFor(evt event.UserEvent, brand mailtpl.Brand) (EmailJob, bool) {
	if evt.Email == "" {
		return EmailJob{}, false
	}
	opts := []mailtpl.Option{mailtpl.WithTime(evt.OccurredAt)}
	if s, err := entity.ParseStatus(evt.Status); err == nil {
		opts = append(opts, mailtpl.WithStatus(s.Description()))
	}

	if evt.Type == event.UserCreated {
		return EmailJob{
			To:       evt.Email,
			Template: mailtpl.Welcome,
			Data:     mailtpl.NewEmailData(brand, string(evt.Type), evt.Name, evt.Email, opts...),
		}, true
	}

	n, ok := notices[evt.Type]
	if !ok {
		return EmailJob{}, false
	}
	opts = append(opts, mailtpl.WithNotice(n.headline, n.message))
	return EmailJob{
		To:       evt.Email,
		Template: mailtpl.AccountNotice,
		Data:     mailtpl.NewEmailData(brand, string(evt.Type), evt.Name, evt.Email, opts...),
	}, true
}

// Render produces subject, text and html for the job.
func (j EmailJob) Render() (subject, text, html string, err error) {
	return mailtpl.Render(j.Template, j.Data)
}
