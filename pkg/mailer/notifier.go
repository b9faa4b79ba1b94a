package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/event"
	mailtpl "github.com/oksasatya/go-ddd-user-accounts/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota // handled or nothing to send
	Drop                   // unreadable; never redeliver
	Requeue                // transient failure
)

// Notifier turns user event messages into emails.
type Notifier struct {
	sender  Sender
	brand   mailtpl.Brand
	logger  *logrus.Logger
	timeout time.Duration
}

func NewNotifier(sender Sender, brand mailtpl.Brand, logger *logrus.Logger) *Notifier {
	return &Notifier{sender: sender, brand: brand, logger: logger, timeout: 15 * time.Second}
}

// Handle decodes one message body and sends the matching email.
func (n *Notifier) Handle(ctx context.Context, body []byte) Outcome {
	var evt event.UserEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		n.logger.WithError(err).Warn("bad user event")
		return Drop
	}
	log := n.logger.WithFields(logrus.Fields{"type": evt.Type, "user_id": evt.UserID})

	job, ok := JobFor(evt, n.brand)
	if !ok {
		log.Debug("no notification for event")
		return Ack
	}
	subject, text, html, err := job.Render()
	if err != nil {
		log.WithError(err).Error("render failed")
		return Drop
	}

	c, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if err := n.sender.Send(c, job.To, subject, text, html); err != nil {
		log.WithError(err).Warn("send failed")
		return Requeue
	}
	log.Info("notification sent")
	return Ack
}
