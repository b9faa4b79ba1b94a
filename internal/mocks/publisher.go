package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/event"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, evt event.UserEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

// Types returns the event types published so far, in order.
func (m *Publisher) Types() []event.Type {
	var out []event.Type
	for _, c := range m.Calls {
		if c.Method == "Publish" {
			out = append(out, c.Arguments.Get(1).(event.UserEvent).Type)
		}
	}
	return out
}
