package application

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/event"
)

// UserCache stores read projections by id.
type UserCache interface {
	Get(ctx context.Context, id string) (UserOutput, bool, error)
	Set(ctx context.Context, u UserOutput) error
	Delete(ctx context.Context, id string) error
}

// UserIndex keeps a searchable copy of user projections. Index must not
// let a projection replace one with a later UpdatedAt.
type UserIndex interface {
	Index(ctx context.Context, u UserOutput) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string, size int) ([]UserOutput, error)
}

// Option configures the optional collaborators of a use case.
type Option func(*collaborators)

func WithLogger(l *logrus.Logger) Option {
	return func(c *collaborators) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithPublisher(p event.Publisher) Option {
	return func(c *collaborators) {
		if p != nil {
			c.publisher = p
		}
	}
}

func WithCache(cache UserCache) Option {
	return func(c *collaborators) { c.cache = cache }
}

func WithIndex(index UserIndex) Option {
	return func(c *collaborators) { c.index = index }
}

// collaborators are side channels notified after a use case settles. None
// of them can make a committed use case fail.
type collaborators struct {
	logger    *logrus.Logger
	publisher event.Publisher
	cache     UserCache
	index     UserIndex
}

func newCollaborators(opts []Option) collaborators {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	c := collaborators{logger: quiet, publisher: event.NopPublisher{}}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c collaborators) failed(op string, err error, fields logrus.Fields) {
	entry := c.logger.WithField("use_case", op).WithFields(fields)
	if de, ok := domainerr.As(err); ok {
		entry.WithFields(logrus.Fields{
			"kind":    de.Kind(),
			"details": de.PublicDetails(),
		}).Info(de.Message())
		return
	}
	entry.WithError(err).Error("use case failed")
}

// committed evicts the cached projection, reindexes out and publishes a
// typ event. The cache is refilled by the next read so concurrent writers
// cannot leave an older projection behind.
func (c collaborators) committed(ctx context.Context, typ event.Type, out UserOutput) {
	if c.cache != nil {
		if err := c.cache.Delete(ctx, out.ID); err != nil {
			c.logger.WithError(err).WithField("user_id", out.ID).Warn("cache eviction failed")
		}
	}
	if c.index != nil {
		if err := c.index.Index(ctx, out); err != nil {
			c.logger.WithError(err).WithField("user_id", out.ID).Warn("index refresh failed")
		}
	}
	c.publish(ctx, event.UserEvent{
		Type:       typ,
		UserID:     out.ID,
		Name:       out.Name,
		Email:      out.Email,
		Status:     out.Status,
		OccurredAt: out.UpdatedAt,
	})
}

func (c collaborators) removed(ctx context.Context, out UserOutput) {
	if c.cache != nil {
		if err := c.cache.Delete(ctx, out.ID); err != nil {
			c.logger.WithError(err).WithField("user_id", out.ID).Warn("cache eviction failed")
		}
	}
	if c.index != nil {
		if err := c.index.Remove(ctx, out.ID); err != nil {
			c.logger.WithError(err).WithField("user_id", out.ID).Warn("index removal failed")
		}
	}
	c.publish(ctx, event.UserEvent{
		Type:       event.UserDeleted,
		UserID:     out.ID,
		Name:       out.Name,
		Email:      out.Email,
		OccurredAt: time.Now().UTC(),
	})
}

func (c collaborators) publish(ctx context.Context, evt event.UserEvent) {
	if err := c.publisher.Publish(ctx, evt); err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": evt.UserID,
			"event":   evt.Type,
		}).Warn("publish event failed")
	}
}
