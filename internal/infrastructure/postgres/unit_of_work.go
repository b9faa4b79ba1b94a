package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/repository"
)

// UnitOfWork runs each Do inside a single pgx transaction.
type UnitOfWork struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

func NewUnitOfWork(pool *pgxpool.Pool, logger *logrus.Logger) *UnitOfWork {
	return &UnitOfWork{pool: pool, logger: logger}
}

// Do commits when fn returns nil and rolls back otherwise. The error from
// fn is returned as is so domain failures reach the caller untouched. A
// panic in fn rolls back and is re-raised.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, users repository.UserRepository) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				u.log().WithError(rbErr).WithField("panic", p).Error("rollback after panic failed")
			}
			panic(p)
		}
	}()

	if err := fn(ctx, &UserRepository{db: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			u.log().WithError(rbErr).WithField("cause", err.Error()).Error("rollback failed")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return translate(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func (u *UnitOfWork) log() *logrus.Logger {
	if u.logger == nil {
		return logrus.StandardLogger()
	}
	return u.logger
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)
