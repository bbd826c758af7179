package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

//go:generate moq -out repository_mocks.go . Conn Tx

// Readonly for wrapping sqlx functionalities
type Readonly interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Executor runs statements on a connection or a transaction
type Executor interface {
	Readonly

	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
}

var _ Executor = &sqlx.DB{}
var _ Executor = &sqlx.Tx{}
var _ Executor = &sqlx.Conn{}

// Tx is a transaction begun on a Conn
type Tx interface {
	Executor

	Commit() error
	Rollback() error
}

var _ Tx = &sqlx.Tx{}

// Conn is a single database session, advisory locks are bound to it
type Conn interface {
	Executor

	BeginTx(ctx context.Context) (Tx, error)
	Close() error
}

type sqlxConn struct {
	*sqlx.Conn
}

// NewConn wraps a dedicated sqlx connection
func NewConn(conn *sqlx.Conn) Conn {
	return sqlxConn{Conn: conn}
}

func (c sqlxConn) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := c.Conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Provider for creating Readonly and Transaction contexts over a pool
type Provider interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	Readonly(ctx context.Context) context.Context
}

type providerImpl struct {
	db *sqlx.DB
}

// NewProvider ...
func NewProvider(db *sqlx.DB) Provider {
	return &providerImpl{db: db}
}

// Transact runs fn in a transaction, reusing the one already carried by ctx
func (p *providerImpl) Transact(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = fn(WithTx(ctx, tx))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Readonly ...
func (p *providerImpl) Readonly(ctx context.Context) context.Context {
	return WithExecutor(ctx, p.db)
}
