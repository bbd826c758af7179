package repository

import (
	"context"
)

type ctxExecutorKeyType struct {
}

var ctxExecutorKey = ctxExecutorKeyType{}

type ctxExecutorValue struct {
	executor Executor
	tx       bool
}

// WithExecutor returns a context carrying the executor used by repositories
func WithExecutor(ctx context.Context, e Executor) context.Context {
	return context.WithValue(ctx, ctxExecutorKey, ctxExecutorValue{executor: e})
}

// WithTx same as WithExecutor, marks the executor as a transaction
func WithTx(ctx context.Context, tx Tx) context.Context {
	return context.WithValue(ctx, ctxExecutorKey, ctxExecutorValue{executor: tx, tx: true})
}

func inTx(ctx context.Context) bool {
	v, ok := ctx.Value(ctxExecutorKey).(ctxExecutorValue)
	return ok && v.tx
}

// GetExecutor get Executor from context
func GetExecutor(ctx context.Context) Executor {
	v, ok := ctx.Value(ctxExecutorKey).(ctxExecutorValue)
	if !ok {
		panic("Not found executor")
	}
	return v.executor
}

// GetReadonly get Readonly from context
func GetReadonly(ctx context.Context) Readonly {
	return GetExecutor(ctx)
}
