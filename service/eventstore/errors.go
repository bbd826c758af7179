package eventstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
)

// Error kinds, every error returned by the store matches exactly one of them with errors.Is
var (
	ErrConcurrency = model.ErrConcurrency
	ErrUsage       = model.ErrUsage
	ErrStorage     = model.ErrStorage
)

var (
	// ErrStreamNotFound ...
	ErrStreamNotFound = fmt.Errorf("%w: stream not found", ErrUsage)

	// ErrStreamExistsAlready ...
	ErrStreamExistsAlready = fmt.Errorf("%w: stream exists already", ErrUsage)

	// ErrTransactionAlreadyStarted nested transactions are not supported
	ErrTransactionAlreadyStarted = fmt.Errorf("%w: transaction already started", ErrUsage)

	// ErrTransactionNotStarted ...
	ErrTransactionNotStarted = fmt.Errorf("%w: transaction not started", ErrUsage)

	// ErrInvalidVersion versions start from 1
	ErrInvalidVersion = fmt.Errorf("%w: event version must be positive", ErrUsage)

	// ErrClosed ...
	ErrClosed = fmt.Errorf("%w: event store is closed", ErrUsage)
)

// Stages of storage errors
const (
	StageSchemaCreation = "error during schema creation"
	StageAppend         = "error during append"
	StageLoad           = "error during load"
	StageDelete         = "error during delete"
	StageMetadata       = "error during stream metadata access"
	StageTransaction    = "error during transaction handling"
)

// StorageError wraps any other failure of the database with the stage it happened in
type StorageError struct {
	Stage string
	Err   error
}

func (e *StorageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

// Unwrap ...
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is matches ErrStorage
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func newStorageError(stage string, err error) error {
	return &StorageError{Stage: stage, Err: err}
}

// classifyWriteError maps driver errors of writes to stream tables,
// scope names the columns of the violated uniqueness constraint
func classifyWriteError(name model.StreamName, stage string, scope []string, err error) error {
	switch {
	case sqldialect.IsUniqueViolation(err):
		return fmt.Errorf("%w: stream %q: duplicate (%s): %w", ErrConcurrency, name, strings.Join(scope, ", "), err)
	case sqldialect.IsTableNotFound(err):
		return fmt.Errorf("%w: %q", ErrStreamNotFound, name)
	default:
		return newStorageError(stage, err)
	}
}

// errorKind returns the metric label of err
func errorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrConcurrency):
		return "concurrency"
	case errors.Is(err, ErrUsage):
		return "usage"
	default:
		return "storage"
	}
}
