package model

import "errors"

// ErrConcurrency is the kind of errors caused by version collisions or write lock failures
var ErrConcurrency = errors.New("concurrency error")

// ErrUsage is the kind of errors caused by callers violating a precondition
var ErrUsage = errors.New("usage error")

// ErrStorage is the kind of any other persistence failure
var ErrStorage = errors.New("storage error")
