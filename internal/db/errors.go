package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
	// ErrTooManyFilters signals a set intersection wider than the store's
	// configured limit. The query executor relaxes filters and retries;
	// no other storage error is retried.
	ErrTooManyFilters = errors.New("db: too many simultaneous filters")
)

// Op constants map to Redis command names for error context.
const (
	OpDel      = "DEL"
	OpExists   = "EXISTS"
	OpHDel     = "HDEL"
	OpHGetAll  = "HGETALL"
	OpHSet     = "HSET"
	OpSAdd     = "SADD"
	OpSInter   = "SINTER"
	OpSMembers = "SMEMBERS"
	OpSRem     = "SREM"
	OpScan     = "SCAN"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
