// Package domain holds shared sentinel errors and storage constants.
package domain

import "errors"

var (
	// ErrRepoNotFound signals a missing repository.
	ErrRepoNotFound = errors.New("repository not found")
	// ErrRepoDeactivated signals an operation against a deactivated repository.
	ErrRepoDeactivated = errors.New("repository deactivated")
	// ErrPersonNotFound signals a missing person record.
	ErrPersonNotFound = errors.New("person not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput signals a validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotSubscribed signals an unsubscribe for an unknown subscriber.
	ErrNotSubscribed = errors.New("not subscribed")
)

// KeyPrefix namespaces every storage key written by this service.
const KeyPrefix = "pd:"
