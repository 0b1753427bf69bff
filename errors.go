package persondex

import "github.com/relief-cloud/persondex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrRepoNotFound    = domain.ErrRepoNotFound
	ErrRepoDeactivated = domain.ErrRepoDeactivated
	ErrPersonNotFound  = domain.ErrPersonNotFound
	ErrAlreadyExists   = domain.ErrAlreadyExists
	ErrInvalidInput    = domain.ErrInvalidInput
	ErrNotSubscribed   = domain.ErrNotSubscribed
)
