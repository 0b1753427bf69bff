// Package repo holds the per-disaster repository aggregate. A repository is a
// named, isolated collection of person records, one per disaster event.
package repo

import (
	"fmt"
	"regexp"
	"time"
)

var nameRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// Repo is a per-disaster record collection (immutable value object).
type Repo struct {
	name      string
	title     string
	activated bool
	createdAt int64
}

// New validates and creates a Repo. Name: ^[a-z0-9-]+$, 1-64 chars.
// New repositories start activated.
func New(name, title string) (Repo, error) {
	if name == "" {
		return Repo{}, fmt.Errorf("repository name is required")
	}
	if len(name) > 64 {
		return Repo{}, fmt.Errorf("repository name too long (max 64)")
	}
	if !nameRegex.MatchString(name) {
		return Repo{}, fmt.Errorf("repository name must be lowercase alphanumeric with hyphens")
	}
	if title == "" {
		title = name
	}
	return Repo{
		name:      name,
		title:     title,
		activated: true,
		createdAt: time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates a Repo without validation (storage hydration).
func Reconstruct(name, title string, activated bool, createdAt int64) Repo {
	return Repo{name: name, title: title, activated: activated, createdAt: createdAt}
}

// Name returns the repository name.
func (r Repo) Name() string { return r.name }

// Title returns the human-readable title.
func (r Repo) Title() string { return r.title }

// Activated reports whether the repository accepts reads and writes.
func (r Repo) Activated() bool { return r.activated }

// CreatedAt returns the creation timestamp in unix millis.
func (r Repo) CreatedAt() int64 { return r.createdAt }

// WithActivation returns a copy with the activation flag set.
func (r Repo) WithActivation(activated bool) Repo {
	r.activated = activated
	return r
}
