// Package person holds the person record aggregate and its status notes.
package person

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/relief-cloud/persondex/internal/text"
)

// MaxTokens bounds the denormalized search token set per record.
const MaxTokens = 100

// Person is one missing/found person record.
//
// Tokens is derived purely from GivenName, FamilyName and AlternateNames and
// is recomputed by the indexer whenever any of those change; it is never
// hand-edited. All other fields are plain record data.
type Person struct {
	id             string
	givenName      string
	familyName     string
	fullName       string
	alternateNames string
	homeCity       string
	homeState      string
	homeCountry    string
	expiry         int64 // unix millis, 0 = never expires
	createdAt      int64
	tokens         []string
}

// New validates and creates a Person. At least one of given or family name is
// required. An empty id gets a generated UUID; an empty full name is computed
// as "given family".
func New(id, givenName, familyName, fullName, alternateNames string) (Person, error) {
	givenName = strings.TrimSpace(givenName)
	familyName = strings.TrimSpace(familyName)
	if givenName == "" && familyName == "" {
		return Person{}, fmt.Errorf("at least one of given_name or family_name is required")
	}
	if id == "" {
		id = uuid.NewString()
	}
	if fullName == "" {
		fullName = strings.TrimSpace(givenName + " " + familyName)
	}
	return Person{
		id:             id,
		givenName:      givenName,
		familyName:     familyName,
		fullName:       fullName,
		alternateNames: strings.TrimSpace(alternateNames),
		createdAt:      time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates a Person without validation (storage hydration).
func Reconstruct(
	id, givenName, familyName, fullName, alternateNames,
	homeCity, homeState, homeCountry string,
	expiry, createdAt int64, tokens []string,
) Person {
	return Person{
		id:             id,
		givenName:      givenName,
		familyName:     familyName,
		fullName:       fullName,
		alternateNames: alternateNames,
		homeCity:       homeCity,
		homeState:      homeState,
		homeCountry:    homeCountry,
		expiry:         expiry,
		createdAt:      createdAt,
		tokens:         tokens,
	}
}

// ID returns the record identifier.
func (p *Person) ID() string { return p.id }

// GivenName returns the given (first) name.
func (p *Person) GivenName() string { return p.givenName }

// FamilyName returns the family (last) name.
func (p *Person) FamilyName() string { return p.familyName }

// FullName returns the full name (provided or computed).
func (p *Person) FullName() string { return p.fullName }

// AlternateNames returns the free-text alternate names.
func (p *Person) AlternateNames() string { return p.alternateNames }

// HomeCity returns the home city (display/ranking context only).
func (p *Person) HomeCity() string { return p.homeCity }

// HomeState returns the home state.
func (p *Person) HomeState() string { return p.homeState }

// HomeCountry returns the home country.
func (p *Person) HomeCountry() string { return p.homeCountry }

// Expiry returns the record expiry in unix millis (0 = never).
func (p *Person) Expiry() int64 { return p.expiry }

// CreatedAt returns the creation timestamp in unix millis.
func (p *Person) CreatedAt() int64 { return p.createdAt }

// Tokens returns the denormalized search token set.
func (p *Person) Tokens() []string { return p.tokens }

// SetNames replaces the name fields. The caller must reindex afterwards.
func (p *Person) SetNames(givenName, familyName, fullName, alternateNames string) {
	p.givenName = strings.TrimSpace(givenName)
	p.familyName = strings.TrimSpace(familyName)
	if fullName == "" {
		fullName = strings.TrimSpace(p.givenName + " " + p.familyName)
	}
	p.fullName = fullName
	p.alternateNames = strings.TrimSpace(alternateNames)
}

// SetHome sets the home-location fields.
func (p *Person) SetHome(city, state, country string) {
	p.homeCity = city
	p.homeState = state
	p.homeCountry = country
}

// SetExpiry sets the record expiry (unix millis, 0 = never).
func (p *Person) SetExpiry(expiry int64) { p.expiry = expiry }

// SetTokens replaces the search token set. Only the indexer calls this.
func (p *Person) SetTokens(tokens []string) { p.tokens = tokens }

// Expired reports whether the record has expired as of now.
func (p *Person) Expired(now time.Time) bool {
	return p.expiry > 0 && p.expiry <= now.UnixMilli()
}

// NameWords returns the normalized words of the given and family names,
// given-name words first.
func (p *Person) NameWords() []string {
	words := text.QueryWords(p.givenName)
	return append(words, text.QueryWords(p.familyName)...)
}

// AlternateWords returns the normalized words of the alternate names.
func (p *Person) AlternateWords() []string {
	return text.QueryWords(p.alternateNames)
}

// SamePerson reports whether two records describe the same person for
// ranking purposes: same full name, or same non-empty given+family pair.
func SamePerson(a, b *Person) bool {
	if text.Normalize(a.fullName) == text.Normalize(b.fullName) {
		return true
	}
	ag, af := text.Normalize(a.givenName), text.Normalize(a.familyName)
	bg, bf := text.Normalize(b.givenName), text.Normalize(b.familyName)
	return ag != "" && af != "" && ag == bg && af == bf
}
