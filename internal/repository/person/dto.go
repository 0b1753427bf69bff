package person

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	domper "github.com/relief-cloud/persondex/internal/domain/person"
)

// Hash field names for person records.
const (
	fieldGivenName      = "given_name"
	fieldFamilyName     = "family_name"
	fieldFullName       = "full_name"
	fieldAlternateNames = "alternate_names"
	fieldHomeCity       = "home_city"
	fieldHomeState      = "home_state"
	fieldHomeCountry    = "home_country"
	fieldExpiry         = "expiry"
	fieldCreatedAt      = "created_at"
	fieldTokens         = "tokens"
)

// personToHash flattens a Person into hash fields. Tokens are space-joined:
// normalization guarantees tokens never contain whitespace.
func personToHash(p *domper.Person) map[string]string {
	return map[string]string{
		fieldGivenName:      p.GivenName(),
		fieldFamilyName:     p.FamilyName(),
		fieldFullName:       p.FullName(),
		fieldAlternateNames: p.AlternateNames(),
		fieldHomeCity:       p.HomeCity(),
		fieldHomeState:      p.HomeState(),
		fieldHomeCountry:    p.HomeCountry(),
		fieldExpiry:         strconv.FormatInt(p.Expiry(), 10),
		fieldCreatedAt:      strconv.FormatInt(p.CreatedAt(), 10),
		fieldTokens:         strings.Join(p.Tokens(), " "),
	}
}

// personFromHash hydrates a Person from hash fields.
func personFromHash(id string, m map[string]string) domper.Person {
	expiry, _ := strconv.ParseInt(m[fieldExpiry], 10, 64)
	createdAt, _ := strconv.ParseInt(m[fieldCreatedAt], 10, 64)
	var tokens []string
	if m[fieldTokens] != "" {
		tokens = strings.Fields(m[fieldTokens])
	}
	return domper.Reconstruct(
		id,
		m[fieldGivenName], m[fieldFamilyName], m[fieldFullName], m[fieldAlternateNames],
		m[fieldHomeCity], m[fieldHomeState], m[fieldHomeCountry],
		expiry, createdAt, tokens,
	)
}

// noteDTO is the JSON shape of a note inside the notes hash.
type noteDTO struct {
	ID         string `json:"id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"created_at"`
}

func noteToJSON(n *domper.Note) (string, error) {
	data, err := json.Marshal(noteDTO{
		ID:         n.ID(),
		AuthorName: n.AuthorName(),
		Content:    n.Content(),
		Status:     string(n.Status()),
		CreatedAt:  n.CreatedAt(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal note: %w", err)
	}
	return string(data), nil
}

func noteFromJSON(raw string) (domper.Note, error) {
	var dto noteDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		return domper.Note{}, fmt.Errorf("unmarshal note: %w", err)
	}
	return domper.ReconstructNote(
		dto.ID, dto.AuthorName, dto.Content, domper.Status(dto.Status), dto.CreatedAt,
	), nil
}
