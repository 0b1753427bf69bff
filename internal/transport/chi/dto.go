package chi

import (
	"time"

	domper "github.com/relief-cloud/persondex/internal/domain/person"
	domrepo "github.com/relief-cloud/persondex/internal/domain/repo"
	healthuc "github.com/relief-cloud/persondex/internal/usecase/health"
	personuc "github.com/relief-cloud/persondex/internal/usecase/person"
)

// errorCode identifies a class of API error for clients.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeRepoNotFound     errorCode = "repo_not_found"
	codeRepoDeactivated  errorCode = "repo_deactivated"
	codePersonNotFound   errorCode = "person_not_found"
	codeAlreadyExists    errorCode = "already_exists"
	codeNotSubscribed    errorCode = "not_subscribed"
	codeInternalError    errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type repoRequest struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

type repoResponse struct {
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Activated bool      `json:"activated"`
	CreatedAt time.Time `json:"created_at"`
}

func repoToDTO(r domrepo.Repo) repoResponse {
	return repoResponse{
		Name:      r.Name(),
		Title:     r.Title(),
		Activated: r.Activated(),
		CreatedAt: time.UnixMilli(r.CreatedAt()).UTC(),
	}
}

type repoListResponse struct {
	Repos []repoResponse `json:"repos"`
}

type personRequest struct {
	GivenName      string `json:"given_name"`
	FamilyName     string `json:"family_name"`
	FullName       string `json:"full_name,omitempty"`
	AlternateNames string `json:"alternate_names,omitempty"`
	HomeCity       string `json:"home_city,omitempty"`
	HomeState      string `json:"home_state,omitempty"`
	HomeCountry    string `json:"home_country,omitempty"`
	Expiry         int64  `json:"expiry,omitempty"`
}

func (r personRequest) toInput() personuc.CreateInput {
	return personuc.CreateInput{
		GivenName:      r.GivenName,
		FamilyName:     r.FamilyName,
		FullName:       r.FullName,
		AlternateNames: r.AlternateNames,
		HomeCity:       r.HomeCity,
		HomeState:      r.HomeState,
		HomeCountry:    r.HomeCountry,
		Expiry:         r.Expiry,
	}
}

type personResponse struct {
	ID             string    `json:"id"`
	GivenName      string    `json:"given_name,omitempty"`
	FamilyName     string    `json:"family_name,omitempty"`
	FullName       string    `json:"full_name"`
	AlternateNames string    `json:"alternate_names,omitempty"`
	HomeCity       string    `json:"home_city,omitempty"`
	HomeState      string    `json:"home_state,omitempty"`
	HomeCountry    string    `json:"home_country,omitempty"`
	Expiry         int64     `json:"expiry,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func personToDTO(p *domper.Person) personResponse {
	return personResponse{
		ID:             p.ID(),
		GivenName:      p.GivenName(),
		FamilyName:     p.FamilyName(),
		FullName:       p.FullName(),
		AlternateNames: p.AlternateNames(),
		HomeCity:       p.HomeCity(),
		HomeState:      p.HomeState(),
		HomeCountry:    p.HomeCountry(),
		Expiry:         p.Expiry(),
		CreatedAt:      time.UnixMilli(p.CreatedAt()).UTC(),
	}
}

type searchResponse struct {
	Results []personResponse `json:"results"`
}

type noteRequest struct {
	AuthorName string `json:"author_name"`
	Content    string `json:"content,omitempty"`
	Status     string `json:"status,omitempty"`
}

type noteResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content,omitempty"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func noteToDTO(n *domper.Note) noteResponse {
	return noteResponse{
		ID:         n.ID(),
		AuthorName: n.AuthorName(),
		Content:    n.Content(),
		Status:     string(n.Status()),
		CreatedAt:  time.UnixMilli(n.CreatedAt()).UTC(),
	}
}

type noteListResponse struct {
	Notes []noteResponse `json:"notes"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

type countResponse struct {
	Count int `json:"count"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func healthToDTO(r healthuc.Report) healthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return healthResponse{Status: string(r.Status), Checks: checks}
}
