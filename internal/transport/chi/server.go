// Package chi exposes the persondex HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/relief-cloud/persondex/internal/domain"
	domper "github.com/relief-cloud/persondex/internal/domain/person"
	"github.com/relief-cloud/persondex/internal/domain/query"
	healthuc "github.com/relief-cloud/persondex/internal/usecase/health"
	importeruc "github.com/relief-cloud/persondex/internal/usecase/importer"
	personuc "github.com/relief-cloud/persondex/internal/usecase/person"
	repouc "github.com/relief-cloud/persondex/internal/usecase/repo"
	searchuc "github.com/relief-cloud/persondex/internal/usecase/search"
	subscribeuc "github.com/relief-cloud/persondex/internal/usecase/subscribe"
)

const defaultMaxResults = 100

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the use case services into HTTP handlers.
type Server struct {
	repos         *repouc.Service
	persons       *personuc.Service
	search        *searchuc.Service
	subs          *subscribeuc.Service
	importer      *importeruc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxResults    int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	repos *repouc.Service,
	persons *personuc.Service,
	search *searchuc.Service,
	subs *subscribeuc.Service,
	importer *importeruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		repos:      repos,
		persons:    persons,
		search:     search,
		subs:       subs,
		importer:   importer,
		health:     health,
		logger:     logger,
		maxResults: defaultMaxResults,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrRepoNotFound, http.StatusNotFound, codeRepoNotFound),
		sentinelHandler(domain.ErrRepoDeactivated, http.StatusForbidden, codeRepoDeactivated),
		sentinelHandler(domain.ErrPersonNotFound, http.StatusNotFound, codePersonNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNotSubscribed, http.StatusNotFound, codeNotSubscribed),
	}
	return s
}

// WithMaxResults caps the number of search results a client may request.
func (s *Server) WithMaxResults(n int) *Server {
	if n > 0 {
		s.maxResults = n
	}
	return s
}

// Routes registers all API routes on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/repos", func(r chi.Router) {
			r.Post("/", s.createRepo)
			r.Get("/", s.listRepos)
			r.Route("/{repo}", func(r chi.Router) {
				r.Get("/", s.getRepo)
				r.Delete("/", s.deleteRepo)
				r.Post("/activate", s.activateRepo)
				r.Post("/deactivate", s.deactivateRepo)
				r.Get("/search", s.searchPersons)
				r.Post("/import", s.importPersons)
				r.Route("/persons", func(r chi.Router) {
					r.Post("/", s.createPerson)
					r.Get("/count", s.countPersons)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", s.getPerson)
						r.Put("/", s.updatePerson)
						r.Delete("/", s.deletePerson)
						r.Post("/notes", s.addNote)
						r.Get("/notes", s.listNotes)
						r.Post("/subscribe", s.subscribe)
						r.Post("/unsubscribe", s.unsubscribe)
					})
				})
			})
		})
	})
}

// --- repository handlers ---

func (s *Server) createRepo(w http.ResponseWriter, r *http.Request) {
	var req repoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	rep, err := s.repos.Create(r.Context(), req.Name, req.Title)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, repoToDTO(rep))
}

func (s *Server) listRepos(w http.ResponseWriter, r *http.Request) {
	reps, err := s.repos.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	items := make([]repoResponse, len(reps))
	for i, rep := range reps {
		items[i] = repoToDTO(rep)
	}
	writeJSON(w, http.StatusOK, repoListResponse{Repos: items})
}

func (s *Server) getRepo(w http.ResponseWriter, r *http.Request) {
	rep, err := s.repos.Get(r.Context(), chi.URLParam(r, "repo"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, repoToDTO(rep))
}

func (s *Server) deleteRepo(w http.ResponseWriter, r *http.Request) {
	if err := s.repos.Delete(r.Context(), chi.URLParam(r, "repo")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) activateRepo(w http.ResponseWriter, r *http.Request) {
	s.setActivation(w, r, true)
}

func (s *Server) deactivateRepo(w http.ResponseWriter, r *http.Request) {
	s.setActivation(w, r, false)
}

func (s *Server) setActivation(w http.ResponseWriter, r *http.Request, activated bool) {
	rep, err := s.repos.SetActivation(r.Context(), chi.URLParam(r, "repo"), activated)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, repoToDTO(rep))
}

// --- person handlers ---

func (s *Server) createPerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	p, err := s.persons.Create(r.Context(), chi.URLParam(r, "repo"), req.toInput())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, personToDTO(&p))
}

func (s *Server) getPerson(w http.ResponseWriter, r *http.Request) {
	p, err := s.persons.Get(r.Context(), chi.URLParam(r, "repo"), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, personToDTO(&p))
}

func (s *Server) updatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	p, err := s.persons.Update(r.Context(), chi.URLParam(r, "repo"), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, personToDTO(&p))
}

func (s *Server) deletePerson(w http.ResponseWriter, r *http.Request) {
	if err := s.persons.Delete(r.Context(), chi.URLParam(r, "repo"), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) countPersons(w http.ResponseWriter, r *http.Request) {
	n, err := s.persons.Count(r.Context(), chi.URLParam(r, "repo"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// --- note handlers ---

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	n, err := s.persons.AddNote(
		r.Context(), chi.URLParam(r, "repo"), chi.URLParam(r, "id"),
		req.AuthorName, req.Content, domper.Status(req.Status),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, noteToDTO(&n))
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.persons.ListNotes(r.Context(), chi.URLParam(r, "repo"), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	items := make([]noteResponse, len(notes))
	for i := range notes {
		items[i] = noteToDTO(&notes[i])
	}
	writeJSON(w, http.StatusOK, noteListResponse{Notes: items})
}

// --- search handler ---

func (s *Server) searchPersons(w http.ResponseWriter, r *http.Request) {
	q := query.New(r.URL.Query().Get("q"))

	maxResults := s.maxResults
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "max_results must be a positive integer")
			return
		}
		if n < maxResults {
			maxResults = n
		}
	}

	persons, err := s.search.Search(r.Context(), chi.URLParam(r, "repo"), q, maxResults)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	items := make([]personResponse, len(persons))
	for i := range persons {
		items[i] = personToDTO(&persons[i])
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: items})
}

// --- subscription handlers ---

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	err := s.subs.Subscribe(r.Context(), chi.URLParam(r, "repo"), chi.URLParam(r, "id"), req.Email)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	err := s.subs.Unsubscribe(r.Context(), chi.URLParam(r, "repo"), chi.URLParam(r, "id"), req.Email)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- import handler ---

func (s *Server) importPersons(w http.ResponseWriter, r *http.Request) {
	rep, err := s.importer.Import(r.Context(), chi.URLParam(r, "repo"), r.Body)
	if err != nil {
		if errors.Is(err, domain.ErrRepoNotFound) || errors.Is(err, domain.ErrRepoDeactivated) {
			s.handleDomainError(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// --- health handler ---

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	rep := s.health.Check(r.Context())
	status := http.StatusOK
	if rep.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthToDTO(rep))
}

// --- error plumbing ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrRepoNotFound,
		domain.ErrRepoDeactivated,
		domain.ErrPersonNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidInput,
		domain.ErrNotSubscribed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
