// Package chi exposes the helpdesk services over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain"
	logpkg "github.com/Ritam-Vaskar/helpdesk-odoo/internal/logger"
	assistantuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/assistant"
	complaintuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/complaint"
	healthuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/health"
	rankinguc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/ranking"
	searchuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server wires the use case services to their routes.
type Server struct {
	assistant  *assistantuc.Service
	complaints *complaintuc.Service
	search     *searchuc.Service
	ranking    *rankinguc.Service
	health     *healthuc.Service
	logger     *zap.Logger

	defaultMaxResults int
	errorHandlers     []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	assistant *assistantuc.Service,
	complaints *complaintuc.Service,
	search *searchuc.Service,
	ranking *rankinguc.Service,
	health *healthuc.Service,
	defaultMaxResults int,
	logger *zap.Logger,
) *Server {
	s := &Server{
		assistant:         assistant,
		complaints:        complaints,
		search:            search,
		ranking:           ranking,
		health:            health,
		defaultMaxResults: defaultMaxResults,
		logger:            logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest),
		sentinelHandler(domain.ErrGeneration, http.StatusInternalServerError),
		sentinelHandler(domain.ErrStore, http.StatusInternalServerError),
		sentinelHandler(domain.ErrRetrieval, http.StatusInternalServerError),
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/summarize", s.Summarize)
	r.Post("/priority_score", s.PriorityScore)
	r.Post("/priority-users", s.PriorityUsers)
	r.Post("/add_complaint", s.AddComplaint)
	r.Post("/search_similar_complaints", s.SearchSimilarComplaints)
	r.Post("/enhanced_search_complaints", s.EnhancedSearchComplaints)
	r.Get("/all_complaints", s.AllComplaints)
	r.Post("/resolve_complaint", s.ResolveComplaint)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Summarize handles POST /summarize.
func (s *Server) Summarize(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Empty text provided")
		return
	}

	summary, err := s.assistant.Summarize(r.Context(), req.Text)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// PriorityScore handles POST /priority_score.
func (s *Server) PriorityScore(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Empty text provided")
		return
	}

	score, err := s.assistant.PriorityScore(r.Context(), req.Text)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"priority_score": score})
}

// PriorityUsers handles POST /priority-users.
func (s *Server) PriorityUsers(w http.ResponseWriter, r *http.Request) {
	var req priorityUsersRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if len(req.Users) == 0 {
		writeError(w, http.StatusBadRequest, "Users list is required")
		return
	}

	report, err := s.ranking.Rank(r.Context(), usersFromDTO(req.Users), req.Question, req.TopN)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rankingReportToDTO(report))
}

// AddComplaint handles POST /add_complaint.
func (s *Server) AddComplaint(w http.ResponseWriter, r *http.Request) {
	var req addComplaintRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Empty text provided")
		return
	}

	c, err := s.complaints.Add(r.Context(), req.Text, req.metadata())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, addComplaintResponse{
		Message:  "Complaint added successfully",
		ID:       c.ID(),
		Metadata: c.Metadata(),
	})
}

// SearchSimilarComplaints handles POST /search_similar_complaints.
func (s *Server) SearchSimilarComplaints(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = s.defaultMaxResults
	}

	matches, err := s.search.Similar(r.Context(), req.Query, req.MaxResults, req.SimilarityThreshold)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:             req.Query,
		TotalFound:        len(matches),
		SimilarComplaints: matchesToDTO(matches),
	})
}

// EnhancedSearchComplaints handles POST /enhanced_search_complaints.
func (s *Server) EnhancedSearchComplaints(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = s.defaultMaxResults
	}

	report, err := s.search.Enhanced(r.Context(), req.Query, req.MaxResults)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchReportToDTO(report))
}

// AllComplaints handles GET /all_complaints.
func (s *Server) AllComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := s.complaints.GetAll(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	records := make([]complaintRecord, len(complaints))
	for i := range complaints {
		c := &complaints[i]
		records[i] = complaintRecord{
			ID:       c.ID(),
			Text:     c.Text(),
			Metadata: c.Metadata(),
		}
	}

	writeJSON(w, http.StatusOK, allComplaintsResponse{
		TotalComplaints: len(records),
		Complaints:      records,
	})
}

// ResolveComplaint handles POST /resolve_complaint.
func (s *Server) ResolveComplaint(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "Empty query provided")
		return
	}

	reply, err := s.assistant.Resolve(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	// Prefer the per-request logger so error lines carry the request id.
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("unclassified error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error. The error message is passed through to the caller.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, err.Error())
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
