package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fiplan/goal-tracker/internal/advisor"
	"github.com/fiplan/goal-tracker/internal/calculation"
	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/fiplan/goal-tracker/internal/output"
	"github.com/fiplan/goal-tracker/internal/yield"
)

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// BatchRequest is the body of POST /api/batch-dividend-yields
type BatchRequest struct {
	Symbols []string `json:"symbols"`
}

// BatchResponse maps each requested symbol to a quote or an ErrorResponse
type BatchResponse struct {
	Results   map[string]any `json:"results"`
	Count     int            `json:"count"`
	Timestamp string         `json:"timestamp"`
}

// GoalsResponse is the body returned by POST /api/goals
type GoalsResponse struct {
	Goals    []domain.Goal `json:"goals"`
	NextGoal *domain.Goal  `json:"next_goal,omitempty"`
	Achieved int           `json:"achieved"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Service: ServiceName})
}

// yieldError describes a failed lookup the way the upstream API reported it.
func yieldError(symbol string, err error) ErrorResponse {
	resp := ErrorResponse{Symbol: symbol, Message: err.Error()}
	switch {
	case errors.Is(err, yield.ErrRateLimited):
		resp.Error = "Rate limit exceeded"
		resp.Message = "Please try again later"
	case errors.Is(err, yield.ErrInvalidAPIKey):
		resp.Error = "Invalid API key"
		resp.Message = "Please check your FMP API key"
	case errors.Is(err, yield.ErrMissingAPIKey):
		resp.Error = "API key not configured"
	default:
		resp.Error = "API request failed"
	}
	return resp
}

// handleDividendYield handles GET /api/dividend-yield?symbol=
func (s *Server) handleDividendYield(w http.ResponseWriter, r *http.Request) {
	symbol := yield.NormalizeSymbol(r.URL.Query().Get("symbol"))
	if symbol == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing required parameter: symbol", "")
		return
	}
	if s.Yields == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Dividend yield service unavailable", "")
		return
	}

	q, err := s.Yields.Lookup(r.Context(), symbol)
	if err != nil {
		s.Logger.Warn("Dividend yield request failed", "symbol", symbol, "error", err)
		writeJSON(w, http.StatusNotFound, yieldError(symbol, err))
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// handleBatchDividendYields handles POST /api/batch-dividend-yields
func (s *Server) handleBatchDividendYields(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["symbols"] == nil {
		writeJSONError(w, http.StatusBadRequest, "Missing required field: symbols", "")
		return
	}
	var symbols []string
	if err := json.Unmarshal(body["symbols"], &symbols); err != nil || len(symbols) == 0 {
		writeJSONError(w, http.StatusBadRequest, "symbols must be a non-empty array", "")
		return
	}
	if s.Yields == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Dividend yield service unavailable", "")
		return
	}

	results := s.Yields.LookupEach(r.Context(), symbols)
	resp := BatchResponse{
		Results:   make(map[string]any, len(results)),
		Count:     len(results),
		Timestamp: s.Now().UTC().Format("2006-01-02T15:04:05.000000Z"),
	}
	for _, res := range results {
		if res.Err != nil {
			resp.Results[res.Symbol] = yieldError(res.Symbol, res.Err)
			continue
		}
		resp.Results[res.Symbol] = res.Quote
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSearch handles GET /api/search?query=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing required parameter: query", "")
		return
	}
	if s.Searcher == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Symbol search unavailable", "")
		return
	}
	matches, err := s.Searcher.Search(r.Context(), query)
	if err != nil {
		s.Logger.Warn("Symbol search failed", "query", query, "error", err)
		writeJSONError(w, http.StatusBadGateway, "Search failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": matches, "count": len(matches)})
}

// handleChat handles POST /api/chat
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req advisor.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing required field: message", "")
		return
	}
	if s.Advisor == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Advisor unavailable", advisor.ErrNoProvider.Error())
		return
	}

	reply, err := s.Advisor.Chat(r.Context(), req.Message)
	switch {
	case errors.Is(err, advisor.ErrNoProvider):
		writeJSONError(w, http.StatusServiceUnavailable, "Advisor unavailable", err.Error())
		return
	case err != nil:
		s.Logger.Error("Chat request failed", "error", err)
		writeJSONError(w, http.StatusBadGateway, "Advisor request failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, advisor.ChatResponse{Reply: reply})
}

// handleGoals handles POST /api/goals
func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	var in domain.GoalInputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body", err.Error())
		return
	}
	goals := calculation.ComputeGoalsFor(in)
	writeJSON(w, http.StatusOK, GoalsResponse{
		Goals:    goals,
		NextGoal: calculation.NextGoal(goals),
		Achieved: calculation.AchievedCount(goals),
	})
}

// handleProjection handles POST /api/projection
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var in domain.FIInputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body", err.Error())
		return
	}
	if err := calculation.ValidateInputs(in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid projection inputs", err.Error())
		return
	}
	if in.CurrentCalendarYear == 0 {
		in.CurrentCalendarYear = s.Now().Year()
	}
	writeJSON(w, http.StatusOK, s.Engine.Project(in))
}

// handleReport handles POST /api/report[?format=]
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body", err.Error())
		return
	}
	if err := s.Parser.ValidatePlan(&plan); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid plan", err.Error())
		return
	}

	report, err := s.Engine.Evaluate(r.Context(), plan)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "Evaluation failed", err.Error())
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		writeJSON(w, http.StatusOK, report)
		return
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		writeJSONError(w, http.StatusBadRequest, "Unsupported format", format)
		return
	}
	data, err := f.Format(report)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Formatting failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType(f.Name()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentType(format string) string {
	switch output.Extension(format) {
	case "json":
		return "application/json"
	case "yaml":
		return "application/yaml"
	case "csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "md":
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
