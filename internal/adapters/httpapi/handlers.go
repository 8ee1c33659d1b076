package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/baitline/scam-gateway/internal/core"
	"github.com/baitline/scam-gateway/internal/metrics"
	"go.uber.org/zap"
)

// classifyRequest is the JSON request body for POST /api/classify.
type classifyRequest struct {
	Text string `json:"text"`
}

// classifyResponse is the JSON response for POST /api/classify.
type classifyResponse struct {
	Label         string   `json:"label"`
	Tags          []string `json:"tags"`
	Justification string   `json:"justification"`
}

// generateReplyRequest is the JSON request body for POST /api/generate-reply.
type generateReplyRequest struct {
	Conversation []core.Message `json:"conversation"`
}

// generateReplyResponse is the JSON response for POST /api/generate-reply.
type generateReplyResponse struct {
	Reply              string `json:"reply"`
	ConversationLength int    `json:"conversation_length"`
}

// healthResponse is the JSON response for GET /api/health.
type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// errorResponse is the uniform error envelope for every failure.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		metrics.IncrementRequestOutcome("classify", "bad_request")
		return
	}

	result, err := s.service.Classify(r.Context(), req.Text)
	if err != nil {
		s.writeServiceError(w, err, "failed to process classification request")
		metrics.IncrementRequestOutcome("classify", outcomeLabel(err))
		return
	}

	metrics.IncrementRequestOutcome("classify", "success")
	s.writeJSON(w, http.StatusOK, classifyResponse{
		Label:         result.Label,
		Tags:          result.Tags,
		Justification: result.Justification,
	})
}

func (s *Server) handleGenerateReply(w http.ResponseWriter, r *http.Request) {
	var req generateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		metrics.IncrementRequestOutcome("generate_reply", "bad_request")
		return
	}

	result, err := s.service.GenerateReply(r.Context(), &core.Conversation{Messages: req.Conversation})
	if err != nil {
		s.writeServiceError(w, err, "failed to process reply generation request")
		metrics.IncrementRequestOutcome("generate_reply", outcomeLabel(err))
		return
	}

	metrics.IncrementRequestOutcome("generate_reply", "success")
	s.writeJSON(w, http.StatusOK, generateReplyResponse{
		Reply:              result.Reply,
		ConversationLength: result.ConversationLength,
	})
}

// handleHealth requires neither authentication nor rate limiting.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// writeServiceError maps a service error onto its status class. Validation
// messages are client-safe and forwarded as-is; every server-side failure
// collapses to the generic message so backend detail never leaks, with the
// specific cause retained in logs by the service layer.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, serverMessage string) {
	switch {
	case errors.Is(err, core.ErrValidation):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrUnauthenticated), errors.Is(err, core.ErrUnauthorized):
		s.writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, core.ErrRateLimited):
		s.writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	default:
		s.writeError(w, http.StatusInternalServerError, serverMessage)
	}
}

// outcomeLabel names an error class for the outcome counter.
func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, core.ErrValidation):
		return "validation_error"
	case errors.Is(err, core.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, core.ErrBackendTimeout):
		return "backend_timeout"
	case errors.Is(err, core.ErrBackendUnavailable):
		return "backend_unavailable"
	case errors.Is(err, core.ErrBackendMalformed):
		return "malformed_response"
	case errors.Is(err, core.ErrEmptyGeneration):
		return "empty_generation"
	default:
		return "internal_error"
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
