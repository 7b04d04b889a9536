package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
)

// IntentResolver defines the interface for query understanding
type IntentResolver interface {
	ParseQuery(ctx context.Context, query string) *entities.ParsedIntent
	Chat(ctx context.Context, message string) string
}

// AIHandler handles natural-language parse and chat requests
type AIHandler struct {
	service IntentResolver
}

// NewAIHandler creates a new AI handler
func NewAIHandler(service IntentResolver) *AIHandler {
	return &AIHandler{
		service: service,
	}
}

type parseRequest struct {
	Query string `json:"query"`
}

// ParseQuery handles POST /api/ai/parse
func (h *AIHandler) ParseQuery(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		respondWithError(w, http.StatusBadRequest, "query is required")
		return
	}

	parsed := h.service.ParseQuery(r.Context(), req.Query)
	respondWithJSON(w, http.StatusOK, parsed)
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/ai/chat
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondWithError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply := h.service.Chat(r.Context(), req.Message)
	respondWithJSON(w, http.StatusOK, map[string]string{
		"reply": reply,
	})
}
