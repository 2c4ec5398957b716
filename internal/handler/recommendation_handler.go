package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"readit/internal/logger"
	"readit/internal/models"
	"readit/internal/service"
)

type RecommendationRequest struct {
	UserID  string `json:"userId"`
	Context string `json:"context" validate:"omitempty,oneof=home trending personalized"`
	Limit   int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

type RecommendationResponse struct {
	Posts []models.Post `json:"posts"`
}

// Recommendations returns an ordered, per-user annotated post list for the
// requested feed context. The request body is optional; an empty one means
// the anonymous home feed.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := RecommendationRequest{
		Context: service.ContextHome,
		Limit:   service.DefaultLimit,
	}
	// Chunked requests carry no Content-Length, so always decode and treat
	// an immediate EOF as the empty body.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Context == "" {
		req.Context = service.ContextHome
	}
	if req.Limit == 0 {
		req.Limit = service.DefaultLimit
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The token identity wins over whatever the body claims.
	requester := userID(r)
	if requester == "" {
		requester = req.UserID
	}

	posts, err := h.RecommendationService.Recommend(r.Context(), requester, req.Context, req.Limit)
	if err != nil {
		logger.Error.Printf("recommendation failed: %v", err)
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	WriteSuccess(w, RecommendationResponse{Posts: posts}, http.StatusOK)
}
