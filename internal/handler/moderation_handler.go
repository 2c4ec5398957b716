package handlers

import (
	"encoding/json"
	"net/http"

	"readit/internal/logger"
	"readit/internal/models"
)

type ModerationRequest struct {
	Content string `json:"content" validate:"required"`
	Title   string `json:"title"`
}

// Moderate classifies a title+body pair and returns the verdict. A missing
// content field is a validation error; an unavailable model is a fail-open
// pass, consistent with the create-post path.
func (h *Handlers) Moderate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ModerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "content is required", http.StatusBadRequest)
		return
	}

	verdict, err := h.ModerationGate.Moderate(r.Context(), req.Title, req.Content)
	if err != nil {
		logger.Error.Printf("moderation unavailable, failing open: %v", err)
		verdict = models.ModerationVerdict{Safe: true, Reason: "", Categories: []string{}}
	}

	WriteSuccess(w, verdict, http.StatusOK)
}
