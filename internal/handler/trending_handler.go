package handlers

import (
	"errors"
	"net/http"

	"readit/internal/logger"
	"readit/internal/service"
)

// Trending serves the trending snapshot: top hashtags, top posts and AI
// trend commentary.
func (h *Handlers) Trending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapshot, err := h.TrendingService.ComputeTrendingSnapshot(r.Context())
	if err != nil {
		logger.Error.Printf("trending snapshot failed: %v", err)
		if errors.Is(err, service.ErrScoreRecompute) {
			WriteError(w, "trending scores unavailable", http.StatusServiceUnavailable)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, snapshot, http.StatusOK)
}
