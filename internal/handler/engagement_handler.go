package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"readit/internal/logger"
)

type VoteRequest struct {
	VoteType string `json:"voteType" validate:"required,oneof=up down"`
}

// VotePost toggles the requesting user's vote on a post. Same-direction
// votes cancel, opposite ones flip.
func (h *Handlers) VotePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	voter := userID(r)
	if voter == "" {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "voteType must be 'up' or 'down'", http.StatusBadRequest)
		return
	}

	postID := mux.Vars(r)["id"]
	if err := h.EngagementRepo.ToggleVote(r.Context(), voter, postID, req.VoteType); err != nil {
		logger.Error.Printf("vote failed: %v", err)
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handlers) SavePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	saver := userID(r)
	if saver == "" {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	saved, err := h.EngagementRepo.ToggleSave(r.Context(), saver, mux.Vars(r)["id"])
	if err != nil {
		logger.Error.Printf("save failed: %v", err)
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]bool{"saved": saved}, http.StatusOK)
}

func (h *Handlers) JoinCommunity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	member := userID(r)
	if member == "" {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	joined, err := h.EngagementRepo.ToggleMembership(r.Context(), member, mux.Vars(r)["id"])
	if err != nil {
		logger.Error.Printf("join failed: %v", err)
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]bool{"joined": joined}, http.StatusOK)
}

// FollowUser toggles follow state on POST and reports it on GET.
func (h *Handlers) FollowUser(w http.ResponseWriter, r *http.Request) {
	follower := userID(r)
	if follower == "" {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	followingID := mux.Vars(r)["id"]

	switch r.Method {
	case http.MethodPost:
		following, err := h.EngagementRepo.ToggleFollow(r.Context(), follower, followingID)
		if err != nil {
			logger.Error.Printf("follow failed: %v", err)
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		WriteSuccess(w, map[string]bool{"isFollowing": following}, http.StatusOK)
	case http.MethodGet:
		following, err := h.EngagementRepo.IsFollowing(r.Context(), follower, followingID)
		if err != nil {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		WriteSuccess(w, map[string]bool{"isFollowing": following}, http.StatusOK)
	default:
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
