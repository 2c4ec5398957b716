package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"readit/internal/logger"
	"readit/internal/repository"
	"readit/internal/service"
)

type CreatePostRequest struct {
	CommunityID *string  `json:"communityId"`
	Title       string   `json:"title" validate:"required,max=300"`
	Content     string   `json:"content"`
	PostType    string   `json:"postType" validate:"omitempty,oneof=text image video link"`
	MediaURLs   []string `json:"mediaUrls"`
	LinkURL     *string  `json:"linkUrl"`
}

type ModerationRejection struct {
	Error      string   `json:"error"`
	Reason     string   `json:"reason"`
	Categories []string `json:"categories"`
}

// CreatePost persists a new post after it clears the moderation gate. An
// unsafe verdict rejects the request with the model's reason verbatim.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authorID := userID(r)
	if authorID == "" {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), service.CreatePostRequest{
		AuthorID:    authorID,
		CommunityID: req.CommunityID,
		Title:       req.Title,
		Content:     req.Content,
		PostType:    req.PostType,
		MediaURLs:   req.MediaURLs,
		LinkURL:     req.LinkURL,
	})
	if err != nil {
		var rejected *service.ContentRejectedError
		if errors.As(err, &rejected) {
			WriteSuccess(w, ModerationRejection{
				Error:      "content rejected",
				Reason:     rejected.Verdict.Reason,
				Categories: rejected.Verdict.Categories,
			}, http.StatusUnprocessableEntity)
			return
		}
		logger.Error.Printf("create post failed: %v", err)
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

// GetPost returns a single post and records the view.
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID := mux.Vars(r)["id"]

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			WriteError(w, "Post not found", http.StatusNotFound)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var viewer *string
	if id := userID(r); id != "" {
		viewer = &id
	}
	if err := h.EngagementRepo.TrackView(r.Context(), postID, viewer); err != nil {
		logger.Warn.Printf("failed to track view for %s: %v", postID, err)
	}

	WriteSuccess(w, post, http.StatusOK)
}

// GetPosts serves the home feed; it is the GET counterpart of the
// recommendations endpoint with context=home.
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	posts, err := h.RecommendationService.Recommend(r.Context(), userID(r), service.ContextHome, service.DefaultLimit)
	if err != nil {
		logger.Error.Printf("get posts failed: %v", err)
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, RecommendationResponse{Posts: posts}, http.StatusOK)
}
