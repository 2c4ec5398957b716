package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"readit/internal/logger"
)

// UploadMedia accepts a multipart file and returns the stored blob's URL.
func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	owner := userID(r)
	if owner == "" {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "File too large or malformed form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadMedia(r.Context(), owner, header.Filename, file, header.Size)
	if err != nil {
		logger.Error.Printf("media upload failed: %v", err)
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]string{"url": url}, http.StatusCreated)
}

// DeleteMedia removes a previously uploaded blob. Object names are prefixed
// with the uploader's id, so callers can only delete their own uploads.
func (h *Handlers) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	owner := userID(r)
	if owner == "" {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	object := mux.Vars(r)["object"]
	if !strings.HasPrefix(object, owner+"/") {
		WriteError(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.Storage.DeleteMedia(r.Context(), object); err != nil {
		logger.Error.Printf("media delete failed: %v", err)
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, http.StatusOK)
}
