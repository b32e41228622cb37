// Package api provides HTTP API handlers for the Phototree backend.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/anvesh/phototree/internal/photo"
	"github.com/anvesh/phototree/internal/store"
)

// MaxUploadBytes caps a single photo upload.
const MaxUploadBytes = 32 << 20 // 32 MiB

// PhotosHandler handles HTTP requests for the session photo collection.
type PhotosHandler struct {
	store    *store.Store
	importer *photo.Importer
}

// NewPhotosHandler creates a new PhotosHandler.
func NewPhotosHandler(s *store.Store, im *photo.Importer) *PhotosHandler {
	return &PhotosHandler{store: s, importer: im}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *PhotosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/photos, /api/photos/{id}, /api/photos/{id}/image
	path := strings.TrimPrefix(r.URL.Path, "/api/photos")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/photos
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.upload(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/image"); ok {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.image(w, r, id)
		return
	}

	// Item endpoint: /api/photos/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type listPhotosResponse struct {
	Photos []*photo.Photo `json:"photos"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/photos and returns the whole collection.
func (h *PhotosHandler) list(w http.ResponseWriter, r *http.Request) {
	photos, err := h.store.Photos().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list photos")
		return
	}

	if photos == nil {
		photos = []*photo.Photo{}
	}

	writeJSON(w, http.StatusOK, listPhotosResponse{Photos: photos})
}

// get handles GET /api/photos/{id} and returns a single photo.
func (h *PhotosHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Photos().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Photo not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get photo")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// upload handles POST /api/photos. It accepts a multipart form with a
// "photo" file field and returns the created photo with its assigned
// display positions.
func (h *PhotosHandler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)

	file, _, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing photo file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	p, err := h.importer.Import(data)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Unsupported or corrupt image")
		return
	}

	if err := h.store.Photos().Create(p); err != nil {
		h.importer.RemoveAsset(p.ID)
		writeError(w, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// delete handles DELETE /api/photos/{id} and removes a photo and its
// stored asset.
func (h *PhotosHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Photos().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Photo not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete photo")
		return
	}

	h.importer.RemoveAsset(id)

	w.WriteHeader(http.StatusNoContent)
}

// image handles GET /api/photos/{id}/image and serves the display asset.
func (h *PhotosHandler) image(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Photos().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Photo not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get photo")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	http.ServeFile(w, r, h.importer.AssetPath(id))
}
