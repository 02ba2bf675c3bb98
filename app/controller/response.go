package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"menu-price-map/service"
)

// writeJSON sets the content type and encodes v
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

// writeServiceError maps service errors to HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrStoreNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUnknownBrand),
		errors.Is(err, service.ErrUnknownItem),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidRange):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrStaleDataset):
		status = http.StatusConflict
	case errors.Is(err, os.ErrNotExist):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Printf("❌ %v", err)
	}
	http.Error(w, err.Error(), status)
}

// sessionPath splits /sessions/{id}/rest... into the id and the remaining segments
func sessionPath(path string) (string, []string) {
	path = strings.Trim(strings.TrimPrefix(path, "/sessions/"), "/")
	parts := strings.Split(path, "/")
	return parts[0], parts[1:]
}
