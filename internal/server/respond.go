package server

import (
	"encoding/json"
	"log"
	"net/http"
)

// apiError writes a JSON error body for non-page endpoints (downloads,
// chart images).
func apiError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		log.Printf("write error response: %v", err)
	}
}
