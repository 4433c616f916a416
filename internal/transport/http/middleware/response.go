package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes a JSON error body. Middleware rejections never reach
// the handler layer, so they need their own encoder.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
