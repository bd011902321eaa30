package httpapi

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON and WriteError are exported for the session handlers, which
// share the same error envelope.
func WriteJSON(w http.ResponseWriter, code int, v any) { writeJSON(w, code, v) }

func WriteError(w http.ResponseWriter, code int, errCode, msg string) {
	writeError(w, code, errCode, msg)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, msg string) {
	writeJSON(w, code, ErrorResponse{Code: errCode, Message: msg})
}
