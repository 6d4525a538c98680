package api

import (
	"encoding/json"
	"net/http"

	apperrors "vetclinic/internal/errors"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto its HTTP status and a JSON body with
// the taxonomy code, so clients can branch on `error` without parsing text.
func writeError(w http.ResponseWriter, err error) {
	he := apperrors.FromError(err)
	writeJSON(w, he.Status, errorResponse{Error: he.Code, Message: he.Message})
}
