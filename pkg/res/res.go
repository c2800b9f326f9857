package res

import (
	"encoding/json"
	"net/http"

	"github.com/lorenzodc/catalyst-api/pkg/logger"
)

// ErrorResponse is the JSON envelope for error replies.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode int    `json:"error_code,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// JsonResponse writes data as JSON with the given status.
func JsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// JsonErrorResponse writes an error envelope and logs it.
func JsonErrorResponse(w http.ResponseWriter, errResponse ErrorResponse, status int, log *logger.Logger) {
	JsonResponse(w, errResponse, status)
	log.Errorw("Request failed", "error", errResponse.Error, "status", status)
}
