package req

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/lorenzodc/catalyst-api/pkg/logger"
	"github.com/lorenzodc/catalyst-api/pkg/res"

	"github.com/go-playground/validator/v10"
)

// Decode decodes JSON from an io.ReadCloser into a value of type T.
func Decode[T any](body io.ReadCloser) (T, error) {
	var payload T
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

// IsValid validates a value of type T against its struct tags.
func IsValid[T any](payload T) error {
	validate := validator.New()
	return validate.Struct(payload)
}

// HandleBody decodes and validates a request body, writing the error reply itself.
func HandleBody[T any](w http.ResponseWriter, r *http.Request, log *logger.Logger) (*T, error) {
	body, err := Decode[T](r.Body)
	if err != nil {
		log.Warnw("Failed to decode request body", "error", err)
		res.JsonResponse(w, res.ErrorResponse{Error: "Invalid request format"}, http.StatusUnprocessableEntity)
		return nil, err
	}

	if err := IsValid(body); err != nil {
		log.Warnw("Request body validation failed", "error", err)
		res.JsonResponse(w, res.ErrorResponse{Error: "Invalid request data"}, http.StatusUnprocessableEntity)
		return nil, err
	}
	return &body, nil
}
