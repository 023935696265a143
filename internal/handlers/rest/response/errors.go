package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"pickup/internal/generated/dto"
	"pickup/internal/service/pickup"
	"pickup/internal/service/stats"
)

var (
	ErrMalformedRequest = errors.New("malformed request")
	ErrUnauthorized     = errors.New("actor is not resolved")
)

// StatusOf сопоставляет ошибку сервиса с HTTP-статусом и видом ошибки в ответе.
func StatusOf(err error) (int, dto.ErrorResponseError) {
	switch {
	case errors.Is(err, ErrMalformedRequest),
		errors.Is(err, pickup.ErrInvalidInput),
		errors.Is(err, stats.ErrInvalidPharmacyID):
		return http.StatusBadRequest, dto.InvalidInput
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, dto.Unauthorized
	case errors.Is(err, pickup.ErrForbidden):
		return http.StatusForbidden, dto.Forbidden
	case errors.Is(err, pickup.ErrNotFound):
		return http.StatusNotFound, dto.NotFound
	case errors.Is(err, pickup.ErrInvalidTransition):
		return http.StatusConflict, dto.InvalidTransition
	case errors.Is(err, pickup.ErrConflict):
		return http.StatusConflict, dto.Conflict
	case errors.Is(err, pickup.ErrStoreUnavailable),
		errors.Is(err, stats.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, dto.StoreUnavailable
	default:
		return http.StatusInternalServerError, dto.Internal
	}
}

// Error пишет тело {"error", "message"}. Текст 5xx не раскрывает внутренние причины.
func Error(w http.ResponseWriter, err error) error {
	status, kind := StatusOf(err)

	message := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		message = "store is temporarily unavailable, retry later"
	case http.StatusInternalServerError:
		message = "internal error"
	}

	return JSON(w, status, dto.ErrorResponse{
		Error:   kind,
		Message: message,
	})
}

func JSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
