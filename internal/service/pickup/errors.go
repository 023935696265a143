package pickup

import (
	"context"
	"errors"
	"fmt"

	"pickup/pkg/tx"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("pickup request not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("pickup request was modified concurrently")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// Результаты перехода для метрик.
const (
	ResultOK                = "ok"
	ResultInvalidInput      = "invalid_input"
	ResultNotFound          = "not_found"
	ResultInvalidTransition = "invalid_transition"
	ResultForbidden         = "forbidden"
	ResultConflict          = "conflict"
	ResultStoreUnavailable  = "store_unavailable"
)

func isDomainError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrStoreUnavailable)
}

// storeError приводит ошибку хранилища или транзакции к таксономии сервиса.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, tx.ErrSerialization):
		return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
	case isDomainError(err), errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, ErrInvalidInput):
		return ResultInvalidInput
	case errors.Is(err, ErrNotFound):
		return ResultNotFound
	case errors.Is(err, ErrInvalidTransition):
		return ResultInvalidTransition
	case errors.Is(err, ErrForbidden):
		return ResultForbidden
	case errors.Is(err, ErrConflict):
		return ResultConflict
	default:
		return ResultStoreUnavailable
	}
}
