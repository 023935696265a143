package actor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"pickup/internal/entities"
	"pickup/internal/handlers/rest/response"
	"pickup/pkg/logger"
)

// Идентичность вызывающего разрешает внешняя система и передаёт заголовками.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

var (
	ErrMissingActor = errors.New("actor headers are missing")
	ErrInvalidActor = errors.New("actor headers are invalid")
)

type ctxKey struct{}

func WithActor(ctx context.Context, a entities.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func FromContext(ctx context.Context) (entities.Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(entities.Actor)
	return a, ok
}

// Middleware кладёт актора в контекст запроса или отвечает 401.
// Роль SYSTEM снаружи не принимается: от её имени действует только воркер.
func Middleware(log handlerLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, err := Parse(r.Header)
			if err != nil {
				log.With(
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				).Warn("unauthorized request")

				if err := response.Error(w, fmt.Errorf("%w: %w", response.ErrUnauthorized, err)); err != nil {
					log.With(
						logger.NewField("error", err),
					).Error("encode JSON response")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), a)))
		})
	}
}

func Parse(h http.Header) (entities.Actor, error) {
	rawID, rawRole := h.Get(HeaderActorID), h.Get(HeaderActorRole)
	if rawID == "" || rawRole == "" {
		return entities.Actor{}, ErrMissingActor
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return entities.Actor{}, fmt.Errorf("%w: id %q", ErrInvalidActor, rawID)
	}

	role, ok := entities.ParseActorRole(rawRole)
	if !ok || role == entities.RoleSystem {
		return entities.Actor{}, fmt.Errorf("%w: role %q", ErrInvalidActor, rawRole)
	}

	return entities.Actor{ID: id, Role: role}, nil
}
