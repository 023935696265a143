package ping_get

import (
	"net/http"

	"pickup/internal/generated/dto"
	"pickup/internal/handlers/rest/response"
	"pickup/pkg/logger"
)

const pong = "pong"

// Handler отвечает без обращения к хранилищу: жив ли сам процесс.
type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log: log.With(logger.NewField("handler", "ping_get")),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	message := pong
	w.Header().Set("Cache-Control", "no-store")

	if err := response.JSON(w, http.StatusOK, dto.PingResponse{Message: &message}); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
