package request_history_get

import (
	"net/http"

	"github.com/gorilla/mux"
	"pickup/internal/handlers/rest/response"
	"pickup/internal/pkg/middlewares/actor"
	"pickup/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "request_history_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor.FromContext(r.Context())
	if !ok {
		h.writeError(w, response.ErrUnauthorized)
		return
	}

	res, err := h.service.History(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.LifecycleEvents(res)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if status, _ := response.StatusOf(err); status >= http.StatusInternalServerError {
		h.log.With(
			logger.NewField("error", err),
		).Error("request failed")
	}

	if err := response.Error(w, err); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
