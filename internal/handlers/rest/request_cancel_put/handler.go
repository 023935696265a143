package request_cancel_put

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"pickup/internal/generated/dto"
	"pickup/internal/handlers/rest/response"
	"pickup/internal/pkg/middlewares/actor"
	"pickup/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "request_cancel_put"))

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

	var body dto.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, fmt.Errorf("%w: %w", response.ErrMalformedRequest, err))
		return
	}

	res, err := h.service.Cancel(r.Context(), mux.Vars(r)["id"], caller, body.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.With(
		logger.NewField("request_id", res.ID),
		logger.NewField("status", res.Status),
		logger.NewField("version", res.Version),
		logger.NewField("actor_role", caller.Role),
		logger.NewField("actor_id", caller.ID),
	).Info("pickup request transitioned")

	if err := response.JSON(w, http.StatusOK, response.PickupRequest(res)); err != nil {
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
