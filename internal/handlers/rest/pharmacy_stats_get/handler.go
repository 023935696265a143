package pharmacy_stats_get

import (
	"fmt"
	"net/http"
	"strconv"

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
	handlerLog := log.With(logger.NewField("handler", "pharmacy_stats_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := actor.FromContext(r.Context()); !ok {
		h.writeError(w, response.ErrUnauthorized)
		return
	}

	rawID := mux.Vars(r)["id"]
	pharmacyID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: pharmacy id %q", response.ErrMalformedRequest, rawID))
		return
	}

	res, err := h.service.PharmacyStats(r.Context(), pharmacyID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.PharmacyStats(res)); err != nil {
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
