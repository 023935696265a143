package requests_get

import (
	"fmt"
	"net/http"

	"pickup/internal/entities"
	"pickup/internal/generated/dto"
	"pickup/internal/handlers/rest/response"
	"pickup/internal/pkg/middlewares/actor"
	"pickup/internal/service/pickup"
	"pickup/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "requests_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP отдаёт заявки самого вызывающего: role=customer для покупателя,
// role=pharmacy для аптеки. Без role берётся роль вызывающего.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor.FromContext(r.Context())
	if !ok {
		h.writeError(w, response.ErrUnauthorized)
		return
	}

	query := r.URL.Query()
	role, err := listRole(query.Get("role"), caller)
	if err != nil {
		h.writeError(w, err)
		return
	}
	status := query.Get("status")

	var res []entities.PickupRequest
	switch role {
	case dto.Customer:
		res, err = h.service.ListForCustomer(r.Context(), caller.ID, status)
	default:
		res, err = h.service.ListForPharmacy(r.Context(), caller.ID, status)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.PickupRequests(res)); err != nil {
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

func listRole(raw string, caller entities.Actor) (dto.GetRequestsParamsRole, error) {
	own := dto.Customer
	if caller.Role == entities.RolePharmacy {
		own = dto.Pharmacy
	}

	switch role := dto.GetRequestsParamsRole(raw); role {
	case "":
		return own, nil
	case dto.Customer, dto.Pharmacy:
		if role != own {
			return "", fmt.Errorf("%w: %s cannot list %s requests", pickup.ErrForbidden, caller.Role, role)
		}
		return role, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", response.ErrMalformedRequest, raw)
	}
}
