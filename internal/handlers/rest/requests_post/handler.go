package requests_post

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pickup/internal/entities"
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
	handlerLog := log.With(logger.NewField("handler", "requests_post"))

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

	var body dto.PickupRequestCreate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, fmt.Errorf("%w: %w", response.ErrMalformedRequest, err))
		return
	}

	created, err := h.service.Create(r.Context(), caller, toCreateEntity(body, caller))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.With(
		logger.NewField("request_id", created.ID),
		logger.NewField("status", created.Status),
		logger.NewField("version", created.Version),
		logger.NewField("actor_role", caller.Role),
		logger.NewField("actor_id", caller.ID),
	).Info("pickup request created")

	if err := response.JSON(w, http.StatusCreated, response.PickupRequest(created)); err != nil {
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

// toCreateEntity: без customerId заявка создаётся от имени вызывающего.
func toCreateEntity(body dto.PickupRequestCreate, caller entities.Actor) entities.PickupRequestCreate {
	customerID := caller.ID
	if body.CustomerId != nil {
		customerID = *body.CustomerId
	}

	in := entities.PickupRequestCreate{
		CustomerID:    customerID,
		PharmacyID:    body.PharmacyId,
		LineItems:     make([]entities.PickupLineItem, len(body.LineItems)),
		CustomerMemo:  body.CustomerMemo,
		EstimatedDays: body.EstimatedDays,
	}

	for i, item := range body.LineItems {
		var manufacturer string
		if item.Manufacturer != nil {
			manufacturer = *item.Manufacturer
		}
		in.LineItems[i] = entities.PickupLineItem{
			CategoryID:   item.CategoryId,
			CategoryName: item.CategoryName,
			ProductName:  item.ProductName,
			Manufacturer: manufacturer,
			Quantity:     item.Quantity,
			PetName:      item.PetName,
			PetType:      item.PetType,
			Note:         item.Note,
		}
	}
	return in
}
