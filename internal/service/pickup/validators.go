package pickup

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"pickup/internal/entities"
)

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func isValidPrice(p *int64) bool {
	return p == nil || *p >= 0
}

func isValidRequestID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func validateActor(actor entities.Actor) error {
	if _, ok := entities.ParseActorRole(actor.Role.String()); !ok {
		return fmt.Errorf("%w: unknown actor role %q", ErrInvalidInput, actor.Role)
	}
	if actor.Role != entities.RoleSystem && actor.ID <= 0 {
		return fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}
	return nil
}

// checkOwnership: клиент и аптека работают только со своими заявками, SYSTEM - со всеми.
func checkOwnership(request *entities.PickupRequest, actor entities.Actor) error {
	switch actor.Role {
	case entities.RoleSystem:
		return nil
	case entities.RoleCustomer:
		if request.CustomerID == actor.ID {
			return nil
		}
	case entities.RolePharmacy:
		if request.PharmacyID == actor.ID {
			return nil
		}
	}
	return fmt.Errorf("%w: request %s does not belong to %s %d", ErrForbidden, request.ID, actor.Role, actor.ID)
}

func validateCreate(in entities.PickupRequestCreate) error {
	if in.CustomerID <= 0 {
		return fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	if in.PharmacyID <= 0 {
		return fmt.Errorf("%w: pharmacy id is required", ErrInvalidInput)
	}
	if len(in.LineItems) == 0 {
		return fmt.Errorf("%w: at least one line item is required", ErrInvalidInput)
	}

	for i, item := range in.LineItems {
		if strings.TrimSpace(item.ProductName) == "" {
			return fmt.Errorf("%w: line item %d: product name is required", ErrInvalidInput, i+1)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: line item %d: quantity must be at least 1", ErrInvalidInput, i+1)
		}
		if item.UnitPrice != nil || item.TotalPrice != nil {
			return fmt.Errorf("%w: line item %d: prices are set by the pharmacy on acceptance", ErrInvalidInput, i+1)
		}
	}

	return nil
}

func parseStatusFilter(status string) (*entities.PickupStatus, error) {
	if status == "" {
		return nil, nil
	}
	parsed, ok := entities.ParsePickupStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return &parsed, nil
}
