package autocancel_deadline

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnsupportedEstimate = errors.New("estimated days must be 3 or 5")

// DeadlineFactory считает, до какого момента аптека должна ответить на заявку.
type DeadlineFactory struct{}

func New() *DeadlineFactory {
	return &DeadlineFactory{}
}

func (d *DeadlineFactory) CalculateDeadline(estimatedDays int, requestedAt time.Time) (time.Time, error) {
	switch estimatedDays {
	case 3, 5:
		return requestedAt.Add(time.Duration(estimatedDays) * 24 * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("%w: got %d", ErrUnsupportedEstimate, estimatedDays)
	}
}
