package entities

import "time"

type PickupRequest struct {
	ID         string
	CustomerID int64
	PharmacyID int64
	Status     PickupStatus
	Version    int64

	LineItems []PickupLineItem

	CustomerMemo    *string
	PharmacyMemo    *string
	RejectionReason *string
	CancelReason    *string
	CanceledBy      *ActorRole

	TotalAmount         *int64
	EstimatedPickupDate *time.Time

	RequestedAt time.Time
	AcceptedAt  *time.Time
	PreparedAt  *time.Time
	ReadyAt     *time.Time
	CompletedAt *time.Time
	RejectedAt  *time.Time
	CanceledAt  *time.Time

	AutoCancelDeadline time.Time
	UpdatedAt          time.Time
}

// PickupLineItem - снимок данных каталога на момент создания заявки.
// Position начинается с 1 и задаёт порядок позиций.
type PickupLineItem struct {
	Position     int
	CategoryID   string
	CategoryName string
	ProductName  string
	Manufacturer string
	Quantity     int
	PetName      *string
	PetType      *string
	Note         *string
	UnitPrice    *int64
	TotalPrice   *int64
}

type PickupRequestCreate struct {
	CustomerID    int64
	PharmacyID    int64
	LineItems     []PickupLineItem
	CustomerMemo  *string
	EstimatedDays int
}

type PickupRequestFilter struct {
	CustomerID *int64
	PharmacyID *int64
	Status     *PickupStatus
}

// ItemPrice - цена, которую аптека проставляет позиции при подтверждении.
type ItemPrice struct {
	Position   int
	UnitPrice  *int64
	TotalPrice *int64
}

// TransitionPayload - данные, которые несёт переход. Какие поля обязательны,
// а какие допустимы, зависит от целевого статуса.
type TransitionPayload struct {
	PharmacyMemo        *string
	RejectionReason     *string
	CancelReason        *string
	CanceledBy          *ActorRole
	TotalAmount         *int64
	EstimatedPickupDate *time.Time
	ItemPrices          []ItemPrice
}

// Milestone возвращает отметку времени, которая ставится при входе в статус.
// Для статусов без отметки возвращает nil.
func (r *PickupRequest) Milestone(status PickupStatus) *time.Time {
	switch status {
	case StatusRequested:
		return &r.RequestedAt
	case StatusAccepted:
		return r.AcceptedAt
	case StatusPreparing:
		return r.PreparedAt
	case StatusReady:
		return r.ReadyAt
	case StatusCompleted:
		return r.CompletedAt
	case StatusRejected:
		return r.RejectedAt
	case StatusCanceled:
		return r.CanceledAt
	default:
		return nil
	}
}

// LatestMilestone - самая поздняя из проставленных отметок.
func (r *PickupRequest) LatestMilestone() time.Time {
	latest := r.RequestedAt
	for _, ts := range []*time.Time{r.AcceptedAt, r.PreparedAt, r.ReadyAt, r.CompletedAt, r.RejectedAt, r.CanceledAt} {
		if ts != nil && ts.After(latest) {
			latest = *ts
		}
	}
	return latest
}

// Clone делает глубокую копию, чтобы изменения перехода не трогали прочитанный снимок.
func (r *PickupRequest) Clone() *PickupRequest {
	if r == nil {
		return nil
	}
	c := *r
	c.LineItems = make([]PickupLineItem, len(r.LineItems))
	for i, item := range r.LineItems {
		item.PetName = clonePtr(item.PetName)
		item.PetType = clonePtr(item.PetType)
		item.Note = clonePtr(item.Note)
		item.UnitPrice = clonePtr(item.UnitPrice)
		item.TotalPrice = clonePtr(item.TotalPrice)
		c.LineItems[i] = item
	}
	c.CustomerMemo = clonePtr(r.CustomerMemo)
	c.PharmacyMemo = clonePtr(r.PharmacyMemo)
	c.RejectionReason = clonePtr(r.RejectionReason)
	c.CancelReason = clonePtr(r.CancelReason)
	c.CanceledBy = clonePtr(r.CanceledBy)
	c.TotalAmount = clonePtr(r.TotalAmount)
	c.EstimatedPickupDate = clonePtr(r.EstimatedPickupDate)
	c.AcceptedAt = clonePtr(r.AcceptedAt)
	c.PreparedAt = clonePtr(r.PreparedAt)
	c.ReadyAt = clonePtr(r.ReadyAt)
	c.CompletedAt = clonePtr(r.CompletedAt)
	c.RejectedAt = clonePtr(r.RejectedAt)
	c.CanceledAt = clonePtr(r.CanceledAt)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ExpiryCandidate - заявка, у которой истёк срок ответа аптеки.
// Пара (AutoCancelDeadline, ID) служит курсором при постраничном обходе.
type ExpiryCandidate struct {
	ID                 string
	AutoCancelDeadline time.Time
}
