package pickup

import "time"

type PickupRequestDB struct {
	ID                  string
	CustomerID          int64
	PharmacyID          int64
	Status              string
	Version             int64
	CustomerMemo        *string
	PharmacyMemo        *string
	RejectionReason     *string
	CancelReason        *string
	CanceledBy          *string
	TotalAmount         *int64
	EstimatedPickupDate *time.Time
	RequestedAt         time.Time
	AcceptedAt          *time.Time
	PreparedAt          *time.Time
	ReadyAt             *time.Time
	CompletedAt         *time.Time
	RejectedAt          *time.Time
	CanceledAt          *time.Time
	AutoCancelDeadline  time.Time
	UpdatedAt           time.Time
}

type LineItemDB struct {
	RequestID    string
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

// порядок колонок совпадает с scanRequest
var requestColumns = []string{
	"id",
	"customer_id",
	"pharmacy_id",
	"status",
	"version",
	"customer_memo",
	"pharmacy_memo",
	"rejection_reason",
	"cancel_reason",
	"canceled_by",
	"total_amount",
	"estimated_pickup_date",
	"requested_at",
	"accepted_at",
	"prepared_at",
	"ready_at",
	"completed_at",
	"rejected_at",
	"canceled_at",
	"auto_cancel_deadline",
	"updated_at",
}

var lineItemColumns = []string{
	"request_id",
	"position",
	"category_id",
	"category_name",
	"product_name",
	"manufacturer",
	"quantity",
	"pet_name",
	"pet_type",
	"note",
	"unit_price",
	"total_price",
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*PickupRequestDB, error) {
	var m PickupRequestDB
	err := row.Scan(
		&m.ID,
		&m.CustomerID,
		&m.PharmacyID,
		&m.Status,
		&m.Version,
		&m.CustomerMemo,
		&m.PharmacyMemo,
		&m.RejectionReason,
		&m.CancelReason,
		&m.CanceledBy,
		&m.TotalAmount,
		&m.EstimatedPickupDate,
		&m.RequestedAt,
		&m.AcceptedAt,
		&m.PreparedAt,
		&m.ReadyAt,
		&m.CompletedAt,
		&m.RejectedAt,
		&m.CanceledAt,
		&m.AutoCancelDeadline,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanLineItem(row scanner) (LineItemDB, error) {
	var m LineItemDB
	err := row.Scan(
		&m.RequestID,
		&m.Position,
		&m.CategoryID,
		&m.CategoryName,
		&m.ProductName,
		&m.Manufacturer,
		&m.Quantity,
		&m.PetName,
		&m.PetType,
		&m.Note,
		&m.UnitPrice,
		&m.TotalPrice,
	)
	return m, err
}
