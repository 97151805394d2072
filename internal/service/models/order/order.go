package order

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corray333/finance-dashboard/internal/service/models/orderitem"
	"github.com/corray333/finance-dashboard/internal/service/models/waiter"
)

// Order represents a customer's table order as served by the upstream
// finance API. Field names mirror the upstream payload, mixed casing
// included. OrderStatus stays a raw string because the upstream status
// set is open ended; Status below covers only the values the dashboard
// is allowed to write back.
type Order struct {
	ID                 string                `json:"id"          validate:"required"`
	WaiterID           int64                 `json:"WaiterId"`
	SpecialDescription *string               `json:"SpecialDescription"`
	OrderStatus        string                `json:"OrderStatus" validate:"required"`
	TableNumber        string                `json:"TableNumber"`
	Seen               string                `json:"Seen"`
	CreatedAt          time.Time             `json:"createdAt"`
	Waiter             *waiter.Waiter        `json:"Waiter"      validate:"required"`
	OrderItems         []orderitem.OrderItem `json:"OrderItems"  validate:"dive"`
}

// TotalAmount sums price times quantity over all line items.
// An order without items contributes zero.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range o.OrderItems {
		total = total.Add(o.OrderItems[i].LineAmount())
	}

	return total
}

// ItemsCount sums the quantities over all line items.
func (o *Order) ItemsCount() int {
	count := 0
	for i := range o.OrderItems {
		count += o.OrderItems[i].Quantity
	}

	return count
}

// Status is an order status value the dashboard may write back upstream.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusPrepared Status = "prepared"
	StatusRemoved  Status = "removed"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusPending.String():
		return StatusPending, nil
	case StatusApproved.String():
		return StatusApproved, nil
	case StatusPrepared.String():
		return StatusPrepared, nil
	case StatusRemoved.String():
		return StatusRemoved, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Seen is a string-typed flag upstream, not a boolean. Only the literal
// values below are valid.
const (
	SeenTrue  = "true"
	SeenFalse = "false"
)

// Field names a single order field the dashboard may PATCH upstream.
type Field string

const (
	FieldOrderStatus Field = "OrderStatus"
	FieldSeen        Field = "Seen"
)

var ErrInvalidField = errors.New("field is not updatable")

func (f Field) String() string {
	return string(f)
}

func ParseField(s string) (Field, error) {
	switch s {
	case FieldOrderStatus.String():
		return FieldOrderStatus, nil
	case FieldSeen.String():
		return FieldSeen, nil
	default:
		return "", ErrInvalidField
	}
}

// ValidateFieldValue checks newValue against the domain of field.
func ValidateFieldValue(field Field, newValue string) error {
	switch field {
	case FieldOrderStatus:
		_, err := ParseStatus(newValue)

		return err
	case FieldSeen:
		if newValue != SeenTrue && newValue != SeenFalse {
			return errors.New("seen flag must be the literal \"true\" or \"false\"")
		}

		return nil
	default:
		return ErrInvalidField
	}
}
