package order

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/logger"
)

var (
	// ErrEmptyOrder is returned when checkout is attempted with no lines
	// in the current order.
	ErrEmptyOrder = errors.New("current order is empty")

	// ErrNoSelection is reported when an add-to-order is attempted with
	// no item selected.
	ErrNoSelection = errors.New("no item selected")
)

// ValidationError describes a rejected checkout field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Discount is one of the fixed discount tiers offered at checkout.
type Discount int

const (
	DiscountNone Discount = iota
	DiscountTenPercent
	DiscountTwentyPercent
)

var discountRates = map[Discount]decimal.Decimal{
	DiscountNone:          decimal.RequireFromString("1.00"),
	DiscountTenPercent:    decimal.RequireFromString("0.90"),
	DiscountTwentyPercent: decimal.RequireFromString("0.80"),
}

// Label returns the display name printed on receipts.
func (d Discount) Label() string {
	switch d {
	case DiscountTenPercent:
		return "10% Off"
	case DiscountTwentyPercent:
		return "20% Off"
	default:
		return "No Discount"
	}
}

// Rate returns the multiplier applied to the subtotal.
func (d Discount) Rate() decimal.Decimal {
	return discountRates[d]
}

var tables = []string{"Table 1", "Table 2", "Table 3", "Table 4", "Table 5"}

// Tables returns the fixed list of dine-in tables.
func Tables() []string {
	out := make([]string, len(tables))
	copy(out, tables)
	return out
}

// CheckoutRequest carries the caller's finalization choices.
type CheckoutRequest struct {
	DineIn   bool
	Table    string // required for dine-in, must be empty for take-out
	Discount Discount
}

// CheckoutResult is the outcome of a successful checkout.
type CheckoutResult struct {
	OrderNumber    string
	Receipt        string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalTotal     decimal.Decimal
}

// Service finalizes orders held by a Manager.
type Service struct {
	manager *Manager
	logger  *logger.Logger
}

// NewService creates an order service around the given manager.
func NewService(manager *Manager, log *logger.Logger) *Service {
	return &Service{
		manager: manager,
		logger:  log,
	}
}

// Checkout finalizes the current order: it validates the request, applies
// the discount to the exact subtotal (final total rounded half-up to
// cents), allocates the next order number for the order type, renders the
// receipt from the still-current lines, then completes the order, which
// appends it to history and clears the accumulator.
//
// Validation runs before the order number is allocated, so a rejected
// checkout never consumes a number and never mutates history.
func (s *Service) Checkout(req CheckoutRequest) (*CheckoutResult, error) {
	requestID := logger.GenerateRequestID()

	if s.manager.IsEmpty() {
		s.logger.Debug("checkout_rejected", "Checkout attempted on empty order", requestID, nil)
		return nil, ErrEmptyOrder
	}

	if err := validateCheckoutRequest(req); err != nil {
		s.logger.Error("validation_failed", "Checkout request validation failed", requestID, err, map[string]interface{}{
			"dine_in": req.DineIn,
			"table":   req.Table,
		})
		return nil, err
	}

	subtotal := s.manager.CalculateTotal()
	finalTotal := subtotal.Mul(req.Discount.Rate()).Round(2)
	discountAmount := subtotal.Sub(finalTotal)

	orderNumber := s.manager.GenerateOrderNumber(req.DineIn)

	// The receipt must be rendered before CompleteOrder clears the lines.
	receipt := Render(orderNumber, req.Table, s.manager.CurrentOrder(), subtotal, req.Discount.Label(), discountAmount, finalTotal)

	s.manager.CompleteOrder(orderNumber, req.Table, req.Discount.Label(), discountAmount, finalTotal)

	s.logger.Info("order_completed", "Order finalized", requestID, map[string]interface{}{
		"order_number":    orderNumber,
		"dine_in":         req.DineIn,
		"table":           req.Table,
		"discount":        req.Discount.Label(),
		"subtotal":        subtotal.StringFixed(2),
		"discount_amount": discountAmount.StringFixed(2),
		"final_total":     finalTotal.StringFixed(2),
	})

	return &CheckoutResult{
		OrderNumber:    orderNumber,
		Receipt:        receipt,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		FinalTotal:     finalTotal,
	}, nil
}

func validateCheckoutRequest(req CheckoutRequest) error {
	if err := validateTable(req.DineIn, req.Table); err != nil {
		return err
	}
	return validateDiscount(req.Discount)
}

func validateTable(dineIn bool, table string) error {
	if !dineIn {
		if table != "" {
			return ValidationError{
				Field:   "table",
				Message: "table must not be present for take-out orders",
			}
		}
		return nil
	}

	if table == "" {
		return ValidationError{
			Field:   "table",
			Message: "table is required for dine-in orders",
		}
	}
	for _, t := range tables {
		if t == table {
			return nil
		}
	}
	return ValidationError{
		Field:   "table",
		Message: fmt.Sprintf("unknown table %q", table),
	}
}

func validateDiscount(d Discount) error {
	if _, ok := discountRates[d]; !ok {
		return ValidationError{
			Field:   "discount",
			Message: "invalid discount tier",
		}
	}
	return nil
}
