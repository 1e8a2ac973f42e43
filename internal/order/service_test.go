package order

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/menu"
)

func newTestService() (*Manager, *Service) {
	m := NewManager()
	log := logger.NewWithLevel("order-service", slog.LevelError+4)
	return m, NewService(m, log)
}

func TestCheckoutEmptyOrder(t *testing.T) {
	m, s := newTestService()

	_, err := s.Checkout(CheckoutRequest{DineIn: false})
	if !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("Checkout() error = %v, want ErrEmptyOrder", err)
	}
	if len(m.History()) != 0 {
		t.Error("rejected checkout appended to history")
	}

	// The counter must not have been consumed by the rejected checkout.
	m.AddItem(testItem("Latte", "4.50"), 1)
	result, err := s.Checkout(CheckoutRequest{DineIn: false})
	if err != nil {
		t.Fatalf("Checkout() returned error: %v", err)
	}
	if result.OrderNumber != "B001" {
		t.Errorf("OrderNumber = %q, want B001", result.OrderNumber)
	}
}

func TestCheckoutDiscountMath(t *testing.T) {
	tests := []struct {
		name         string
		discount     Discount
		wantFinal    string
		wantDiscount string
	}{
		{name: "no discount", discount: DiscountNone, wantFinal: "50.00", wantDiscount: "0.00"},
		{name: "ten percent", discount: DiscountTenPercent, wantFinal: "45.00", wantDiscount: "5.00"},
		{name: "twenty percent", discount: DiscountTwentyPercent, wantFinal: "40.00", wantDiscount: "10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s := newTestService()
			m.AddItem(testItem("Steak", "25.00"), 2)

			result, err := s.Checkout(CheckoutRequest{DineIn: false, Discount: tt.discount})
			if err != nil {
				t.Fatalf("Checkout() returned error: %v", err)
			}
			if got := result.Subtotal.StringFixed(2); got != "50.00" {
				t.Errorf("Subtotal = %s, want 50.00", got)
			}
			if got := result.FinalTotal.StringFixed(2); got != tt.wantFinal {
				t.Errorf("FinalTotal = %s, want %s", got, tt.wantFinal)
			}
			if got := result.DiscountAmount.StringFixed(2); got != tt.wantDiscount {
				t.Errorf("DiscountAmount = %s, want %s", got, tt.wantDiscount)
			}
		})
	}
}

func TestCheckoutRoundsHalfUp(t *testing.T) {
	m, s := newTestService()

	mainCourse, err := menu.Lookup("Main Course")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	drinks, err := menu.Lookup("Drink")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	for _, item := range mainCourse.Items {
		if item.Name == "Steak" {
			m.AddItem(item, 2)
		}
	}
	for _, item := range drinks.Items {
		if item.Name == "Latte" {
			m.AddItem(item, 1)
		}
	}

	if got := m.CalculateTotal().StringFixed(2); got != "54.50" {
		t.Fatalf("subtotal = %s, want 54.50", got)
	}

	result, err := s.Checkout(CheckoutRequest{DineIn: false, Discount: DiscountTwentyPercent})
	if err != nil {
		t.Fatalf("Checkout() returned error: %v", err)
	}

	// 54.50 * 0.80 = 43.60, saved 10.90 rounded half-up to cents.
	if got := result.FinalTotal.StringFixed(2); got != "43.60" {
		t.Errorf("FinalTotal = %s, want 43.60", got)
	}
	if got := result.DiscountAmount.StringFixed(2); got != "10.90" {
		t.Errorf("DiscountAmount = %s, want 10.90", got)
	}
}

func TestCheckoutValidation(t *testing.T) {
	tests := []struct {
		name      string
		req       CheckoutRequest
		wantField string
	}{
		{
			name:      "dine-in without table",
			req:       CheckoutRequest{DineIn: true},
			wantField: "table",
		},
		{
			name:      "dine-in with unknown table",
			req:       CheckoutRequest{DineIn: true, Table: "Table 9"},
			wantField: "table",
		},
		{
			name:      "take-out with table",
			req:       CheckoutRequest{DineIn: false, Table: "Table 1"},
			wantField: "table",
		},
		{
			name:      "invalid discount tier",
			req:       CheckoutRequest{DineIn: false, Discount: Discount(99)},
			wantField: "discount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s := newTestService()
			m.AddItem(testItem("Steak", "25.00"), 1)

			_, err := s.Checkout(tt.req)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Checkout() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.wantField)
			}

			// A rejected checkout must leave all state untouched.
			if m.IsEmpty() {
				t.Error("rejected checkout cleared the current order")
			}
			if len(m.History()) != 0 {
				t.Error("rejected checkout appended to history")
			}
			if got := m.GenerateOrderNumber(tt.req.DineIn); !strings.HasSuffix(got, "001") {
				t.Errorf("rejected checkout consumed an order number, next = %q", got)
			}
		})
	}
}

func TestCheckoutCompletesOrder(t *testing.T) {
	m, s := newTestService()
	m.AddItem(testItem("Steak", "25.00"), 2)
	m.AddItem(testItem("Latte", "4.50"), 1)

	result, err := s.Checkout(CheckoutRequest{DineIn: true, Table: "Table 3", Discount: DiscountTenPercent})
	if err != nil {
		t.Fatalf("Checkout() returned error: %v", err)
	}

	if !m.IsEmpty() {
		t.Error("current order not cleared after checkout")
	}

	history := m.History()
	if len(history) != 1 {
		t.Fatalf("History() has %d records, want 1", len(history))
	}
	record := history[0]
	if record.OrderNumber != result.OrderNumber {
		t.Errorf("history OrderNumber = %q, want %q", record.OrderNumber, result.OrderNumber)
	}
	if record.Table != "Table 3" {
		t.Errorf("history Table = %q, want Table 3", record.Table)
	}
	if !record.FinalTotal.Equal(result.FinalTotal) {
		t.Errorf("history FinalTotal = %s, want %s", record.FinalTotal, result.FinalTotal)
	}
	if !strings.Contains(record.Text, record.OrderNumber) {
		t.Error("history text does not mention the order number")
	}

	// The receipt was rendered from the lines as they were before clearing.
	if !strings.Contains(result.Receipt, "Steak x2 - $50.00") {
		t.Errorf("receipt missing line, got:\n%s", result.Receipt)
	}
	if !strings.Contains(result.Receipt, "Order: "+result.OrderNumber+" | Table 3") {
		t.Errorf("receipt missing header, got:\n%s", result.Receipt)
	}
}

func TestCheckoutNumbersPerType(t *testing.T) {
	m, s := newTestService()

	checkout := func(dineIn bool, table string) string {
		t.Helper()
		m.AddItem(testItem("Latte", "4.50"), 1)
		result, err := s.Checkout(CheckoutRequest{DineIn: dineIn, Table: table})
		if err != nil {
			t.Fatalf("Checkout() returned error: %v", err)
		}
		return result.OrderNumber
	}

	if got := checkout(true, "Table 1"); got != "A001" {
		t.Errorf("first dine-in = %q, want A001", got)
	}
	if got := checkout(false, ""); got != "B001" {
		t.Errorf("first take-out = %q, want B001", got)
	}
	if got := checkout(true, "Table 2"); got != "A002" {
		t.Errorf("second dine-in = %q, want A002", got)
	}
}

func TestDiscountLabels(t *testing.T) {
	tests := []struct {
		discount Discount
		label    string
		rate     string
	}{
		{DiscountNone, "No Discount", "1.00"},
		{DiscountTenPercent, "10% Off", "0.90"},
		{DiscountTwentyPercent, "20% Off", "0.80"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := tt.discount.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if want := decimal.RequireFromString(tt.rate); !tt.discount.Rate().Equal(want) {
				t.Errorf("Rate() = %s, want %s", tt.discount.Rate(), want)
			}
		})
	}
}

func TestTablesReturnsCopy(t *testing.T) {
	first := Tables()
	if len(first) != 5 {
		t.Fatalf("Tables() has %d entries, want 5", len(first))
	}
	first[0] = "mutated"
	if Tables()[0] != "Table 1" {
		t.Error("mutating the returned slice changed the table list")
	}
}
