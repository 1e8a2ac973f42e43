package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Render produces the customer-facing receipt for a finalized order. It is
// a pure function of its inputs; all amounts print with exactly two
// fraction digits, rounded half-up.
func Render(orderNumber, table string, lines []Line, subtotal decimal.Decimal, discountLabel string, discountAmount, finalTotal decimal.Decimal) string {
	var sb strings.Builder
	sb.WriteString("=== ORDER RECEIPT ===\n")
	sb.WriteString("Order: ")
	sb.WriteString(orderNumber)
	if table != "" {
		sb.WriteString(" | ")
		sb.WriteString(table)
	}
	sb.WriteString("\n\n")
	for _, line := range lines {
		sb.WriteString(line.String())
		sb.WriteString("\n")
	}
	sb.WriteString("\n─────────────────────\n")
	sb.WriteString("Subtotal:     $")
	sb.WriteString(subtotal.StringFixed(2))
	sb.WriteString("\n")
	sb.WriteString(discountLabel)
	sb.WriteString("   -$")
	sb.WriteString(discountAmount.StringFixed(2))
	sb.WriteString("\n")
	sb.WriteString("TOTAL:        $")
	sb.WriteString(finalTotal.StringFixed(2))
	sb.WriteString("\n")
	sb.WriteString("Thank you!")
	return sb.String()
}

// formatRecord renders the history-log text for a completed order.
func formatRecord(r Record) string {
	var sb strings.Builder
	sb.WriteString("Order Number: ")
	sb.WriteString(r.OrderNumber)
	sb.WriteString("\n")
	if r.Table != "" {
		sb.WriteString("Table: ")
		sb.WriteString(r.Table)
		sb.WriteString("\n")
	}
	sb.WriteString("Items:\n")
	for _, line := range r.Lines {
		sb.WriteString("  ")
		sb.WriteString(line.String())
		sb.WriteString("\n")
	}
	sb.WriteString("\nOriginal Total: $")
	sb.WriteString(r.Subtotal.StringFixed(2))
	sb.WriteString("\n")
	sb.WriteString(r.DiscountLabel)
	sb.WriteString(": -$")
	sb.WriteString(r.DiscountAmount.StringFixed(2))
	sb.WriteString("\nFinal Total: $")
	sb.WriteString(r.FinalTotal.StringFixed(2))
	return sb.String()
}
