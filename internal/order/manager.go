package order

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/menu"
)

// Line is one menu item plus a quantity within the in-progress order.
type Line struct {
	Item     menu.Item
	Quantity int
}

// TotalPrice returns the line total, item price times quantity.
func (l Line) TotalPrice() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) String() string {
	return fmt.Sprintf("%s x%d - $%s", l.Item.Name, l.Quantity, l.TotalPrice().StringFixed(2))
}

// Record is an immutable snapshot of a finalized order as stored in history.
type Record struct {
	OrderNumber    string
	Table          string // empty for take-out
	Lines          []Line
	Subtotal       decimal.Decimal
	DiscountLabel  string
	DiscountAmount decimal.Decimal
	FinalTotal     decimal.Decimal
	Text           string
}

// Manager owns the current in-progress order, the per-type order counters
// and the append-only order history. All state lives in memory for the
// process lifetime; nothing is persisted.
//
// The manager is safe for use from multiple goroutines, though the intended
// usage is a single caller driving it sequentially.
type Manager struct {
	mu           sync.Mutex
	current      []Line
	history      []Record
	dineInCount  int
	takeOutCount int
}

// NewManager creates a manager with an empty order, empty history and both
// order counters seeded at 1.
func NewManager() *Manager {
	return &Manager{
		dineInCount:  1,
		takeOutCount: 1,
	}
}

// AddItem adds quantity of item to the current order. A non-positive
// quantity is silently ignored. If a line for the same item already exists
// it is removed and a merged line with the summed quantity is appended,
// which moves the item to the end of the order.
func (m *Manager) AddItem(item menu.Item, quantity int) {
	if quantity <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.current {
		if existing.Item.Equal(item) {
			merged := Line{Item: item, Quantity: existing.Quantity + quantity}
			m.current = append(m.current[:i], m.current[i+1:]...)
			m.current = append(m.current, merged)
			return
		}
	}
	m.current = append(m.current, Line{Item: item, Quantity: quantity})
}

// Clear empties the current order. History is untouched.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

// IsEmpty reports whether the current order has no lines.
func (m *Manager) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.current) == 0
}

// CalculateTotal returns the exact decimal sum of all line totals in the
// current order, zero for an empty order.
func (m *Manager) CalculateTotal() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calculateTotalLocked()
}

func (m *Manager) calculateTotalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, line := range m.current {
		total = total.Add(line.TotalPrice())
	}
	return total
}

// CurrentOrder returns the lines of the current order in order. The
// returned slice is a copy; mutating it does not affect the order.
func (m *Manager) CurrentOrder() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]Line, len(m.current))
	copy(lines, m.current)
	return lines
}

// GenerateOrderNumber allocates the next order number for the given order
// type: "A" plus a zero-padded counter for dine-in, "B" for take-out. The
// counter is consumed immediately and never rolled back. Counters past 999
// widen to four digits rather than truncate.
func (m *Manager) GenerateOrderNumber(dineIn bool) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dineIn {
		num := m.dineInCount
		m.dineInCount++
		return fmt.Sprintf("A%03d", num)
	}
	num := m.takeOutCount
	m.takeOutCount++
	return fmt.Sprintf("B%03d", num)
}

// CompleteOrder snapshots the current order lines together with the given
// checkout metadata into a history record, appends it, and clears the
// current order.
func (m *Manager) CompleteOrder(orderNumber, table, discountLabel string, discountAmount, finalTotal decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := make([]Line, len(m.current))
	copy(lines, m.current)
	subtotal := m.calculateTotalLocked()

	record := Record{
		OrderNumber:    orderNumber,
		Table:          table,
		Lines:          lines,
		Subtotal:       subtotal,
		DiscountLabel:  discountLabel,
		DiscountAmount: discountAmount,
		FinalTotal:     finalTotal,
	}
	record.Text = formatRecord(record)

	m.history = append(m.history, record)
	m.current = nil
}

// History returns all completed order records, oldest first. The returned
// slice is a copy.
func (m *Manager) History() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]Record, len(m.history))
	copy(records, m.history)
	return records
}
