// Package billing holds the document arithmetic shared by quotes and
// invoices: the line-item ledger, currency rounding and document numbering.
package billing

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrItemNotFound indicates an update referenced an unknown line item.
	ErrItemNotFound = errors.New("line item not found")
)

// German VAT fractions. The ledger does not enforce membership; any
// non-negative fraction is accepted.
const (
	TaxRateStandard = 0.19
	TaxRateReduced  = 0.07
	TaxRateExempt   = 0
)

// LineItem is one billable row of a quote or invoice.
//
// LineTotal is a cached derived value, not a computed property: it is only
// ever rewritten by the ledger's own update path, in the same mutation that
// changes Quantity or UnitPrice. Snapshots handed to the persistence layer
// therefore never carry a stale total.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
	LineTotal   float64 `json:"line_total"`
}

// ItemPatch carries a partial line-item update. Nil fields are left
// untouched.
type ItemPatch struct {
	Description *string
	Quantity    *float64
	UnitPrice   *float64
	TaxRate     *float64
}

// DocumentTotals are the derived figures over a full item sequence.
type DocumentTotals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
}

// Ledger is the ordered, mutable line-item collection backing one open
// document. Order is display order and is user-controlled via Reorder.
//
// A ledger is owned by a single editing session and performs no internal
// locking; concurrent callers must serialize access themselves.
type Ledger struct {
	items []LineItem
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// AddItem appends a fresh line item (quantity 1, zero price, standard rate)
// and returns its id.
func (l *Ledger) AddItem() string {
	item := LineItem{
		ID:       uuid.NewString(),
		Quantity: 1,
		TaxRate:  TaxRateStandard,
	}
	l.items = append(l.items, item)
	return item.ID
}

// UpdateItem applies patch to the item with the given id. When quantity or
// unit price change, LineTotal is recomputed in the same mutation. Patching
// only description or tax rate never touches LineTotal.
func (l *Ledger) UpdateItem(id string, patch ItemPatch) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	item := &l.items[idx]
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.TaxRate != nil {
		item.TaxRate = *patch.TaxRate
	}
	if patch.Quantity != nil || patch.UnitPrice != nil {
		if patch.Quantity != nil {
			item.Quantity = *patch.Quantity
		}
		if patch.UnitPrice != nil {
			item.UnitPrice = *patch.UnitPrice
		}
		item.LineTotal = item.Quantity * item.UnitPrice
	}
	return nil
}

// RemoveItem deletes the item with the given id. Removing an absent id is a
// no-op so double-clicked delete buttons stay idempotent.
func (l *Ledger) RemoveItem(id string) {
	idx := l.indexOf(id)
	if idx < 0 {
		return
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
}

// Reorder moves the item with idA to the position currently held by idB,
// shifting the items in between. No-op when the ids match or either is
// absent.
func (l *Ledger) Reorder(idA, idB string) {
	if idA == idB {
		return
	}
	from := l.indexOf(idA)
	to := l.indexOf(idB)
	if from < 0 || to < 0 {
		return
	}
	item := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)
	l.items = append(l.items[:to], append([]LineItem{item}, l.items[to:]...)...)
}

// Totals derives the document figures from the current item sequence. Tax is
// rounded per line and then summed; rounding only the aggregate is a
// different policy and yields different cents.
func (l *Ledger) Totals() DocumentTotals {
	var subtotal, tax float64
	for _, item := range l.items {
		subtotal += item.LineTotal
		tax += LineTax(item.LineTotal, item.TaxRate)
	}
	return DocumentTotals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     RoundCurrency(subtotal + tax),
	}
}

// Items returns a copy of the item sequence in display order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Item returns the line item with the given id.
func (l *Ledger) Item(id string) (LineItem, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return LineItem{}, ErrItemNotFound
	}
	return l.items[idx], nil
}

// SetItems replaces the sequence wholesale, e.g. when loading a stored
// document back into an editing session. Items without an id are assigned
// one; line totals are recomputed so stored rows cannot drift.
func (l *Ledger) SetItems(items []LineItem) {
	l.items = make([]LineItem, len(items))
	copy(l.items, items)
	for i := range l.items {
		if l.items[i].ID == "" {
			l.items[i].ID = uuid.NewString()
		}
		l.items[i].LineTotal = l.items[i].Quantity * l.items[i].UnitPrice
	}
}

// Len reports the number of line items.
func (l *Ledger) Len() int {
	return len(l.items)
}

func (l *Ledger) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}
