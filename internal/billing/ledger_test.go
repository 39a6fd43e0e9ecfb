package billing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAddItemDefaults(t *testing.T) {
	l := NewLedger()
	id := l.AddItem()

	require.NotEmpty(t, id)
	item, err := l.Item(id)
	require.NoError(t, err)
	require.Equal(t, "", item.Description)
	require.Equal(t, 1.0, item.Quantity)
	require.Equal(t, 0.0, item.UnitPrice)
	require.Equal(t, 0.0, item.LineTotal)
	require.Equal(t, TaxRateStandard, item.TaxRate)
}

func TestItemIDsStayDistinct(t *testing.T) {
	l := NewLedger()
	seen := make(map[string]bool)
	var ids []string
	for i := 0; i < 20; i++ {
		id := l.AddItem()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		ids = append(ids, id)
	}
	for _, id := range ids[:10] {
		l.RemoveItem(id)
	}
	for i := 0; i < 10; i++ {
		id := l.AddItem()
		require.False(t, seen[id], "id %s reused after deletion", id)
		seen[id] = true
	}
}

func TestUpdateItemRecomputesLineTotal(t *testing.T) {
	l := NewLedger()
	id := l.AddItem()

	require.NoError(t, l.UpdateItem(id, ItemPatch{UnitPrice: ptr(100.0)}))
	item, err := l.Item(id)
	require.NoError(t, err)
	require.Equal(t, 100.0, item.LineTotal)

	require.NoError(t, l.UpdateItem(id, ItemPatch{Quantity: ptr(3.0)}))
	item, err = l.Item(id)
	require.NoError(t, err)
	require.Equal(t, 300.0, item.LineTotal)

	// Description and tax rate changes never touch the cached total.
	require.NoError(t, l.UpdateItem(id, ItemPatch{
		Description: ptr("Hosting"),
		TaxRate:     ptr(TaxRateReduced),
	}))
	item, err = l.Item(id)
	require.NoError(t, err)
	require.Equal(t, 300.0, item.LineTotal)
	require.Equal(t, "Hosting", item.Description)
}

func TestUpdateItemUnknownID(t *testing.T) {
	l := NewLedger()
	l.AddItem()
	before := l.Items()

	err := l.UpdateItem("missing", ItemPatch{Quantity: ptr(5.0)})
	require.ErrorIs(t, err, ErrItemNotFound)
	require.Equal(t, before, l.Items())
}

func TestRemoveItemIdempotent(t *testing.T) {
	l := NewLedger()
	id := l.AddItem()
	l.AddItem()

	l.RemoveItem(id)
	after := l.Items()
	l.RemoveItem(id)
	require.Equal(t, after, l.Items())
	require.Equal(t, 1, l.Len())
}

func TestReorderArrayMove(t *testing.T) {
	l := NewLedger()
	a := l.AddItem()
	b := l.AddItem()
	c := l.AddItem()
	d := l.AddItem()

	l.Reorder(d, b)
	require.Equal(t, []string{a, d, b, c}, itemIDs(l))

	// Absent ids and self-moves leave the order alone.
	l.Reorder(a, "missing")
	l.Reorder(d, d)
	require.Equal(t, []string{a, d, b, c}, itemIDs(l))

	l.Reorder(a, c)
	require.Equal(t, []string{d, b, c, a}, itemIDs(l))
}

func TestTotalsEmptyLedger(t *testing.T) {
	l := NewLedger()
	require.Equal(t, DocumentTotals{}, l.Totals())
}

func TestTotalsEndToEnd(t *testing.T) {
	l := NewLedger()

	first := l.AddItem()
	require.NoError(t, l.UpdateItem(first, ItemPatch{
		Description: ptr("Service X"),
		Quantity:    ptr(2.0),
		UnitPrice:   ptr(100.0),
		TaxRate:     ptr(TaxRateStandard),
	}))
	item, err := l.Item(first)
	require.NoError(t, err)
	require.Equal(t, 200.0, item.LineTotal)

	second := l.AddItem()
	require.NoError(t, l.UpdateItem(second, ItemPatch{
		UnitPrice: ptr(50.0),
		TaxRate:   ptr(TaxRateReduced),
	}))
	item, err = l.Item(second)
	require.NoError(t, err)
	require.Equal(t, 50.0, item.LineTotal)

	totals := l.Totals()
	require.Equal(t, 250.0, totals.Subtotal)
	require.Equal(t, 41.50, totals.TaxAmount)
	require.Equal(t, 291.50, totals.Total)
}

func TestTotalsRoundsPerLine(t *testing.T) {
	// Two lines whose unrounded tax shares end on a half cent. Per-line
	// rounding yields 0.13 + 0.13; rounding the aggregate once would give
	// 0.25.
	l := NewLedger()
	for i := 0; i < 2; i++ {
		id := l.AddItem()
		require.NoError(t, l.UpdateItem(id, ItemPatch{
			UnitPrice: ptr(1.25),
			TaxRate:   ptr(0.10),
		}))
	}
	totals := l.Totals()
	require.Equal(t, 2.50, totals.Subtotal)
	require.InDelta(t, 0.26, totals.TaxAmount, 1e-9)
	require.InDelta(t, 2.76, totals.Total, 1e-9)
}

func TestSetItemsAssignsIDsAndRecomputes(t *testing.T) {
	l := NewLedger()
	l.SetItems([]LineItem{
		{Description: "Wartung", Quantity: 2, UnitPrice: 40, TaxRate: TaxRateStandard, LineTotal: 999},
		{ID: "keep-me", Quantity: 1, UnitPrice: 20, TaxRate: TaxRateReduced},
	})

	items := l.Items()
	require.Len(t, items, 2)
	require.NotEmpty(t, items[0].ID)
	require.Equal(t, "keep-me", items[1].ID)
	require.Equal(t, 80.0, items[0].LineTotal)
	require.Equal(t, 20.0, items[1].LineTotal)
}

func itemIDs(l *Ledger) []string {
	items := l.Items()
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
