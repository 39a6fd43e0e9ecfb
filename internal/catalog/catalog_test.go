package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nineto6/backoffice/internal/billing"
)

func TestTemplatesAreComplete(t *testing.T) {
	tpls := Templates()
	require.Len(t, tpls, 3)

	ids := make(map[string]bool)
	for _, tpl := range tpls {
		ids[tpl.ID] = true
		require.NotEmpty(t, tpl.Name)
		require.NotEmpty(t, tpl.Items)
	}
	require.True(t, ids["elementor-basic"])
	require.True(t, ids["elementor-premium"])
	require.True(t, ids["monthly-maintenance"])
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("wordpress-basic")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInstantiateBasic(t *testing.T) {
	items, err := Instantiate("elementor-basic")
	require.NoError(t, err)
	require.Len(t, items, 2)

	ledger := billing.NewLedger()
	ledger.SetItems(items)
	totals := ledger.Totals()
	require.Equal(t, 1500.0, totals.Subtotal)
	require.Equal(t, 285.0, totals.TaxAmount)
	require.Equal(t, 1785.0, totals.Total)
}

func TestInstantiateMonthly(t *testing.T) {
	items, err := Instantiate("monthly-maintenance")
	require.NoError(t, err)
	require.Len(t, items, 2)

	ledger := billing.NewLedger()
	ledger.SetItems(items)
	require.Equal(t, 99.0, ledger.Totals().Subtotal)
}
