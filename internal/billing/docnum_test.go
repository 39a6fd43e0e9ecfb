package billing

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDocumentNumberFormat(t *testing.T) {
	at := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.Local)

	quote := DocumentNumber(DocumentKindQuote, at)
	require.Regexp(t, regexp.MustCompile(`^AN-20250115-\d{4}$`), quote)

	invoice := DocumentNumber(DocumentKindInvoice, at)
	require.Regexp(t, regexp.MustCompile(`^RE-20250115-\d{4}$`), invoice)
}

func TestDocumentNumberUsesDocumentDate(t *testing.T) {
	at := time.Date(2024, time.December, 31, 23, 59, 0, 0, time.Local)
	got := DocumentNumber(DocumentKindQuote, at)
	require.Contains(t, got, "-20241231-")
}
