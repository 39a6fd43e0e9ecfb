package billing

import (
	"fmt"
	"time"
)

// DocumentKind distinguishes the two numbered document types.
type DocumentKind string

const (
	DocumentKindQuote   DocumentKind = "quote"
	DocumentKindInvoice DocumentKind = "invoice"
)

// Prefix returns the two-letter number prefix: AN for Angebote, RE for
// Rechnungen.
func (k DocumentKind) Prefix() string {
	if k == DocumentKindInvoice {
		return "RE"
	}
	return "AN"
}

// DocumentNumber derives a human-readable label of the form
// PREFIX-YYYYMMDD-dddd. The four-digit tail comes from the millisecond clock
// at call time, so two calls inside the same millisecond window can collide.
// It is a display label, not a unique key; the caller may overwrite it and
// the persistence layer owns any uniqueness it needs.
func DocumentNumber(kind DocumentKind, at time.Time) string {
	tail := time.Now().UnixMilli() % 10000
	return fmt.Sprintf("%s-%s-%04d", kind.Prefix(), at.Format("20060102"), tail)
}
