package billing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var eurPrinter = message.NewPrinter(language.German)

// RoundCurrency rounds half away from zero at the cent boundary.
func RoundCurrency(x float64) float64 {
	return math.Round(x*100) / 100
}

// LineTax computes the rounded tax share of a single line.
func LineTax(lineTotal, taxRate float64) float64 {
	return RoundCurrency(lineTotal * taxRate)
}

// FormatEUR renders an amount with German digit grouping, e.g. "1.234,56 €".
func FormatEUR(x float64) string {
	return eurPrinter.Sprintf("%.2f €", x)
}
