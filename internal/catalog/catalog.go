// Package catalog holds the built-in service templates used to seed quote
// and invoice line items.
package catalog

import (
	"errors"

	"github.com/nineto6/backoffice/internal/billing"
)

// ErrNotFound indicates an unknown template id.
var ErrNotFound = errors.New("template not found")

// BillingType mirrors the project type a template maps onto.
type BillingType string

const (
	BillingOnetime BillingType = "onetime"
	BillingMonthly BillingType = "monthly"
)

// TemplateItem is one preset line of a template.
type TemplateItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
}

// Template is a predefined service bundle.
type Template struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        BillingType    `json:"type"`
	BasePrice   float64        `json:"base_price"`
	Items       []TemplateItem `json:"items"`
}

var templates = []Template{
	{
		ID:          "elementor-basic",
		Name:        "Elementor Basic Website",
		Description: "Einfache Website mit Elementor (bis zu 5 Seiten)",
		Type:        BillingOnetime,
		BasePrice:   1500,
		Items: []TemplateItem{
			{Description: "Elementor Website Entwicklung (5 Seiten)", Quantity: 1, UnitPrice: 1200, TaxRate: billing.TaxRateStandard},
			{Description: "SEO Grundkonfiguration", Quantity: 1, UnitPrice: 300, TaxRate: billing.TaxRateStandard},
		},
	},
	{
		ID:          "elementor-premium",
		Name:        "Elementor Premium Website",
		Description: "Professionelle Website mit erweiterten Features",
		Type:        BillingOnetime,
		BasePrice:   3500,
		Items: []TemplateItem{
			{Description: "Elementor Pro Website (bis zu 15 Seiten)", Quantity: 1, UnitPrice: 2500, TaxRate: billing.TaxRateStandard},
			{Description: "Custom Design & Branding", Quantity: 1, UnitPrice: 800, TaxRate: billing.TaxRateStandard},
			{Description: "SEO Optimierung & Analytics", Quantity: 1, UnitPrice: 200, TaxRate: billing.TaxRateStandard},
		},
	},
	{
		ID:          "monthly-maintenance",
		Name:        "Monatliche Wartung",
		Description: "Regelmäßige Website-Wartung und Support",
		Type:        BillingMonthly,
		BasePrice:   99,
		Items: []TemplateItem{
			{Description: "Website Wartung & Updates", Quantity: 1, UnitPrice: 79, TaxRate: billing.TaxRateStandard},
			{Description: "Backup & Security Monitoring", Quantity: 1, UnitPrice: 20, TaxRate: billing.TaxRateStandard},
		},
	},
}

// Templates returns the built-in templates in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Lookup finds a template by id.
func Lookup(id string) (*Template, error) {
	for i := range templates {
		if templates[i].ID == id {
			cp := templates[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Instantiate materialises a template's preset lines as draft line items.
// The caller runs them through a ledger, which assigns ids and totals.
func Instantiate(id string) ([]billing.LineItem, error) {
	tpl, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	items := make([]billing.LineItem, len(tpl.Items))
	for i, ti := range tpl.Items {
		items[i] = billing.LineItem{
			Description: ti.Description,
			Quantity:    ti.Quantity,
			UnitPrice:   ti.UnitPrice,
			TaxRate:     ti.TaxRate,
		}
	}
	return items, nil
}
