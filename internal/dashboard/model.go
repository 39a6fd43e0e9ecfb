// Package dashboard aggregates read-only stats across the other domains.
package dashboard

import "time"

// Stats is the landing-page overview.
type Stats struct {
	MonthRevenue          float64 `json:"month_revenue"`
	MonthRevenueFormatted string  `json:"month_revenue_formatted"`
	ActiveProjects        int     `json:"active_projects"`
	Clients               int     `json:"clients"`
	OpenQuotes            int     `json:"open_quotes"`
	UnpaidTotal           float64 `json:"unpaid_total"`
	UnpaidTotalFormatted  string  `json:"unpaid_total_formatted"`
}

// Activity is one entry of the recent-activity feed.
type Activity struct {
	Kind       string    `json:"kind"`
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Status     *string   `json:"status,omitempty"`
	Amount     *float64  `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
