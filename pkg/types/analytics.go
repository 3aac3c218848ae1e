package types

import "time"

// ClientAnalytics summarizes a tenant's client base, segmented by purchase
// behavior. Computed over all of the tenant's records in one pass.
type ClientAnalytics struct {
	TotalClients int              `json:"totalClients"`
	Summary      AnalyticsSummary `json:"summary"`
	Categories   []ClientCategory `json:"categories"`
}

// AnalyticsSummary holds the tenant-wide aggregates.
type AnalyticsSummary struct {
	AverageMonthlySpending   float64 `json:"averageMonthlySpending"`
	RepeatCustomerRate       float64 `json:"repeatCustomerRate"`
	AverageOrdersPerCustomer float64 `json:"averageOrdersPerCustomer"`
}

// ClientCategory is one behavioral segment: how many clients fall in it,
// what share of the base they are, and what they spend.
type ClientCategory struct {
	Category        string  `json:"category"`
	Count           int     `json:"count"`
	Percentage      float64 `json:"percentage"`
	TotalSpent      float64 `json:"totalSpent"`
	AverageSpending float64 `json:"averageSpending"`
	Description     string  `json:"description"`
}

// ClientProfile is the per-client aggregate the segmentation buckets over.
type ClientProfile struct {
	ID                string
	TotalSpent        float64
	OrderCount        int
	FirstOrderDate    time.Time
	LastOrderDate     time.Time
	AverageOrderValue float64
}
