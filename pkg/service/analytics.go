// Client segmentation over a tenant's records. Rows group into per-client
// profiles by whichever client key the data carries, then the profiles are
// bucketed three ways: purchase frequency, average order value, and
// recency of the last order. Buckets overlap on purpose; a client shows up
// once per dimension.
package service

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/lupapyme/registro/pkg/types"
)

// Client key and order value fields, tried in order. A row carrying none
// of the keys counts as its own single-order client with value zero.
var (
	clientKeyFields  = []string{"clienteId", "customerId", "email"}
	orderValueFields = []string{"total", "amount", "valor"}
)

// clientBucket is one segmentation rule.
type clientBucket struct {
	name        string
	description string
	matches     func(c *types.ClientProfile, now time.Time) bool
}

var clientBuckets = []clientBucket{
	{"new", "Clientes con una sola compra",
		func(c *types.ClientProfile, _ time.Time) bool { return c.OrderCount == 1 }},
	{"regular", "Clientes con 2-5 compras",
		func(c *types.ClientProfile, _ time.Time) bool { return c.OrderCount >= 2 && c.OrderCount <= 5 }},
	{"loyal", "Clientes con más de 5 compras",
		func(c *types.ClientProfile, _ time.Time) bool { return c.OrderCount > 5 }},
	{"low", "Valor promedio bajo",
		func(c *types.ClientProfile, _ time.Time) bool { return c.AverageOrderValue < 1000 }},
	{"medium", "Valor promedio medio",
		func(c *types.ClientProfile, _ time.Time) bool {
			return c.AverageOrderValue >= 1000 && c.AverageOrderValue < 5000
		}},
	{"high", "Valor promedio alto",
		func(c *types.ClientProfile, _ time.Time) bool { return c.AverageOrderValue >= 5000 }},
	{"active", "Compró en los últimos 30 días",
		func(c *types.ClientProfile, now time.Time) bool { return daysSince(c.LastOrderDate, now) <= 30 }},
	{"inactive", "Compró entre 30 y 90 días",
		func(c *types.ClientProfile, now time.Time) bool {
			d := daysSince(c.LastOrderDate, now)
			return d > 30 && d <= 90
		}},
	{"lost", "No compra hace más de 90 días",
		func(c *types.ClientProfile, now time.Time) bool { return daysSince(c.LastOrderDate, now) > 90 }},
}

// Analytics segments the tenant's client base.
func (s *Service) Analytics(tenantID string) types.AnalyticsResult {
	rows, err := s.records.FindMany(tenantID, types.RowFilter{})
	if err != nil {
		s.logger.Error("fetching records for analytics, tenant %s: %s", tenantID, err)
		return types.AnalyticsResult{Success: false, Error: "could not compute analytics"}
	}

	clients := clientProfiles(rows)
	analytics := segmentClients(clients, time.Now().UTC())
	return types.AnalyticsResult{Success: true, Data: analytics}
}

// clientProfiles folds rows into per-client aggregates. The client key and
// order value come straight off the stored row's object data; array rows
// carry neither, so each one stands alone under its row ID with value zero,
// matching how the table UI has always counted them.
func clientProfiles(rows []*types.Registro) []*types.ClientProfile {
	byKey := map[string]*types.ClientProfile{}
	order := []string{}

	for _, reg := range rows {
		data := reg.Data.Object()

		key := reg.ID
		for _, f := range clientKeyFields {
			if v, ok := data[f].(string); ok && v != "" {
				key = v
				break
			}
		}
		value := 0.0
		for _, f := range orderValueFields {
			if v, ok := toFloat(data[f]); ok {
				value = v
				break
			}
		}

		c, ok := byKey[key]
		if !ok {
			byKey[key] = &types.ClientProfile{
				ID:                key,
				TotalSpent:        value,
				OrderCount:        1,
				FirstOrderDate:    reg.CreatedAt,
				LastOrderDate:     reg.CreatedAt,
				AverageOrderValue: value,
			}
			order = append(order, key)
			continue
		}
		c.TotalSpent += value
		c.OrderCount++
		c.AverageOrderValue = c.TotalSpent / float64(c.OrderCount)
		if reg.CreatedAt.After(c.LastOrderDate) {
			c.LastOrderDate = reg.CreatedAt
		}
		if reg.CreatedAt.Before(c.FirstOrderDate) {
			c.FirstOrderDate = reg.CreatedAt
		}
	}

	out := make([]*types.ClientProfile, len(order))
	for i, key := range order {
		out[i] = byKey[key]
	}
	return out
}

// segmentClients computes the summary and the non-empty buckets, largest
// bucket first.
func segmentClients(clients []*types.ClientProfile, now time.Time) *types.ClientAnalytics {
	total := len(clients)
	analytics := &types.ClientAnalytics{
		TotalClients: total,
		Categories:   []types.ClientCategory{},
	}
	if total == 0 {
		return analytics
	}

	var totalSpent float64
	var totalOrders, repeat int
	for _, c := range clients {
		totalSpent += c.TotalSpent
		totalOrders += c.OrderCount
		if c.OrderCount > 1 {
			repeat++
		}
	}
	analytics.Summary = types.AnalyticsSummary{
		AverageMonthlySpending:   totalSpent / float64(total),
		RepeatCustomerRate:       float64(repeat) / float64(total) * 100,
		AverageOrdersPerCustomer: float64(totalOrders) / float64(total),
	}

	for _, bucket := range clientBuckets {
		var count int
		var spent float64
		for _, c := range clients {
			if bucket.matches(c, now) {
				count++
				spent += c.TotalSpent
			}
		}
		if count == 0 {
			continue
		}
		analytics.Categories = append(analytics.Categories, types.ClientCategory{
			Category:        bucket.name,
			Count:           count,
			Percentage:      math.Round(float64(count)/float64(total)*100*100) / 100,
			TotalSpent:      spent,
			AverageSpending: spent / float64(count),
			Description:     bucket.description,
		})
	}

	sort.SliceStable(analytics.Categories, func(i, j int) bool {
		return analytics.Categories[i].Count > analytics.Categories[j].Count
	})
	return analytics
}

func daysSince(t, now time.Time) float64 {
	return now.Sub(t).Hours() / 24
}

// toFloat accepts the numeric shapes JSON decoding produces.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
