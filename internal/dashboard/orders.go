// internal/dashboard/orders.go
package dashboard

import (
	"strings"
	"time"

	"github.com/resona/resona-api/internal/models"
)

const day = 24 * time.Hour

// OrderRow is an order decorated for the dashboard tables.
type OrderRow struct {
	models.Order
	ProductName       string `json:"product_name"`
	StatusLabel       string `json:"status_label"`
	StatusColor       string `json:"status_color"`
	StatusDescription string `json:"status_description"`
}

// ProductNames indexes product names by id for order search and display.
func ProductNames(products []models.Product) map[string]string {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names
}

// FilterOrders returns the orders matching every field set on the filter.
// An empty filter returns the input unchanged.
func FilterOrders(orders []models.Order, filter models.OrderFilter, names map[string]string) []models.Order {
	if filter.IsEmpty() {
		return orders
	}

	var search string
	if filter.SearchTerm != nil {
		search = strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
	}

	result := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && o.CreatedAt < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && o.CreatedAt > *filter.EndDate {
			continue
		}
		if filter.Hub != nil && (o.AssignedHub == nil || *o.AssignedHub != *filter.Hub) {
			continue
		}
		if search != "" && !matchesSearch(o, search, names) {
			continue
		}
		result = append(result, o)
	}
	return result
}

func matchesSearch(o models.Order, search string, names map[string]string) bool {
	if strings.Contains(strings.ToLower(o.ID), search) ||
		strings.Contains(strings.ToLower(o.ProductID), search) {
		return true
	}
	if name, ok := names[o.ProductID]; ok {
		return strings.Contains(strings.ToLower(name), search)
	}
	return false
}

// DateRangeFilter returns a filter covering the last days days before now.
// Zero or negative days leaves the lower bound open.
func DateRangeFilter(days int, now time.Time) models.OrderFilter {
	if days <= 0 {
		return models.OrderFilter{}
	}
	start := now.Add(-time.Duration(days) * day).UnixNano()
	return models.OrderFilter{StartDate: &start}
}

func OrderRows(orders []models.Order, names map[string]string) []OrderRow {
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, OrderRow{
			Order:             o,
			ProductName:       names[o.ProductID],
			StatusLabel:       o.Status.Label(),
			StatusColor:       o.Status.Color(),
			StatusDescription: o.Status.Description(),
		})
	}
	return rows
}
