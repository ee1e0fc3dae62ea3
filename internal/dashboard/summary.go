// internal/dashboard/summary.go
package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/resona/resona-api/internal/models"
)

const RecentOrderLimit = 5

// OrderCounts is a reduction of an order list by status.
type OrderCounts struct {
	Total          int             `json:"total"`
	Pending        int             `json:"pending"`
	Assigned       int             `json:"assigned"`
	Processing     int             `json:"processing"`
	Shipped        int             `json:"shipped"`
	Delivered      int             `json:"delivered"`
	AwaitingHub    int             `json:"awaiting_hub"`
	CompletionRate decimal.Decimal `json:"completion_rate"`
}

func SummarizeOrders(orders []models.Order) OrderCounts {
	counts := OrderCounts{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case models.OrderStatusPending:
			counts.Pending++
		case models.OrderStatusAssigned:
			counts.Assigned++
		case models.OrderStatusProcessing:
			counts.Processing++
		case models.OrderStatusShipped:
			counts.Shipped++
		case models.OrderStatusDelivered:
			counts.Delivered++
		}
	}
	counts.AwaitingHub = counts.Pending + counts.Assigned
	counts.CompletionRate = Percentage(int64(counts.Delivered), int64(counts.Total), 0)
	return counts
}

type PaymentTotals struct {
	Count    int   `json:"count"`
	Total    int64 `json:"total"`
	Artist   int64 `json:"artist"`
	Hub      int64 `json:"hub"`
	Platform int64 `json:"platform"`
}

func SummarizePayments(payments []models.Payment) PaymentTotals {
	totals := PaymentTotals{Count: len(payments)}
	for _, p := range payments {
		totals.Total += p.TotalAmount
		totals.Artist += p.ArtistAmount
		totals.Hub += p.HubAmount
		totals.Platform += p.PlatformAmount
	}
	return totals
}

// RecentOrders returns up to limit orders, newest first.
func RecentOrders(orders []models.Order, limit int) []models.Order {
	sorted := append([]models.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

type AdminOverviewView struct {
	TotalOrders     int           `json:"total_orders"`
	TotalProducts   int           `json:"total_products"`
	TotalRevenue    string        `json:"total_revenue"`
	PlatformRevenue string        `json:"platform_revenue"`
	Payments        PaymentTotals `json:"payments"`
	Orders          OrderCounts   `json:"orders"`
	Hubs            HubCounts     `json:"hubs"`
	LowStockAlerts  int           `json:"low_stock_alerts"`
	RecentOrders    []OrderRow    `json:"recent_orders"`
}

func AdminOverview(orders []models.Order, products []models.Product, payments []models.Payment, hubs []models.Hub, lowStock int) AdminOverviewView {
	totals := SummarizePayments(payments)
	return AdminOverviewView{
		TotalOrders:     len(orders),
		TotalProducts:   len(products),
		TotalRevenue:    FormatCurrency(totals.Total),
		PlatformRevenue: FormatCurrency(totals.Platform),
		Payments:        totals,
		Orders:          SummarizeOrders(orders),
		Hubs:            HubStatusCounts(hubs),
		LowStockAlerts:  lowStock,
		RecentOrders:    OrderRows(RecentOrders(orders, RecentOrderLimit), ProductNames(products)),
	}
}

type PaymentRow struct {
	models.Payment
	ArtistDisplay string `json:"artist_display"`
	TotalDisplay  string `json:"total_display"`
	Date          string `json:"date"`
}

type ArtistAnalyticsView struct {
	TotalOrders     int          `json:"total_orders"`
	DeliveredOrders int          `json:"delivered_orders"`
	TotalRevenue    int64        `json:"total_revenue"`
	RevenueDisplay  string       `json:"revenue_display"`
	CompletionRate  string       `json:"completion_rate"`
	Payments        []PaymentRow `json:"payments"`
}

// ArtistAnalytics reduces an artist's orders and payments. Revenue counts
// only the artist's share.
func ArtistAnalytics(orders []models.Order, payments []models.Payment) ArtistAnalyticsView {
	counts := SummarizeOrders(orders)
	totals := SummarizePayments(payments)

	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, PaymentRow{
			Payment:       p,
			ArtistDisplay: FormatCurrency(p.ArtistAmount),
			TotalDisplay:  FormatCurrency(p.TotalAmount),
			Date:          FormatTimestamp(p.Timestamp),
		})
	}

	return ArtistAnalyticsView{
		TotalOrders:     counts.Total,
		DeliveredOrders: counts.Delivered,
		TotalRevenue:    totals.Artist,
		RevenueDisplay:  FormatCurrency(totals.Artist),
		CompletionRate:  FormatPercent(counts.CompletionRate, 0),
		Payments:        rows,
	}
}

type HubOverviewView struct {
	HubID          string                   `json:"hub_id"`
	Orders         OrderCounts              `json:"orders"`
	CompletionRate string                   `json:"completion_rate"`
	Inventory      *models.InventorySummary `json:"inventory,omitempty"`
	LowStockItems  int                      `json:"low_stock_items"`
	RecentOrders   []OrderRow               `json:"recent_orders"`
	Activity       []models.HubActivity     `json:"activity"`
}

func HubOverview(hubID string, orders []models.Order, summary *models.InventorySummary, items []models.InventoryItem, activity []models.HubActivity, names map[string]string) HubOverviewView {
	counts := SummarizeOrders(orders)
	if activity == nil {
		activity = []models.HubActivity{}
	}
	return HubOverviewView{
		HubID:          hubID,
		Orders:         counts,
		CompletionRate: FormatPercent(Percentage(int64(counts.Delivered), int64(counts.Total), 1), 1),
		Inventory:      summary,
		LowStockItems:  CountLowStock(items),
		RecentOrders:   OrderRows(RecentOrders(orders, RecentOrderLimit), names),
		Activity:       activity,
	}
}
