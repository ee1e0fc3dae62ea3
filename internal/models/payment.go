// internal/models/payment.go
package models

type Payment struct {
	ID             string `json:"id"`
	OrderID        string `json:"order_id"`
	ArtistAmount   int64  `json:"artist_amount"`
	HubAmount      int64  `json:"hub_amount"`
	PlatformAmount int64  `json:"platform_amount"`
	TotalAmount    int64  `json:"total_amount"`
	Timestamp      int64  `json:"timestamp"`
}

type StripeConfiguration struct {
	APIKey        string `json:"api_key" validate:"required"`
	WebhookSecret string `json:"webhook_secret" validate:"required"`
}

type ArtistDashboardSummary struct {
	TotalSales           int64    `json:"total_sales"`
	TotalSalesChange     float64  `json:"total_sales_change"`
	ActiveFans           int64    `json:"active_fans"`
	ActiveFansGrowth     float64  `json:"active_fans_growth"`
	PendingOrders        int64    `json:"pending_orders"`
	UrgentOrders         int64    `json:"urgent_orders"`
	MonthlyRevenue       int64    `json:"monthly_revenue"`
	MonthlyRevenueGrowth float64  `json:"monthly_revenue_growth"`
	ProductsPublished    int64    `json:"products_published"`
	AverageOrderValue    float64  `json:"average_order_value"`
	CustomerSatisfaction float64  `json:"customer_satisfaction"`
	FulfillmentTime      float64  `json:"fulfillment_time"`
	TopTracks            []string `json:"top_tracks"`
	ActionItems          []string `json:"action_items"`
	Announcements        []string `json:"announcements"`
}
