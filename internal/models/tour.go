// internal/models/tour.go
package models

type Tour struct {
	ID                    string     `json:"id"`
	Artist                string     `json:"artist"`
	VenueName             string     `json:"venue_name"`
	TourType              TourType   `json:"tour_type"`
	Status                TourStatus `json:"status"`
	Location              string     `json:"location"`
	Date                  int64      `json:"date"`
	TicketSales           int64      `json:"ticket_sales"`
	TicketSalesPercentage float64    `json:"ticket_sales_percentage"`
	MerchRevenue          int64      `json:"merch_revenue"`
}

type TourSummary struct {
	TotalTours            int64   `json:"total_tours"`
	UpcomingShows         int64   `json:"upcoming_shows"`
	TicketSales           int64   `json:"ticket_sales"`
	TicketSalesPercentage float64 `json:"ticket_sales_percentage"`
	TotalMerchRevenue     int64   `json:"total_merch_revenue"`
	AverageMerchPerShow   float64 `json:"average_merch_per_show"`
}
