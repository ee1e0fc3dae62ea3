// internal/services/dashboard_service.go
package services

import (
	"context"

	"github.com/resona/resona-api/internal/dashboard"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
)

// DashboardService assembles the role dashboards from the other services.
type DashboardService struct {
	orders    *OrderService
	products  *ProductService
	payments  *PaymentService
	inventory *InventoryService
	tours     *TourService
}

type ArtistDashboard struct {
	Analytics    dashboard.ArtistAnalyticsView  `json:"analytics"`
	Summary      *models.ArtistDashboardSummary `json:"summary,omitempty"`
	OrderSummary *models.OrderSummary           `json:"order_summary,omitempty"`
	TourSummary  *models.TourSummary            `json:"tour_summary,omitempty"`
	Products     int                            `json:"products"`
	RecentOrders []dashboard.OrderRow           `json:"recent_orders"`
	Available    bool                           `json:"available"`
}

type BuyerDashboard struct {
	Orders    []dashboard.OrderRow  `json:"orders"`
	Counts    dashboard.OrderCounts `json:"counts"`
	Available bool                  `json:"available"`
}

type HubDashboard struct {
	dashboard.HubOverviewView
	Available bool `json:"available"`
}

func NewDashboardService(orders *OrderService, products *ProductService, payments *PaymentService, inventory *InventoryService, tours *TourService) *DashboardService {
	return &DashboardService{
		orders:    orders,
		products:  products,
		payments:  payments,
		inventory: inventory,
		tours:     tours,
	}
}

func (s *DashboardService) Artist(ctx context.Context, session ledger.Session) (*ArtistDashboard, error) {
	unavailable := &ArtistDashboard{
		Analytics:    dashboard.ArtistAnalytics(nil, nil),
		RecentOrders: []dashboard.OrderRow{},
	}

	orders, err := s.orders.forArtist(ctx, session, session.Principal)
	if err != nil {
		return orUnavailable(unavailable, err)
	}
	payments, err := s.payments.forArtist(ctx, session)
	if err != nil {
		return orUnavailable(unavailable, err)
	}
	products, err := s.products.byArtist(ctx, session, session.Principal)
	if err != nil {
		return orUnavailable(unavailable, err)
	}

	result := &ArtistDashboard{
		Analytics:    dashboard.ArtistAnalytics(orders, payments),
		Products:     len(products),
		RecentOrders: dashboard.OrderRows(dashboard.RecentOrders(orders, dashboard.RecentOrderLimit), dashboard.ProductNames(products)),
		Available:    true,
	}

	// The ledger summaries are optional decorations.
	if result.Summary, err = s.payments.DashboardSummary(ctx, session); err != nil && !ledger.IsUnavailable(err) {
		return nil, err
	}
	if result.OrderSummary, err = s.orders.Summary(ctx, session); err != nil && !ledger.IsUnavailable(err) {
		return nil, err
	}
	if result.TourSummary, err = s.tours.Summary(ctx, session); err != nil && !ledger.IsUnavailable(err) {
		return nil, err
	}

	return result, nil
}

func (s *DashboardService) Buyer(ctx context.Context, session ledger.Session) (*BuyerDashboard, error) {
	list, err := s.orders.ListForBuyer(ctx, session)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(list.Items))
	for _, row := range list.Items {
		orders = append(orders, row.Order)
	}

	return &BuyerDashboard{
		Orders:    list.Items,
		Counts:    dashboard.SummarizeOrders(orders),
		Available: list.Available,
	}, nil
}

func (s *DashboardService) Hub(ctx context.Context, session ledger.Session, hubID string) (*HubDashboard, error) {
	unavailable := &HubDashboard{HubOverviewView: dashboard.HubOverview(hubID, nil, nil, nil, nil, nil)}

	orders, err := s.orders.forHub(ctx, session, hubID)
	if err != nil {
		return orUnavailable(unavailable, err)
	}
	items, err := s.inventory.byHub(ctx, session, hubID)
	if err != nil {
		return orUnavailable(unavailable, err)
	}
	summary, err := s.inventory.HubSummary(ctx, session, hubID)
	if err != nil && !ledger.IsUnavailable(err) {
		return nil, err
	}
	activity, err := s.inventory.hubActivity(ctx, session, hubID)
	if err != nil && !ledger.IsUnavailable(err) {
		return nil, err
	}

	return &HubDashboard{
		HubOverviewView: dashboard.HubOverview(hubID, orders, summary, items, activity, s.orders.productNames(ctx, session)),
		Available:       true,
	}, nil
}

func orUnavailable[T any](fallback *T, err error) (*T, error) {
	if ledger.IsUnavailable(err) {
		return fallback, nil
	}
	return nil, err
}
