// internal/services/order_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/dashboard"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/utils"
)

type OrderService struct {
	ledger   *ledger.Client
	cache    *cache.QueryCache
	products *ProductService
	now      func() time.Time
}

type PlaceOrderRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,order_status"`
}

// ArtistOrders is the filtered order table plus the ledger's summary counts.
type ArtistOrders struct {
	Orders    []dashboard.OrderRow `json:"orders"`
	Summary   *models.OrderSummary `json:"summary,omitempty"`
	Available bool                 `json:"available"`
}

func NewOrderService(client *ledger.Client, queryCache *cache.QueryCache, products *ProductService) *OrderService {
	return &OrderService{
		ledger:   client,
		cache:    queryCache,
		products: products,
		now:      time.Now,
	}
}

func (s *OrderService) ListAll(ctx context.Context, session ledger.Session) (ListResult[models.Order], error) {
	return degrade(s.all(ctx, session))
}

func (s *OrderService) all(ctx context.Context, session ledger.Session) ([]models.Order, error) {
	return cached(ctx, s.cache, session, cache.Orders, func(ctx context.Context) ([]models.Order, error) {
		return s.ledger.GetOrders(ctx, session)
	})
}

func (s *OrderService) ListForBuyer(ctx context.Context, session ledger.Session) (ListResult[dashboard.OrderRow], error) {
	orders, err := cached(ctx, s.cache, session, cache.BuyerOrders, func(ctx context.Context) ([]models.Order, error) {
		return s.ledger.GetBuyerOrders(ctx, session)
	})
	if err != nil {
		return degrade[dashboard.OrderRow](nil, err)
	}
	return degrade(dashboard.OrderRows(orders, s.productNames(ctx, session)), nil)
}

func (s *OrderService) ListForHub(ctx context.Context, session ledger.Session, hubID string) (ListResult[models.Order], error) {
	return degrade(s.forHub(ctx, session, hubID))
}

func (s *OrderService) forHub(ctx context.Context, session ledger.Session, hubID string) ([]models.Order, error) {
	return cached(ctx, s.cache, session, cache.HubOrders, func(ctx context.Context) ([]models.Order, error) {
		return s.ledger.GetHubOrders(ctx, session, hubID)
	}, hubID)
}

func (s *OrderService) forArtist(ctx context.Context, session ledger.Session, artist string) ([]models.Order, error) {
	return cached(ctx, s.cache, session, cache.ArtistOrders, func(ctx context.Context) ([]models.Order, error) {
		return s.ledger.GetArtistOrders(ctx, session, artist)
	}, artist)
}

// ListForArtist asks the ledger for orders matching the status, date and hub
// fields, then applies the free-text search locally so product names match too.
func (s *OrderService) ListForArtist(ctx context.Context, session ledger.Session, filter models.OrderFilter) (*ArtistOrders, error) {
	remote := widenDateRange(filter, s.cache.TTL())
	remote.SearchTerm = nil

	var orders []models.Order
	var err error
	if remote.IsEmpty() {
		orders, err = s.forArtist(ctx, session, session.Principal)
	} else {
		orders, err = cached(ctx, s.cache, session, cache.FilteredArtistOrders, func(ctx context.Context) ([]models.Order, error) {
			return s.ledger.GetFilteredArtistOrders(ctx, session, session.Principal, remote)
		}, remote.Status, remote.StartDate, remote.EndDate, remote.Hub)
	}
	if err != nil {
		if ledger.IsUnavailable(err) {
			return &ArtistOrders{Orders: []dashboard.OrderRow{}}, nil
		}
		return nil, err
	}

	names := s.artistProductNames(ctx, session)
	result := &ArtistOrders{
		Orders:    dashboard.OrderRows(dashboard.FilterOrders(orders, filter, names), names),
		Available: true,
	}

	summary, err := s.Summary(ctx, session)
	if err != nil && !ledger.IsUnavailable(err) {
		return nil, err
	}
	result.Summary = summary
	return result, nil
}

// widenDateRange snaps the remote date bounds outward to whole cache windows
// so rolling ranges like "last 30 days" share one cache key while the window
// lasts. The exact bounds are applied locally by FilterOrders.
func widenDateRange(filter models.OrderFilter, window time.Duration) models.OrderFilter {
	if window <= 0 {
		window = time.Minute
	}
	step := int64(window)

	if filter.StartDate != nil {
		start := floorTo(*filter.StartDate, step)
		filter.StartDate = &start
	}
	if filter.EndDate != nil {
		end := floorTo(*filter.EndDate, step)
		if end != *filter.EndDate && end <= math.MaxInt64-step {
			end += step
		}
		filter.EndDate = &end
	}
	return filter
}

func floorTo(v, step int64) int64 {
	r := v % step
	if r < 0 {
		r += step
	}
	return v - r
}

func (s *OrderService) Summary(ctx context.Context, session ledger.Session) (*models.OrderSummary, error) {
	return cached(ctx, s.cache, session, cache.ArtistOrderSummary, func(ctx context.Context) (*models.OrderSummary, error) {
		return s.ledger.GetArtistOrderSummary(ctx, session, session.Principal)
	})
}

func (s *OrderService) Get(ctx context.Context, session ledger.Session, orderID string) (*dashboard.OrderRow, error) {
	order, err := cached(ctx, s.cache, session, cache.OrderDetails, func(ctx context.Context) (*models.Order, error) {
		return s.ledger.GetOrderDetails(ctx, session, orderID)
	}, orderID)
	if err != nil {
		return nil, err
	}

	rows := dashboard.OrderRows([]models.Order{*order}, s.productNames(ctx, session))
	return &rows[0], nil
}

func (s *OrderService) Place(ctx context.Context, session ledger.Session, req *PlaceOrderRequest) (*models.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	product, err := s.products.Get(ctx, session, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.HasStock() && req.Quantity > product.Inventory {
		return nil, fmt.Errorf("%w: not enough inventory", models.ErrInvalidInput)
	}

	now := s.now().UnixNano()
	order := models.Order{
		ID:        utils.NewResourceID("order"),
		Buyer:     session.Principal,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.ledger.PlaceOrder(ctx, session, order); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.OrderPlaced...)
	logMutation(session, "place_order", order.ID)
	return &order, nil
}

// UpdateStatus forwards the change; illegal transitions come back as a remote rejection.
func (s *OrderService) UpdateStatus(ctx context.Context, session ledger.Session, orderID string, req *UpdateOrderStatusRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	if err := s.ledger.UpdateOrderStatus(ctx, session, orderID, req.Status); err != nil {
		return err
	}

	s.cache.Invalidate(cache.OrderStatusChange...)
	logMutation(session, "update_order_status:"+string(req.Status), orderID)
	return nil
}

func (s *OrderService) productNames(ctx context.Context, session ledger.Session) map[string]string {
	products, err := s.products.all(ctx, session)
	if err != nil {
		return map[string]string{}
	}
	return dashboard.ProductNames(products)
}

func (s *OrderService) artistProductNames(ctx context.Context, session ledger.Session) map[string]string {
	products, err := s.products.byArtist(ctx, session, session.Principal)
	if err != nil {
		return map[string]string{}
	}
	return dashboard.ProductNames(products)
}
