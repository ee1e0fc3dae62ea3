// internal/ledger/orders.go
package ledger

import (
	"context"
	"fmt"

	"github.com/resona/resona-api/internal/models"
)

func (c *Client) listOrders(ctx context.Context, s Session, method string, args ...interface{}) ([]models.Order, error) {
	var ws []wireOrder
	if err := c.call(ctx, s, method, &ws, args...); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.orders(ws)
	return out, d.err
}

func (c *Client) GetOrders(ctx context.Context, s Session) ([]models.Order, error) {
	return c.listOrders(ctx, s, "getOrders")
}

func (c *Client) GetBuyerOrders(ctx context.Context, s Session) ([]models.Order, error) {
	return c.listOrders(ctx, s, "getBuyerOrders")
}

func (c *Client) GetArtistOrders(ctx context.Context, s Session, artist string) ([]models.Order, error) {
	return c.listOrders(ctx, s, "getArtistOrders", artist)
}

func (c *Client) GetFilteredArtistOrders(ctx context.Context, s Session, artist string, filter models.OrderFilter) ([]models.Order, error) {
	return c.listOrders(ctx, s, "getFilteredArtistOrders", artist, encodeOrderFilter(filter))
}

func (c *Client) GetHubOrders(ctx context.Context, s Session, hubID string) ([]models.Order, error) {
	return c.listOrders(ctx, s, "getHubOrders", hubID)
}

func (c *Client) GetArtistOrderSummary(ctx context.Context, s Session, artist string) (*models.OrderSummary, error) {
	var w wireOrderSummary
	if err := c.call(ctx, s, "getArtistOrderSummary", &w, artist); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.orderSummary(w)
	return &out, d.err
}

func (c *Client) GetOrderDetails(ctx context.Context, s Session, orderID string) (*models.Order, error) {
	var w *wireOrder
	if err := c.call(ctx, s, "getOrderDetails", &w, orderID); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("order %s %w", orderID, ErrNotFound)
	}
	d := c.decoder()
	out := d.order(*w)
	return &out, d.err
}

func (c *Client) PlaceOrder(ctx context.Context, s Session, order models.Order) error {
	return c.call(ctx, s, "placeOrder", nil, encodeOrder(order))
}

// UpdateOrderStatus forwards the requested status verbatim; the ledger decides
// whether the transition is legal.
func (c *Client) UpdateOrderStatus(ctx context.Context, s Session, orderID string, status models.OrderStatus) error {
	return c.call(ctx, s, "updateOrderStatus", nil, orderID, Tag(string(status)))
}
