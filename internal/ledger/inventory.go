// internal/ledger/inventory.go
package ledger

import (
	"context"

	"github.com/resona/resona-api/internal/models"
)

func (c *Client) listInventory(ctx context.Context, s Session, method string, args ...interface{}) ([]models.InventoryItem, error) {
	var ws []wireInventoryItem
	if err := c.call(ctx, s, method, &ws, args...); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.inventoryItems(ws)
	return out, d.err
}

func (c *Client) GetInventoryByHub(ctx context.Context, s Session, hubID string) ([]models.InventoryItem, error) {
	return c.listInventory(ctx, s, "getInventoryByHub", hubID)
}

func (c *Client) GetProductInventoryByHub(ctx context.Context, s Session, productID string) ([]models.InventoryItem, error) {
	return c.listInventory(ctx, s, "getProductInventoryByHub", productID)
}

func (c *Client) GetArtistInventory(ctx context.Context, s Session) ([]models.InventoryItem, error) {
	return c.listInventory(ctx, s, "getArtistInventory")
}

func (c *Client) ExportInventoryReport(ctx context.Context, s Session) ([]models.InventoryItem, error) {
	return c.listInventory(ctx, s, "exportInventoryReport")
}

func (c *Client) GetHubInventorySummary(ctx context.Context, s Session, hubID string) (*models.InventorySummary, error) {
	var w wireInventorySummary
	if err := c.call(ctx, s, "getHubInventorySummary", &w, hubID); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.inventorySummary(w)
	return &out, d.err
}

func (c *Client) GetRecentHubActivity(ctx context.Context, s Session, hubID string) ([]models.HubActivity, error) {
	var ws []wireHubActivity
	if err := c.call(ctx, s, "getRecentHubActivity", &ws, hubID); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := make([]models.HubActivity, 0, len(ws))
	for _, w := range ws {
		out = append(out, d.hubActivity(w))
	}
	return out, d.err
}

func (c *Client) GetLowStockAlerts(ctx context.Context, s Session) ([]models.LowStockAlert, error) {
	var ws []wireLowStockAlert
	if err := c.call(ctx, s, "getLowStockAlerts", &ws); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := make([]models.LowStockAlert, 0, len(ws))
	for _, w := range ws {
		out = append(out, d.lowStockAlert(w))
	}
	return out, d.err
}

func (c *Client) AssignProductToHub(ctx context.Context, s Session, productID, hubID string, initialStock int64) error {
	return c.call(ctx, s, "assignProductToHub", nil, productID, hubID, NewBigInt(initialStock))
}

func (c *Client) RemoveProductFromHub(ctx context.Context, s Session, productID, hubID string) error {
	return c.call(ctx, s, "removeProductFromHub", nil, productID, hubID)
}

func (c *Client) UpdateProductHubStock(ctx context.Context, s Session, productID, hubID string, newStock int64) error {
	return c.call(ctx, s, "updateProductHubStock", nil, productID, hubID, NewBigInt(newStock))
}

func (c *Client) RestockInventory(ctx context.Context, s Session, inventoryID string, quantity int64) error {
	return c.call(ctx, s, "restockInventory", nil, inventoryID, NewBigInt(quantity))
}

// BulkRestockInventory sends (inventory id, quantity) pairs.
func (c *Client) BulkRestockInventory(ctx context.Context, s Session, entries []models.RestockEntry) error {
	pairs := make([][2]interface{}, 0, len(entries))
	for _, e := range entries {
		pairs = append(pairs, [2]interface{}{e.InventoryID, NewBigInt(e.Quantity)})
	}
	return c.call(ctx, s, "bulkRestockInventory", nil, pairs)
}
