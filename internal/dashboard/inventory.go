// internal/dashboard/inventory.go
package dashboard

import (
	"strings"
	"time"

	"github.com/resona/resona-api/internal/models"
)

// Row actions offered by the inventory matrix.
const (
	ActionUpdateStock = "update_stock"
	ActionAssign      = "assign"
)

type MatrixRow struct {
	ProductID   string                 `json:"product_id"`
	ProductName string                 `json:"product_name"`
	ProductType models.ProductType     `json:"product_type"`
	HubID       string                 `json:"hub_id"`
	HubName     string                 `json:"hub_name"`
	Assigned    bool                   `json:"assigned"`
	Stock       int64                  `json:"stock"`
	Pending     int64                  `json:"pending"`
	Status      models.InventoryStatus `json:"status"`
	StatusLabel string                 `json:"status_label"`
	StatusColor string                 `json:"status_color"`
	Attention   bool                   `json:"attention"`
	LastUpdated int64                  `json:"last_updated"`
	Action      string                 `json:"action"`
}

// StockedProducts keeps the products that can hold hub inventory and whose
// name contains search, ignoring case.
func StockedProducts(products []models.Product, search string) []models.Product {
	search = strings.ToLower(strings.TrimSpace(search))

	result := make([]models.Product, 0, len(products))
	for i := range products {
		if !products[i].HasStock() {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(products[i].Name), search) {
			continue
		}
		result = append(result, products[i])
	}
	return result
}

// BuildInventoryMatrix materializes one row per (product, hub) pair. Pairs
// without an inventory assignment get a placeholder row offering assignment.
func BuildInventoryMatrix(products []models.Product, hubs []models.Hub, items []models.InventoryItem, now time.Time) []MatrixRow {
	byKey := make(map[models.InventoryKey]models.InventoryItem, len(items))
	for _, item := range items {
		byKey[item.Key()] = item
	}

	rows := make([]MatrixRow, 0, len(products)*len(hubs))
	for _, p := range products {
		for _, h := range hubs {
			row := MatrixRow{
				ProductID:   p.ID,
				ProductName: p.Name,
				ProductType: p.ProductType,
				HubID:       h.ID,
				HubName:     h.Name,
			}

			if item, ok := byKey[models.InventoryKey{ProductID: p.ID, HubID: h.ID}]; ok {
				row.Assigned = true
				row.Stock = item.Stock
				row.Pending = item.Pending
				row.Status = item.Status
				row.LastUpdated = item.LastUpdated
				row.Action = ActionUpdateStock
			} else {
				row.Status = models.InventoryStatusOutOfStock
				row.LastUpdated = now.UnixNano()
				row.Action = ActionAssign
			}

			row.StatusLabel = row.Status.Label()
			row.StatusColor = row.Status.Color()
			row.Attention = row.Status.NeedsAttention()
			rows = append(rows, row)
		}
	}
	return rows
}

// CountLowStock counts items that are low or out of stock.
func CountLowStock(items []models.InventoryItem) int {
	count := 0
	for _, item := range items {
		if item.Status.NeedsAttention() {
			count++
		}
	}
	return count
}
