// internal/models/inventory.go
package models

type InventoryItem struct {
	ProductID   string          `json:"product_id"`
	HubID       string          `json:"hub_id"`
	Stock       int64           `json:"stock"`
	Pending     int64           `json:"pending"`
	Status      InventoryStatus `json:"status"`
	LastUpdated int64           `json:"last_updated"`
}

// InventoryKey identifies a (product, hub) assignment. Ledger ids may contain
// any character, so the pair is kept as two fields rather than joined.
type InventoryKey struct {
	ProductID string
	HubID     string
}

func (i InventoryItem) Key() InventoryKey {
	return InventoryKey{ProductID: i.ProductID, HubID: i.HubID}
}

type InventorySummary struct {
	HubName    string   `json:"hub_name"`
	Location   Location `json:"location"`
	Status     string   `json:"status"`
	InStock    int64    `json:"in_stock"`
	Pending    int64    `json:"pending"`
	LowStock   int64    `json:"low_stock"`
	TotalUnits int64    `json:"total_units"`
}

type HubActivity struct {
	HubID        string          `json:"hub_id"`
	ActivityType HubActivityType `json:"activity_type"`
	Value        *int64          `json:"value,omitempty"`
	Timestamp    int64           `json:"timestamp"`
}

type LowStockAlert struct {
	ProductName string   `json:"product_name"`
	HubLocation Location `json:"hub_location"`
	Stock       int64    `json:"stock"`
	Threshold   int64    `json:"threshold"`
	LastUpdated int64    `json:"last_updated"`
}

// RestockEntry is one line of a bulk restock request.
type RestockEntry struct {
	InventoryID string `json:"inventory_id" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"required,min=1"`
}
