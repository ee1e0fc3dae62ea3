// internal/services/inventory_service.go
package services

import (
	"context"
	"time"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/dashboard"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
)

type InventoryService struct {
	ledger   *ledger.Client
	cache    *cache.QueryCache
	products *ProductService
	hubs     *HubService
	now      func() time.Time
}

type AssignProductRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	HubID        string `json:"hub_id" validate:"required"`
	InitialStock int64  `json:"initial_stock" validate:"min=0"`
}

type RemoveProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	HubID     string `json:"hub_id" validate:"required"`
}

type UpdateStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	HubID     string `json:"hub_id" validate:"required"`
	NewStock  int64  `json:"new_stock" validate:"min=0"`
}

type RestockRequest struct {
	Quantity int64 `json:"quantity" validate:"required,min=1"`
}

type BulkRestockRequest struct {
	Entries []models.RestockEntry `json:"entries" validate:"required,min=1,dive"`
}

// InventoryRow is an inventory item decorated for display.
type InventoryRow struct {
	models.InventoryItem
	StatusLabel string `json:"status_label"`
	StatusColor string `json:"status_color"`
	Attention   bool   `json:"attention"`
}

func NewInventoryService(client *ledger.Client, queryCache *cache.QueryCache, products *ProductService, hubs *HubService) *InventoryService {
	return &InventoryService{
		ledger:   client,
		cache:    queryCache,
		products: products,
		hubs:     hubs,
		now:      time.Now,
	}
}

// Matrix crosses the caller's stockable products with the approved hubs.
func (s *InventoryService) Matrix(ctx context.Context, session ledger.Session, search string) (ListResult[dashboard.MatrixRow], error) {
	products, err := s.products.byArtist(ctx, session, session.Principal)
	if err != nil {
		return degrade[dashboard.MatrixRow](nil, err)
	}
	hubs, err := s.hubs.approved(ctx, session)
	if err != nil {
		return degrade[dashboard.MatrixRow](nil, err)
	}
	items, err := s.artistInventory(ctx, session)
	if err != nil {
		return degrade[dashboard.MatrixRow](nil, err)
	}

	stocked := dashboard.StockedProducts(products, search)
	return degrade(dashboard.BuildInventoryMatrix(stocked, hubs, items, s.now()), nil)
}

func (s *InventoryService) artistInventory(ctx context.Context, session ledger.Session) ([]models.InventoryItem, error) {
	return cached(ctx, s.cache, session, cache.ArtistInventory, func(ctx context.Context) ([]models.InventoryItem, error) {
		return s.ledger.GetArtistInventory(ctx, session)
	})
}

func (s *InventoryService) ByHub(ctx context.Context, session ledger.Session, hubID string) (ListResult[InventoryRow], error) {
	items, err := s.byHub(ctx, session, hubID)
	if err != nil {
		return degrade[InventoryRow](nil, err)
	}
	return degrade(inventoryRows(items), nil)
}

func (s *InventoryService) byHub(ctx context.Context, session ledger.Session, hubID string) ([]models.InventoryItem, error) {
	return cached(ctx, s.cache, session, cache.InventoryByHub, func(ctx context.Context) ([]models.InventoryItem, error) {
		return s.ledger.GetInventoryByHub(ctx, session, hubID)
	}, hubID)
}

func (s *InventoryService) ByProduct(ctx context.Context, session ledger.Session, productID string) (ListResult[InventoryRow], error) {
	items, err := cached(ctx, s.cache, session, cache.ProductInventoryByHub, func(ctx context.Context) ([]models.InventoryItem, error) {
		return s.ledger.GetProductInventoryByHub(ctx, session, productID)
	}, productID)
	if err != nil {
		return degrade[InventoryRow](nil, err)
	}
	return degrade(inventoryRows(items), nil)
}

func (s *InventoryService) HubSummary(ctx context.Context, session ledger.Session, hubID string) (*models.InventorySummary, error) {
	return cached(ctx, s.cache, session, cache.HubInventorySummary, func(ctx context.Context) (*models.InventorySummary, error) {
		return s.ledger.GetHubInventorySummary(ctx, session, hubID)
	}, hubID)
}

func (s *InventoryService) HubActivity(ctx context.Context, session ledger.Session, hubID string) (ListResult[models.HubActivity], error) {
	return degrade(s.hubActivity(ctx, session, hubID))
}

func (s *InventoryService) hubActivity(ctx context.Context, session ledger.Session, hubID string) ([]models.HubActivity, error) {
	return cached(ctx, s.cache, session, cache.RecentHubActivity, func(ctx context.Context) ([]models.HubActivity, error) {
		return s.ledger.GetRecentHubActivity(ctx, session, hubID)
	}, hubID)
}

func (s *InventoryService) LowStock(ctx context.Context, session ledger.Session) (ListResult[models.LowStockAlert], error) {
	return degrade(s.lowStock(ctx, session))
}

func (s *InventoryService) lowStock(ctx context.Context, session ledger.Session) ([]models.LowStockAlert, error) {
	return cached(ctx, s.cache, session, cache.LowStockAlerts, func(ctx context.Context) ([]models.LowStockAlert, error) {
		return s.ledger.GetLowStockAlerts(ctx, session)
	})
}

// Export returns every inventory item visible to the caller, uncached.
func (s *InventoryService) Export(ctx context.Context, session ledger.Session) ([]models.InventoryItem, error) {
	return s.ledger.ExportInventoryReport(ctx, session)
}

func (s *InventoryService) Assign(ctx context.Context, session ledger.Session, req *AssignProductRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if err := s.ledger.AssignProductToHub(ctx, session, req.ProductID, req.HubID, req.InitialStock); err != nil {
		return err
	}
	s.mutated(session, "assign_product_to_hub", req.ProductID+"@"+req.HubID)
	return nil
}

func (s *InventoryService) Remove(ctx context.Context, session ledger.Session, req *RemoveProductRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if err := s.ledger.RemoveProductFromHub(ctx, session, req.ProductID, req.HubID); err != nil {
		return err
	}
	s.mutated(session, "remove_product_from_hub", req.ProductID+"@"+req.HubID)
	return nil
}

func (s *InventoryService) UpdateStock(ctx context.Context, session ledger.Session, req *UpdateStockRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if err := s.ledger.UpdateProductHubStock(ctx, session, req.ProductID, req.HubID, req.NewStock); err != nil {
		return err
	}
	s.mutated(session, "update_product_hub_stock", req.ProductID+"@"+req.HubID)
	return nil
}

func (s *InventoryService) Restock(ctx context.Context, session ledger.Session, inventoryID string, req *RestockRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if err := s.ledger.RestockInventory(ctx, session, inventoryID, req.Quantity); err != nil {
		return err
	}
	s.mutated(session, "restock_inventory", inventoryID)
	return nil
}

func (s *InventoryService) BulkRestock(ctx context.Context, session ledger.Session, req *BulkRestockRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if err := s.ledger.BulkRestockInventory(ctx, session, req.Entries); err != nil {
		return err
	}
	s.mutated(session, "bulk_restock_inventory", "")
	return nil
}

func (s *InventoryService) mutated(session ledger.Session, action, resourceID string) {
	s.cache.Invalidate(cache.InventoryMutation...)
	s.cache.Invalidate(cache.RecentHubActivity)
	logMutation(session, action, resourceID)
}

func inventoryRows(items []models.InventoryItem) []InventoryRow {
	rows := make([]InventoryRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, InventoryRow{
			InventoryItem: item,
			StatusLabel:   item.Status.Label(),
			StatusColor:   item.Status.Color(),
			Attention:     item.Status.NeedsAttention(),
		})
	}
	return rows
}
