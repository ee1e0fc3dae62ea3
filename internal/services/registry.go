// internal/services/registry.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/config"
	"github.com/resona/resona-api/internal/ledger"
)

// Registry holds every service built over one ledger client and query cache.
type Registry struct {
	Ledger        *ledger.Client
	Notifications *NotificationService
	Storage       *StorageService
	Certificates  *CertificateService
	Users         *UserService
	Products      *ProductService
	Orders        *OrderService
	Hubs          *HubService
	Inventory     *InventoryService
	Payments      *PaymentService
	Tours         *TourService
	Dashboards    *DashboardService
	Reports       *ReportService
	Admin         *AdminService
}

func NewRegistry(db *gorm.DB, cfg *config.Config, client *ledger.Client, queryCache *cache.QueryCache) (*Registry, error) {
	storage, err := NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return NewRegistryWithStorage(db, cfg, client, queryCache, storage), nil
}

func NewRegistryWithStorage(db *gorm.DB, cfg *config.Config, client *ledger.Client, queryCache *cache.QueryCache, storage *StorageService) *Registry {
	r := &Registry{Ledger: client, Storage: storage}

	r.Notifications = NewNotificationService(db)
	r.Certificates = NewCertificateService(client, queryCache)
	r.Users = NewUserService(client, queryCache)
	r.Products = NewProductService(client, queryCache, r.Certificates, cfg)
	r.Orders = NewOrderService(client, queryCache, r.Products)
	r.Hubs = NewHubService(client, queryCache, r.Notifications)
	r.Inventory = NewInventoryService(client, queryCache, r.Products, r.Hubs)
	r.Payments = NewPaymentService(client, queryCache, r.Orders, r.Products, r.Notifications, cfg)
	r.Tours = NewTourService(client, queryCache)
	r.Dashboards = NewDashboardService(r.Orders, r.Products, r.Payments, r.Inventory, r.Tours)
	r.Reports = NewReportService(r.Orders, r.Inventory)
	r.Admin = NewAdminService(db, r.Orders, r.Products, r.Payments, r.Hubs, r.Inventory, r.Notifications)
	return r
}
