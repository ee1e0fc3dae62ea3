// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}
}

// Enums
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
	UserRoleGuest UserRole = "guest"
)

type AppRole string

const (
	AppRoleArtist AppRole = "artist"
	AppRoleBuyer  AppRole = "buyer"
	AppRoleHub    AppRole = "hub"
	AppRoleAdmin  AppRole = "admin"
)

type ProductType string

const (
	ProductTypePhysical ProductType = "physical"
	ProductTypeNFT      ProductType = "nft"
	ProductTypePhygital ProductType = "phygital"
)

type Blockchain string

const (
	BlockchainICP      Blockchain = "icp"
	BlockchainEthereum Blockchain = "ethereum"
	BlockchainSolana   Blockchain = "solana"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusAssigned   OrderStatus = "assigned"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

type HubStatus string

const (
	HubStatusDraft           HubStatus = "draft"
	HubStatusPendingApproval HubStatus = "pendingApproval"
	HubStatusApproved        HubStatus = "approved"
	HubStatusRejected        HubStatus = "rejected"
	HubStatusSuspended       HubStatus = "suspended"
)

type InventoryStatus string

const (
	InventoryStatusInStock    InventoryStatus = "inStock"
	InventoryStatusPending    InventoryStatus = "pending"
	InventoryStatusLowStock   InventoryStatus = "lowStock"
	InventoryStatusOutOfStock InventoryStatus = "outOfStock"
)

type TourType string

const (
	TourTypeExclusiveDrop TourType = "exclusiveDrop"
	TourTypeRegularShow   TourType = "regularShow"
	TourTypeFestival      TourType = "festival"
)

type TourStatus string

const (
	TourStatusUpcoming  TourStatus = "upcoming"
	TourStatusCompleted TourStatus = "completed"
	TourStatusCancelled TourStatus = "cancelled"
)

type HubActivityType string

const (
	HubActivityUnitsShipped  HubActivityType = "unitsShipped"
	HubActivityLowStockAlert HubActivityType = "lowStockAlert"
	HubActivityNewOrder      HubActivityType = "newOrder"
)

// Enumerations in declaration order.
var (
	UserRoles         = []UserRole{UserRoleUser, UserRoleAdmin, UserRoleGuest}
	AppRoles          = []AppRole{AppRoleArtist, AppRoleBuyer, AppRoleHub, AppRoleAdmin}
	ProductTypes      = []ProductType{ProductTypePhysical, ProductTypeNFT, ProductTypePhygital}
	Blockchains       = []Blockchain{BlockchainICP, BlockchainEthereum, BlockchainSolana}
	OrderStatuses     = []OrderStatus{OrderStatusPending, OrderStatusAssigned, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered}
	HubStatuses       = []HubStatus{HubStatusDraft, HubStatusPendingApproval, HubStatusApproved, HubStatusRejected, HubStatusSuspended}
	InventoryStatuses = []InventoryStatus{InventoryStatusInStock, InventoryStatusPending, InventoryStatusLowStock, InventoryStatusOutOfStock}
	TourTypes         = []TourType{TourTypeExclusiveDrop, TourTypeRegularShow, TourTypeFestival}
	TourStatuses      = []TourStatus{TourStatusUpcoming, TourStatusCompleted, TourStatusCancelled}
	HubActivityTypes  = []HubActivityType{HubActivityUnitsShipped, HubActivityLowStockAlert, HubActivityNewOrder}
)

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func (r UserRole) Valid() bool        { return contains(UserRoles, r) }
func (r AppRole) Valid() bool         { return contains(AppRoles, r) }
func (t ProductType) Valid() bool     { return contains(ProductTypes, t) }
func (b Blockchain) Valid() bool      { return contains(Blockchains, b) }
func (s OrderStatus) Valid() bool     { return contains(OrderStatuses, s) }
func (s HubStatus) Valid() bool       { return contains(HubStatuses, s) }
func (s InventoryStatus) Valid() bool { return contains(InventoryStatuses, s) }
func (t TourType) Valid() bool        { return contains(TourTypes, t) }
func (s TourStatus) Valid() bool      { return contains(TourStatuses, s) }
func (t HubActivityType) Valid() bool { return contains(HubActivityTypes, t) }
