// internal/models/admin.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// AuditLog records a mutating request made through this service.
type AuditLog struct {
	BaseModel
	Principal    string `json:"principal" gorm:"size:128;index"`
	AppRole      string `json:"app_role" gorm:"size:20"`
	Action       string `json:"action" gorm:"size:100;not null;index"`
	ResourceType string `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   string `json:"resource_id" gorm:"size:128;index"`
	StatusCode   int    `json:"status_code"`
	NewValues    JSONB  `json:"new_values" gorm:"type:jsonb"`
	IPAddress    string `json:"ip_address" gorm:"size:45"`
	UserAgent    string `json:"user_agent" gorm:"type:text"`
}

const (
	NotificationTypeLowStock     = "low_stock"
	NotificationTypeHubPending   = "hub_pending_approval"
	NotificationTypeSplitAnomaly = "payment_split_anomaly"

	NotificationPriorityLow    = "low"
	NotificationPriorityMedium = "medium"
	NotificationPriorityHigh   = "high"

	NotificationStatusUnread = "unread"
	NotificationStatusRead   = "read"
)

type AdminNotification struct {
	BaseModel
	Type                string         `json:"type" gorm:"type:varchar(50);not null;index"`
	Title               string         `json:"title" gorm:"size:255;not null"`
	Message             string         `json:"message" gorm:"type:text;not null"`
	Priority            string         `json:"priority" gorm:"type:varchar(20);default:'medium';index"`
	Status              string         `json:"status" gorm:"type:varchar(20);default:'unread';index"`
	RelatedResourceType string         `json:"related_resource_type,omitempty" gorm:"size:50"`
	RelatedResourceIDs  pq.StringArray `json:"related_resource_ids" gorm:"type:text[]"`
	Fingerprint         string         `json:"-" gorm:"size:64;index"`
	ReadAt              *time.Time     `json:"read_at"`
}

const (
	MetricTotalOrders     = "total_orders"
	MetricDeliveredOrders = "delivered_orders"
	MetricTotalRevenue    = "total_revenue"
	MetricPlatformRevenue = "platform_revenue"
	MetricPendingHubs     = "pending_hubs"
	MetricApprovedHubs    = "approved_hubs"
	MetricLowStockItems   = "low_stock_items"

	MetricPeriodHourly = "hourly"
)

type PlatformAnalytics struct {
	BaseModel
	MetricName     string    `json:"metric_name" gorm:"size:100;not null;index"`
	MetricValue    float64   `json:"metric_value" gorm:"type:decimal(15,2);not null"`
	MetricDate     time.Time `json:"metric_date" gorm:"not null;index"`
	MetricPeriod   string    `json:"metric_period" gorm:"type:varchar(20);not null;index"`
	AdditionalData JSONB     `json:"additional_data" gorm:"type:jsonb"`
}
