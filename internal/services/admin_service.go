// internal/services/admin_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/resona/resona-api/internal/dashboard"
	"github.com/resona/resona-api/internal/database"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/utils"
)

type AdminService struct {
	db            *gorm.DB
	orders        *OrderService
	products      *ProductService
	payments      *PaymentService
	hubs          *HubService
	inventory     *InventoryService
	notifications *NotificationService
	now           func() time.Time
}

type AdminOverview struct {
	dashboard.AdminOverviewView
	UnreadNotifications int64 `json:"unread_notifications"`
	Available           bool  `json:"available"`
}

type AuditLogFilter struct {
	utils.PaginationParams
	Principal     string     `json:"principal,omitempty"`
	Action        string     `json:"action,omitempty"`
	ResourceType  string     `json:"resource_type,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}

type AnalyticsQuery struct {
	Metrics   []string
	StartDate time.Time
	EndDate   time.Time
}

type AnalyticsPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Snapshot is one run of the periodic metrics capture.
type Snapshot struct {
	TakenAt       time.Time          `json:"taken_at"`
	Metrics       map[string]float64 `json:"metrics"`
	LowStockAlert int                `json:"low_stock_notifications"`
	SplitAnomaly  int                `json:"split_anomalies"`
}

var snapshotMetrics = []string{
	models.MetricTotalOrders,
	models.MetricDeliveredOrders,
	models.MetricTotalRevenue,
	models.MetricPlatformRevenue,
	models.MetricPendingHubs,
	models.MetricApprovedHubs,
	models.MetricLowStockItems,
}

func NewAdminService(db *gorm.DB, orders *OrderService, products *ProductService, payments *PaymentService, hubs *HubService, inventory *InventoryService, notifications *NotificationService) *AdminService {
	return &AdminService{
		db:            db,
		orders:        orders,
		products:      products,
		payments:      payments,
		hubs:          hubs,
		inventory:     inventory,
		notifications: notifications,
		now:           time.Now,
	}
}

// Overview aggregates the platform-wide admin dashboard. While the ledger is
// unreachable the aggregate is computed over empty lists.
func (s *AdminService) Overview(ctx context.Context, session ledger.Session) (*AdminOverview, error) {
	available := true
	keep := func(err error) error {
		if err != nil && ledger.IsUnavailable(err) {
			available = false
			return nil
		}
		return err
	}

	orders, err := s.orders.all(ctx, session)
	if err = keep(err); err != nil {
		return nil, err
	}
	products, err := s.products.all(ctx, session)
	if err = keep(err); err != nil {
		return nil, err
	}
	payments, err := s.payments.all(ctx, session)
	if err = keep(err); err != nil {
		return nil, err
	}
	hubs, err := s.hubs.all(ctx, session)
	if err = keep(err); err != nil {
		return nil, err
	}
	alerts, err := s.inventory.lowStock(ctx, session)
	if err = keep(err); err != nil {
		return nil, err
	}

	unread, err := s.notifications.UnreadCount()
	if err != nil {
		logrus.WithError(err).Warn("Failed to count unread notifications")
	}

	return &AdminOverview{
		AdminOverviewView:   dashboard.AdminOverview(orders, products, payments, hubs, len(alerts)),
		UnreadNotifications: unread,
		Available:           available,
	}, nil
}

func (s *AdminService) RecordAuditLog(entry *models.AuditLog) error {
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (s *AdminService) AuditLogs(filter AuditLogFilter) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})

	if filter.Principal != "" {
		query = query.Where("principal = ?", filter.Principal)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	allowedSortFields := []string{"created_at", "action", "resource_type", "principal", "status_code"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}

// Analytics returns the snapshot history of each requested metric, oldest first.
func (s *AdminService) Analytics(q AnalyticsQuery) (map[string][]AnalyticsPoint, error) {
	metrics := q.Metrics
	if len(metrics) == 0 {
		metrics = snapshotMetrics
	}

	analytics := make(map[string][]AnalyticsPoint, len(metrics))
	for _, metric := range metrics {
		var rows []models.PlatformAnalytics
		err := s.db.Where("metric_name = ? AND metric_date BETWEEN ? AND ?", metric, q.StartDate, q.EndDate).
			Order("metric_date asc").
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s analytics: %w", metric, err)
		}

		points := make([]AnalyticsPoint, 0, len(rows))
		for _, r := range rows {
			points = append(points, AnalyticsPoint{Date: r.MetricDate, Value: r.MetricValue})
		}
		analytics[metric] = points
	}

	return analytics, nil
}

// RecordSnapshot captures the platform metrics and records notifications
// for low stock and payment split anomalies.
func (s *AdminService) RecordSnapshot(ctx context.Context, session ledger.Session) (*Snapshot, error) {
	orders, err := s.orders.all(ctx, session)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.all(ctx, session)
	if err != nil {
		return nil, err
	}
	hubs, err := s.hubs.all(ctx, session)
	if err != nil {
		return nil, err
	}
	alerts, err := s.inventory.lowStock(ctx, session)
	if err != nil {
		return nil, err
	}

	counts := dashboard.SummarizeOrders(orders)
	totals := dashboard.SummarizePayments(payments)
	hubCounts := dashboard.HubStatusCounts(hubs)

	takenAt := s.now().UTC().Truncate(time.Minute)
	snapshot := &Snapshot{
		TakenAt: takenAt,
		Metrics: map[string]float64{
			models.MetricTotalOrders:     float64(counts.Total),
			models.MetricDeliveredOrders: float64(counts.Delivered),
			models.MetricTotalRevenue:    float64(totals.Total) / 100,
			models.MetricPlatformRevenue: float64(totals.Platform) / 100,
			models.MetricPendingHubs:     float64(hubCounts.Pending),
			models.MetricApprovedHubs:    float64(hubCounts.Approved),
			models.MetricLowStockItems:   float64(len(alerts)),
		},
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		for _, name := range snapshotMetrics {
			row := &models.PlatformAnalytics{
				MetricName:   name,
				MetricValue:  snapshot.Metrics[name],
				MetricDate:   takenAt,
				MetricPeriod: models.MetricPeriodHourly,
			}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("failed to store %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if snapshot.LowStockAlert, err = s.notifications.LowStock(alerts); err != nil {
		logrus.WithError(err).Error("Failed to record low stock notifications")
	}
	snapshot.SplitAnomaly = len(s.payments.RecordViolations(payments))

	logrus.WithFields(logrus.Fields{
		"orders":    counts.Total,
		"payments":  totals.Count,
		"low_stock": len(alerts),
		"anomalies": snapshot.SplitAnomaly,
	}).Info("Platform snapshot recorded")

	return snapshot, nil
}
