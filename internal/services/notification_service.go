// internal/services/notification_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/resona/resona-api/internal/dashboard"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/utils"
)

type NotificationService struct {
	db  *gorm.DB
	now func() time.Time
}

type NotificationRequest struct {
	Type                string   `json:"type" validate:"required"`
	Title               string   `json:"title" validate:"required"`
	Message             string   `json:"message" validate:"required"`
	Priority            string   `json:"priority" validate:"omitempty,oneof=low medium high"`
	RelatedResourceType string   `json:"related_resource_type,omitempty"`
	RelatedResourceIDs  []string `json:"related_resource_ids,omitempty"`
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db:  db,
		now: time.Now,
	}
}

// Notify records an admin notification. An unread notification with the same
// type and related resources is not duplicated; it is returned instead.
func (s *NotificationService) Notify(req *NotificationRequest) (*models.AdminNotification, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	fingerprint := notificationFingerprint(req.Type, req.RelatedResourceIDs)

	var existing models.AdminNotification
	err := s.db.Where("fingerprint = ? AND status = ?", fingerprint, models.NotificationStatusUnread).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up notification: %w", err)
	}

	priority := req.Priority
	if priority == "" {
		priority = models.NotificationPriorityMedium
	}

	notification := &models.AdminNotification{
		Type:                req.Type,
		Title:               req.Title,
		Message:             req.Message,
		Priority:            priority,
		Status:              models.NotificationStatusUnread,
		RelatedResourceType: req.RelatedResourceType,
		RelatedResourceIDs:  pq.StringArray(req.RelatedResourceIDs),
		Fingerprint:         fingerprint,
	}
	if err := s.db.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"type":     notification.Type,
		"priority": notification.Priority,
		"id":       notification.ID,
	}).Info("Admin notification recorded")

	return notification, nil
}

func (s *NotificationService) HubPendingApproval(hub *models.Hub) error {
	_, err := s.Notify(&NotificationRequest{
		Type:                models.NotificationTypeHubPending,
		Title:               "Hub Awaiting Approval",
		Message:             fmt.Sprintf("Hub '%s' has been submitted for approval", hub.Name),
		Priority:            models.NotificationPriorityMedium,
		RelatedResourceType: "hub",
		RelatedResourceIDs:  []string{hub.ID},
	})
	return err
}

// LowStock records one notification per alerted product and hub location.
func (s *NotificationService) LowStock(alerts []models.LowStockAlert) (int, error) {
	recorded := 0
	for _, alert := range alerts {
		location := fmt.Sprintf("%.4f,%.4f", alert.HubLocation.Lat(), alert.HubLocation.Lng())
		priority := models.NotificationPriorityMedium
		if alert.Stock == 0 {
			priority = models.NotificationPriorityHigh
		}

		_, err := s.Notify(&NotificationRequest{
			Type:                models.NotificationTypeLowStock,
			Title:               "Low Stock",
			Message:             fmt.Sprintf("%s has %d units left at hub %s (threshold %d)", alert.ProductName, alert.Stock, location, alert.Threshold),
			Priority:            priority,
			RelatedResourceType: "inventory",
			RelatedResourceIDs:  []string{alert.ProductName, location},
		})
		if err != nil {
			return recorded, err
		}
		recorded++
	}
	return recorded, nil
}

func (s *NotificationService) SplitAnomaly(v dashboard.SplitViolation) error {
	_, err := s.Notify(&NotificationRequest{
		Type:  models.NotificationTypeSplitAnomaly,
		Title: "Payment Split Anomaly",
		Message: fmt.Sprintf("Payment %s for order %s: %s",
			v.PaymentID, v.OrderID, strings.Join(v.Reasons, "; ")),
		Priority:            models.NotificationPriorityHigh,
		RelatedResourceType: "payment",
		RelatedResourceIDs:  []string{v.PaymentID, v.OrderID},
	})
	return err
}

// List returns notifications newest first, narrowed by params.Status.
func (s *NotificationService) List(params utils.PaginationParams) ([]models.AdminNotification, int64, error) {
	query := s.db.Model(&models.AdminNotification{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	allowedSortFields := []string{"created_at", "priority", "type", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var notifications []models.AdminNotification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, total, nil
}

func (s *NotificationService) MarkRead(id uuid.UUID) (*models.AdminNotification, error) {
	var notification models.AdminNotification
	if err := s.db.First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch notification: %w", err)
	}

	if notification.Status == models.NotificationStatusRead {
		return &notification, nil
	}

	readAt := s.now()
	notification.Status = models.NotificationStatusRead
	notification.ReadAt = &readAt
	if err := s.db.Save(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}

	return &notification, nil
}

func (s *NotificationService) UnreadCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.AdminNotification{}).
		Where("status = ?", models.NotificationStatusUnread).
		Count(&count).Error
	return count, err
}

func notificationFingerprint(notificationType string, resourceIDs []string) string {
	ids := append([]string(nil), resourceIDs...)
	sort.Strings(ids)
	return utils.HashString(notificationType + "|" + strings.Join(ids, "|"))
}
