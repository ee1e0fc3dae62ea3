package database_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/resona/resona-api/internal/database"
	"github.com/resona/resona-api/internal/database/dbtest"
	"github.com/resona/resona-api/internal/models"
)

func TestRunMigrationsCreatesServiceTables(t *testing.T) {
	db := dbtest.New(t)

	for _, model := range []interface{}{&models.AuditLog{}, &models.AdminNotification{}, &models.PlatformAnalytics{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestWithTransaction(t *testing.T) {
	db := dbtest.New(t)

	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		return tx.Create(&models.AuditLog{Action: "place_order", ResourceType: "orders"}).Error
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = database.WithTransaction(db, func(tx *gorm.DB) error {
		require.NoError(t, tx.Create(&models.AuditLog{Action: "delete_hub", ResourceType: "hubs"}).Error)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNotificationResourceIDsRoundTrip(t *testing.T) {
	db := dbtest.New(t)

	n := &models.AdminNotification{
		Type:               models.NotificationTypeHubPending,
		Title:              "Hub Awaiting Approval",
		Message:            "hub-1 submitted",
		Status:             models.NotificationStatusUnread,
		Priority:           models.NotificationPriorityMedium,
		RelatedResourceIDs: []string{"hub-1"},
	}
	require.NoError(t, db.Create(n).Error)

	var stored models.AdminNotification
	require.NoError(t, db.First(&stored, "id = ?", n.ID).Error)
	assert.Equal(t, []string{"hub-1"}, []string(stored.RelatedResourceIDs))
}
