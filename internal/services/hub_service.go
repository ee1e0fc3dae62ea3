// internal/services/hub_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/dashboard"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/utils"
)

type HubService struct {
	ledger        *ledger.Client
	cache         *cache.QueryCache
	notifications *NotificationService
	now           func() time.Time
}

type UpdateHubRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Location     *models.Location `json:"location,omitempty"`
	Capacity     *int64           `json:"capacity,omitempty" validate:"omitempty,min=1"`
	BusinessInfo *string          `json:"business_info,omitempty"`
	ContactInfo  *string          `json:"contact_info,omitempty"`
	Services     *string          `json:"services,omitempty"`
}

// AdminHubs backs the admin hub tab.
type AdminHubs struct {
	Hubs      []dashboard.HubRow  `json:"hubs"`
	Counts    dashboard.HubCounts `json:"counts"`
	Available bool                `json:"available"`
}

// HubAction is an admin moderation step.
type HubAction string

const (
	HubActionApprove    HubAction = dashboard.ActionApprove
	HubActionReject     HubAction = dashboard.ActionReject
	HubActionSuspend    HubAction = dashboard.ActionSuspend
	HubActionReactivate HubAction = dashboard.ActionReactivate
)

func NewHubService(client *ledger.Client, queryCache *cache.QueryCache, notifications *NotificationService) *HubService {
	return &HubService{
		ledger:        client,
		cache:         queryCache,
		notifications: notifications,
		now:           time.Now,
	}
}

// ListApproved returns the hubs open for fulfillment.
func (s *HubService) ListApproved(ctx context.Context, session ledger.Session) (ListResult[models.Hub], error) {
	return degrade(s.approved(ctx, session))
}

func (s *HubService) approved(ctx context.Context, session ledger.Session) ([]models.Hub, error) {
	return cached(ctx, s.cache, session, cache.Hubs, func(ctx context.Context) ([]models.Hub, error) {
		return s.ledger.GetHubs(ctx, session)
	})
}

func (s *HubService) all(ctx context.Context, session ledger.Session) ([]models.Hub, error) {
	return cached(ctx, s.cache, session, cache.AllHubs, func(ctx context.Context) ([]models.Hub, error) {
		return s.ledger.GetAllHubs(ctx, session)
	})
}

// ListForAdmin returns every hub narrowed to status, with counts over all of them.
func (s *HubService) ListForAdmin(ctx context.Context, session ledger.Session, status *models.HubStatus) (*AdminHubs, error) {
	res, err := degrade(s.all(ctx, session))
	if err != nil {
		return nil, err
	}
	return &AdminHubs{
		Hubs:      dashboard.HubRows(dashboard.FilterHubsByStatus(res.Items, status), true),
		Counts:    dashboard.HubStatusCounts(res.Items),
		Available: res.Available,
	}, nil
}

// Mine lists the hubs the caller operates.
func (s *HubService) Mine(ctx context.Context, session ledger.Session) (ListResult[dashboard.HubRow], error) {
	hubs, err := s.callerHubs(ctx, session)
	if err != nil {
		return degrade[dashboard.HubRow](nil, err)
	}
	return degrade(dashboard.HubRows(hubs, session.IsAdmin()), nil)
}

func (s *HubService) callerHubs(ctx context.Context, session ledger.Session) ([]models.Hub, error) {
	return cached(ctx, s.cache, session, cache.CallerHubs, func(ctx context.Context) ([]models.Hub, error) {
		return s.ledger.GetCallerHubs(ctx, session)
	})
}

// CallerHub returns nil when the caller does not operate a hub.
func (s *HubService) CallerHub(ctx context.Context, session ledger.Session) (*models.Hub, error) {
	return cached(ctx, s.cache, session, cache.CallerHub, func(ctx context.Context) (*models.Hub, error) {
		return s.ledger.GetCallerHub(ctx, session)
	})
}

// Apply saves a draft hub application and returns its id.
func (s *HubService) Apply(ctx context.Context, session ledger.Session, app *models.HubApplication) (string, error) {
	if err := validate(app); err != nil {
		return "", err
	}
	if err := checkLocation(app.Location); err != nil {
		return "", err
	}

	id := utils.NewResourceID("hub")
	if err := s.ledger.ApplyForHub(ctx, session, id, *app); err != nil {
		return "", err
	}

	s.cache.Invalidate(cache.HubOwnerMutation...)
	logMutation(session, "apply_for_hub", id)
	return id, nil
}

func (s *HubService) Submit(ctx context.Context, session ledger.Session, hubID string) error {
	if err := s.ledger.SubmitHubForApproval(ctx, session, hubID); err != nil {
		return err
	}

	s.cache.Invalidate(cache.HubOwnerMutation...)
	logMutation(session, "submit_hub", hubID)

	hub, err := s.findOwned(ctx, session, hubID)
	switch {
	case err != nil:
		logrus.WithError(err).WithField("hub_id", hubID).Warn("Submitted hub could not be reloaded for notification")
	case hub != nil:
		if err := s.notifications.HubPendingApproval(hub); err != nil {
			logrus.WithError(err).WithField("hub_id", hubID).Error("Failed to record hub approval notification")
		}
	}
	return nil
}

func (s *HubService) Update(ctx context.Context, session ledger.Session, hubID string, req *UpdateHubRequest) (*models.Hub, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	hub, err := s.findOwned(ctx, session, hubID)
	if err != nil {
		return nil, err
	}
	if hub == nil {
		return nil, fmt.Errorf("hub %s: %w", hubID, ledger.ErrNotFound)
	}

	if req.Name != nil {
		hub.Name = *req.Name
	}
	if req.Location != nil {
		if err := checkLocation(*req.Location); err != nil {
			return nil, err
		}
		hub.Location = *req.Location
	}
	if req.Capacity != nil {
		hub.Capacity = *req.Capacity
	}
	if req.BusinessInfo != nil {
		hub.BusinessInfo = *req.BusinessInfo
	}
	if req.ContactInfo != nil {
		hub.ContactInfo = *req.ContactInfo
	}
	if req.Services != nil {
		hub.Services = *req.Services
	}
	hub.UpdatedAt = s.now().UnixNano()

	if err := s.ledger.UpdateHub(ctx, session, *hub); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.HubOwnerMutation...)
	logMutation(session, "update_hub", hubID)
	return hub, nil
}

// Moderate applies an admin action. Reactivation approves the hub again.
func (s *HubService) Moderate(ctx context.Context, session ledger.Session, hubID string, action HubAction) error {
	var err error
	switch action {
	case HubActionApprove, HubActionReactivate:
		err = s.ledger.ApproveHub(ctx, session, hubID)
	case HubActionReject:
		err = s.ledger.RejectHub(ctx, session, hubID)
	case HubActionSuspend:
		err = s.ledger.SuspendHub(ctx, session, hubID)
	default:
		return fmt.Errorf("%w: unknown hub action %q", models.ErrInvalidInput, action)
	}
	if err != nil {
		return err
	}

	s.invalidateAfterModeration()
	logMutation(session, string(action)+"_hub", hubID)
	return nil
}

func (s *HubService) Delete(ctx context.Context, session ledger.Session, hubID string) error {
	if err := s.ledger.DeleteHub(ctx, session, hubID); err != nil {
		return err
	}

	s.invalidateAfterModeration()
	logMutation(session, "delete_hub", hubID)
	return nil
}

// Moderation also changes what hub owners see, and owner views share this cache.
func (s *HubService) invalidateAfterModeration() {
	s.cache.Invalidate(cache.HubAdminMutation...)
	s.cache.Invalidate(cache.CallerHub, cache.CallerHubs)
}

// findOwned returns nil without error when the caller has no hub with that id.
func (s *HubService) findOwned(ctx context.Context, session ledger.Session, hubID string) (*models.Hub, error) {
	hubs, err := s.callerHubs(ctx, session)
	if err != nil {
		return nil, err
	}
	for i := range hubs {
		if hubs[i].ID == hubID {
			h := hubs[i]
			return &h, nil
		}
	}
	return nil, nil
}

func checkLocation(l models.Location) error {
	if l.Lat() < -90 || l.Lat() > 90 || l.Lng() < -180 || l.Lng() > 180 {
		return fmt.Errorf("%w: location must be a valid latitude and longitude", models.ErrInvalidInput)
	}
	return nil
}
