// internal/services/user_service.go
package services

import (
	"context"
	"fmt"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
)

type UserService struct {
	ledger *ledger.Client
	cache  *cache.QueryCache
}

type SaveProfileRequest struct {
	Name    string         `json:"name" validate:"required,min=1,max=100"`
	Email   string         `json:"email" validate:"required,email"`
	AppRole models.AppRole `json:"app_role" validate:"required,app_role"`
	HubID   *string        `json:"hub_id,omitempty"`
}

// Me describes the caller as seen by the dashboards.
type Me struct {
	Principal string                 `json:"principal"`
	AppRole   models.AppRole         `json:"app_role"`
	Profile   *models.UserProfile    `json:"profile"`
	Ledger    ledger.ConnectionState `json:"ledger"`
}

func NewUserService(client *ledger.Client, queryCache *cache.QueryCache) *UserService {
	return &UserService{
		ledger: client,
		cache:  queryCache,
	}
}

// GetProfile returns nil when the caller has not saved a profile yet.
func (s *UserService) GetProfile(ctx context.Context, session ledger.Session) (*models.UserProfile, error) {
	return cached(ctx, s.cache, session, cache.CurrentUserProfile, func(ctx context.Context) (*models.UserProfile, error) {
		return s.ledger.GetCallerUserProfile(ctx, session)
	})
}

func (s *UserService) Me(ctx context.Context, session ledger.Session) (*Me, error) {
	me := &Me{
		Principal: session.Principal,
		AppRole:   session.AppRole,
		Ledger:    s.ledger.State(),
	}

	profile, err := s.GetProfile(ctx, session)
	if err != nil && !ledger.IsUnavailable(err) {
		return nil, err
	}
	me.Profile = profile
	if profile != nil && profile.AppRole != "" {
		me.AppRole = profile.AppRole
	}
	return me, nil
}

func (s *UserService) SaveProfile(ctx context.Context, session ledger.Session, req *SaveProfileRequest) (*models.UserProfile, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.AppRole == models.AppRoleAdmin && !session.IsAdmin() {
		return nil, fmt.Errorf("%w: the admin role cannot be self-assigned", models.ErrInvalidInput)
	}

	profile := models.UserProfile{
		Name:    req.Name,
		Email:   req.Email,
		Role:    models.UserRoleUser,
		AppRole: req.AppRole,
		HubID:   req.HubID,
	}
	if session.IsAdmin() {
		profile.Role = models.UserRoleAdmin
	}

	if err := s.ledger.SaveCallerUserProfile(ctx, session, profile); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.ProfileMutation...)
	logMutation(session, "save_profile", session.Principal)
	return &profile, nil
}
