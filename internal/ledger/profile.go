// internal/ledger/profile.go
package ledger

import (
	"context"

	"github.com/resona/resona-api/internal/models"
)

// GetCallerUserProfile returns nil when the caller has not saved a profile yet.
func (c *Client) GetCallerUserProfile(ctx context.Context, s Session) (*models.UserProfile, error) {
	var w *wireUserProfile
	if err := c.call(ctx, s, "getCallerUserProfile", &w); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	d := c.decoder()
	profile := d.userProfile(*w)
	return &profile, d.err
}

func (c *Client) SaveCallerUserProfile(ctx context.Context, s Session, profile models.UserProfile) error {
	return c.call(ctx, s, "saveCallerUserProfile", nil, encodeUserProfile(profile))
}
