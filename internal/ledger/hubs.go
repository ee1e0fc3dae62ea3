// internal/ledger/hubs.go
package ledger

import (
	"context"

	"github.com/resona/resona-api/internal/models"
)

func (c *Client) listHubs(ctx context.Context, s Session, method string) ([]models.Hub, error) {
	var ws []wireHub
	if err := c.call(ctx, s, method, &ws); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.hubs(ws)
	return out, d.err
}

// GetHubs lists approved hubs.
func (c *Client) GetHubs(ctx context.Context, s Session) ([]models.Hub, error) {
	return c.listHubs(ctx, s, "getHubs")
}

// GetAllHubs lists hubs in every lifecycle state. Admin only.
func (c *Client) GetAllHubs(ctx context.Context, s Session) ([]models.Hub, error) {
	return c.listHubs(ctx, s, "getAllHubs")
}

func (c *Client) GetCallerHubs(ctx context.Context, s Session) ([]models.Hub, error) {
	return c.listHubs(ctx, s, "getCallerHubs")
}

// GetCallerHub returns nil when the caller does not operate a hub.
func (c *Client) GetCallerHub(ctx context.Context, s Session) (*models.Hub, error) {
	var w *wireHub
	if err := c.call(ctx, s, "getCallerHub", &w); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	d := c.decoder()
	out := d.hub(*w)
	return &out, d.err
}

func (c *Client) ApplyForHub(ctx context.Context, s Session, id string, application models.HubApplication) error {
	return c.call(ctx, s, "applyForHub", nil, encodeHubApplication(id, application))
}

func (c *Client) SubmitHubForApproval(ctx context.Context, s Session, hubID string) error {
	return c.call(ctx, s, "submitHubForApproval", nil, hubID)
}

func (c *Client) UpdateHub(ctx context.Context, s Session, hub models.Hub) error {
	return c.call(ctx, s, "updateHub", nil, encodeHub(hub))
}

func (c *Client) ApproveHub(ctx context.Context, s Session, hubID string) error {
	return c.call(ctx, s, "approveHub", nil, hubID)
}

func (c *Client) RejectHub(ctx context.Context, s Session, hubID string) error {
	return c.call(ctx, s, "rejectHub", nil, hubID)
}

func (c *Client) SuspendHub(ctx context.Context, s Session, hubID string) error {
	return c.call(ctx, s, "suspendHub", nil, hubID)
}

func (c *Client) DeleteHub(ctx context.Context, s Session, hubID string) error {
	return c.call(ctx, s, "deleteHub", nil, hubID)
}
