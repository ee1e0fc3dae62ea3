// internal/ledger/payments.go
package ledger

import (
	"context"

	"github.com/resona/resona-api/internal/models"
)

func (c *Client) GetPayments(ctx context.Context, s Session) ([]models.Payment, error) {
	var ws []wirePayment
	if err := c.call(ctx, s, "getPayments", &ws); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.payments(ws)
	return out, d.err
}

func (c *Client) GetArtistPayments(ctx context.Context, s Session, artist string) ([]models.Payment, error) {
	var ws []wirePayment
	if err := c.call(ctx, s, "getArtistPayments", &ws, artist); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.payments(ws)
	return out, d.err
}

func (c *Client) GetArtistDashboardSummary(ctx context.Context, s Session, artist string) (*models.ArtistDashboardSummary, error) {
	var w wireArtistDashboardSummary
	if err := c.call(ctx, s, "getArtistDashboardSummary", &w, artist); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.artistDashboardSummary(w)
	return &out, d.err
}

func (c *Client) IsStripeConfigured(ctx context.Context, s Session) (bool, error) {
	var configured bool
	if err := c.call(ctx, s, "isStripeConfigured", &configured); err != nil {
		return false, err
	}
	return configured, nil
}

func (c *Client) SetStripeConfiguration(ctx context.Context, s Session, cfg models.StripeConfiguration) error {
	return c.call(ctx, s, "setStripeConfiguration", nil, wireStripeConfiguration{
		APIKey:        cfg.APIKey,
		WebhookSecret: cfg.WebhookSecret,
	})
}
