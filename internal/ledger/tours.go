// internal/ledger/tours.go
package ledger

import (
	"context"

	"github.com/resona/resona-api/internal/models"
)

func (c *Client) listTours(ctx context.Context, s Session, method string, args ...interface{}) ([]models.Tour, error) {
	var ws []wireTour
	if err := c.call(ctx, s, method, &ws, args...); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.tours(ws)
	return out, d.err
}

func (c *Client) GetTours(ctx context.Context, s Session) ([]models.Tour, error) {
	return c.listTours(ctx, s, "getTours")
}

func (c *Client) GetArtistTours(ctx context.Context, s Session, artist string) ([]models.Tour, error) {
	return c.listTours(ctx, s, "getArtistTours", artist)
}

// GetFilteredTours lists an artist's tours, optionally narrowed to one status.
func (c *Client) GetFilteredTours(ctx context.Context, s Session, artist string, status *models.TourStatus) ([]models.Tour, error) {
	return c.listTours(ctx, s, "getFilteredTours", artist, optTag(status))
}

func (c *Client) GetTourSummary(ctx context.Context, s Session, artist string) (*models.TourSummary, error) {
	var w wireTourSummary
	if err := c.call(ctx, s, "getTourSummary", &w, artist); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.tourSummary(w)
	return &out, d.err
}

func (c *Client) AddTour(ctx context.Context, s Session, tour models.Tour) error {
	return c.call(ctx, s, "addTour", nil, encodeTour(tour))
}

func (c *Client) UpdateTour(ctx context.Context, s Session, tour models.Tour) error {
	return c.call(ctx, s, "updateTour", nil, encodeTour(tour))
}

func (c *Client) DeleteTour(ctx context.Context, s Session, tourID string) error {
	return c.call(ctx, s, "deleteTour", nil, tourID)
}
