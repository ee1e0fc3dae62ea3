// internal/services/tour_service.go
package services

import (
	"context"
	"time"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/utils"
)

type TourService struct {
	ledger *ledger.Client
	cache  *cache.QueryCache
}

type TourRequest struct {
	VenueName             string            `json:"venue_name" validate:"required,max=200"`
	TourType              models.TourType   `json:"tour_type" validate:"required,tour_type"`
	Status                models.TourStatus `json:"status" validate:"required,tour_status"`
	Location              string            `json:"location" validate:"required"`
	Date                  time.Time         `json:"date" validate:"required"`
	TicketSales           int64             `json:"ticket_sales" validate:"min=0"`
	TicketSalesPercentage float64           `json:"ticket_sales_percentage" validate:"min=0,max=100"`
	MerchRevenue          int64             `json:"merch_revenue" validate:"min=0"`
}

type TourRow struct {
	models.Tour
	TourTypeLabel string `json:"tour_type_label"`
	StatusLabel   string `json:"status_label"`
	StatusVariant string `json:"status_variant"`
	DateDisplay   string `json:"date_display"`
}

// ArtistTours is the artist tour tab: the tour list and the ledger summary.
type ArtistTours struct {
	Tours     []TourRow           `json:"tours"`
	Summary   *models.TourSummary `json:"summary,omitempty"`
	Available bool                `json:"available"`
}

func NewTourService(client *ledger.Client, queryCache *cache.QueryCache) *TourService {
	return &TourService{
		ledger: client,
		cache:  queryCache,
	}
}

func (s *TourService) List(ctx context.Context, session ledger.Session) (ListResult[TourRow], error) {
	tours, err := cached(ctx, s.cache, session, cache.Tours, func(ctx context.Context) ([]models.Tour, error) {
		return s.ledger.GetTours(ctx, session)
	})
	if err != nil {
		return degrade[TourRow](nil, err)
	}
	return degrade(tourRows(tours), nil)
}

// Mine lists the caller's tours, narrowed to status when given.
func (s *TourService) Mine(ctx context.Context, session ledger.Session, status *models.TourStatus) (*ArtistTours, error) {
	var tours []models.Tour
	var err error
	if status == nil {
		tours, err = cached(ctx, s.cache, session, cache.ArtistTours, func(ctx context.Context) ([]models.Tour, error) {
			return s.ledger.GetArtistTours(ctx, session, session.Principal)
		})
	} else {
		tours, err = cached(ctx, s.cache, session, cache.FilteredTours, func(ctx context.Context) ([]models.Tour, error) {
			return s.ledger.GetFilteredTours(ctx, session, session.Principal, status)
		}, status)
	}
	if err != nil {
		if ledger.IsUnavailable(err) {
			return &ArtistTours{Tours: []TourRow{}}, nil
		}
		return nil, err
	}

	summary, err := s.Summary(ctx, session)
	if err != nil && !ledger.IsUnavailable(err) {
		return nil, err
	}
	return &ArtistTours{Tours: tourRows(tours), Summary: summary, Available: true}, nil
}

func (s *TourService) Summary(ctx context.Context, session ledger.Session) (*models.TourSummary, error) {
	return cached(ctx, s.cache, session, cache.TourSummary, func(ctx context.Context) (*models.TourSummary, error) {
		return s.ledger.GetTourSummary(ctx, session, session.Principal)
	})
}

func (s *TourService) Create(ctx context.Context, session ledger.Session, req *TourRequest) (*models.Tour, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	tour := buildTour(session, utils.NewResourceID("tour"), req)
	if err := s.ledger.AddTour(ctx, session, tour); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.TourMutation...)
	logMutation(session, "add_tour", tour.ID)
	return &tour, nil
}

func (s *TourService) Update(ctx context.Context, session ledger.Session, tourID string, req *TourRequest) (*models.Tour, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	tour := buildTour(session, tourID, req)
	if err := s.ledger.UpdateTour(ctx, session, tour); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.TourMutation...)
	logMutation(session, "update_tour", tourID)
	return &tour, nil
}

func (s *TourService) Delete(ctx context.Context, session ledger.Session, tourID string) error {
	if err := s.ledger.DeleteTour(ctx, session, tourID); err != nil {
		return err
	}

	s.cache.Invalidate(cache.TourMutation...)
	logMutation(session, "delete_tour", tourID)
	return nil
}

func buildTour(session ledger.Session, id string, req *TourRequest) models.Tour {
	return models.Tour{
		ID:                    id,
		Artist:                session.Principal,
		VenueName:             req.VenueName,
		TourType:              req.TourType,
		Status:                req.Status,
		Location:              req.Location,
		Date:                  req.Date.UnixNano(),
		TicketSales:           req.TicketSales,
		TicketSalesPercentage: req.TicketSalesPercentage,
		MerchRevenue:          req.MerchRevenue,
	}
}

func tourRows(tours []models.Tour) []TourRow {
	rows := make([]TourRow, 0, len(tours))
	for _, t := range tours {
		rows = append(rows, TourRow{
			Tour:          t,
			TourTypeLabel: t.TourType.Label(),
			StatusLabel:   t.Status.Label(),
			StatusVariant: t.Status.Color(),
			DateDisplay:   time.Unix(0, t.Date).UTC().Format("Jan 2, 2006"),
		})
	}
	return rows
}
