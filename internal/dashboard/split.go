// internal/dashboard/split.go
package dashboard

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/resona/resona-api/internal/models"
)

// Split is the documented revenue split in percent.
type Split struct {
	Artist   decimal.Decimal
	Hub      decimal.Decimal
	Platform decimal.Decimal
}

func NewSplit(artist, hub, platform float64) Split {
	return Split{
		Artist:   decimal.NewFromFloat(artist),
		Hub:      decimal.NewFromFloat(hub),
		Platform: decimal.NewFromFloat(platform),
	}
}

var DefaultSplit = NewSplit(70, 20, 10)

type Shares struct {
	Artist   int64 `json:"artist"`
	Hub      int64 `json:"hub"`
	Platform int64 `json:"platform"`
}

func (s Shares) Sum() int64 {
	return s.Artist + s.Hub + s.Platform
}

// ExpectedSplit divides total by the split. Hub and platform shares round
// down and the remainder goes to the artist.
func ExpectedSplit(total int64, split Split) Shares {
	t := decimal.NewFromInt(total)
	hub := t.Mul(split.Hub).Div(hundred).Floor().IntPart()
	platform := t.Mul(split.Platform).Div(hundred).Floor().IntPart()
	return Shares{
		Artist:   total - hub - platform,
		Hub:      hub,
		Platform: platform,
	}
}

// SplitViolation describes a payment whose shares disagree with the split.
type SplitViolation struct {
	PaymentID string   `json:"payment_id"`
	OrderID   string   `json:"order_id"`
	Total     int64    `json:"total"`
	Actual    Shares   `json:"actual"`
	Expected  Shares   `json:"expected"`
	Reasons   []string `json:"reasons"`
}

// VerifySplit checks that the shares add up to the total and that each share
// is within one cent of the expected split. It returns nil for a conforming payment.
func VerifySplit(p models.Payment, split Split) *SplitViolation {
	actual := Shares{Artist: p.ArtistAmount, Hub: p.HubAmount, Platform: p.PlatformAmount}
	expected := ExpectedSplit(p.TotalAmount, split)

	var reasons []string
	if actual.Sum() != p.TotalAmount {
		reasons = append(reasons, fmt.Sprintf("shares add up to %s but total is %s",
			FormatCurrency(actual.Sum()), FormatCurrency(p.TotalAmount)))
	}

	check := func(name string, amount, want int64, percent decimal.Decimal) {
		if amount-want > 1 || want-amount > 1 {
			reasons = append(reasons, fmt.Sprintf("%s share %s is not %s%% of %s",
				name, FormatCurrency(amount), percent.String(), FormatCurrency(p.TotalAmount)))
		}
	}
	check("artist", actual.Artist, expected.Artist, split.Artist)
	check("hub", actual.Hub, expected.Hub, split.Hub)
	check("platform", actual.Platform, expected.Platform, split.Platform)

	if len(reasons) == 0 {
		return nil
	}
	return &SplitViolation{
		PaymentID: p.ID,
		OrderID:   p.OrderID,
		Total:     p.TotalAmount,
		Actual:    actual,
		Expected:  expected,
		Reasons:   reasons,
	}
}

// AuditPayments reports every payment that violates the split.
func AuditPayments(payments []models.Payment, split Split) []SplitViolation {
	violations := []SplitViolation{}
	for _, p := range payments {
		if v := VerifySplit(p, split); v != nil {
			violations = append(violations, *v)
		}
	}
	return violations
}
