// internal/dashboard/hubs.go
package dashboard

import "github.com/resona/resona-api/internal/models"

// Hub actions. Reactivate is carried out by approving the hub again.
const (
	ActionApprove    = "approve"
	ActionReject     = "reject"
	ActionSuspend    = "suspend"
	ActionReactivate = "reactivate"
	ActionSubmit     = "submit"
	ActionDelete     = "delete"
)

type HubBadge struct {
	Label   string   `json:"label"`
	Color   string   `json:"color"`
	Actions []string `json:"actions"`
}

var hubActions = map[models.HubStatus][]string{
	models.HubStatusPendingApproval: {ActionApprove, ActionReject},
	models.HubStatusApproved:        {ActionSuspend},
	models.HubStatusSuspended:       {ActionReactivate},
	models.HubStatusDraft:           {ActionSubmit},
	models.HubStatusRejected:        {},
}

// HubDisplay maps a hub status to its badge and the actions to offer.
// The ledger decides whether an action is legal.
func HubDisplay(status models.HubStatus, admin bool) HubBadge {
	actions := append([]string{}, hubActions[status]...)
	if admin {
		actions = append(actions, ActionDelete)
	}
	return HubBadge{
		Label:   status.Label(),
		Color:   status.Color(),
		Actions: actions,
	}
}

type HubRow struct {
	models.Hub
	Display HubBadge `json:"display"`
}

func HubRows(hubs []models.Hub, admin bool) []HubRow {
	rows := make([]HubRow, 0, len(hubs))
	for _, h := range hubs {
		rows = append(rows, HubRow{Hub: h, Display: HubDisplay(h.Status, admin)})
	}
	return rows
}

// HubCounts backs the admin tab filters.
type HubCounts struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Suspended int `json:"suspended"`
	Draft     int `json:"draft"`
}

func HubStatusCounts(hubs []models.Hub) HubCounts {
	counts := HubCounts{All: len(hubs)}
	for _, h := range hubs {
		switch h.Status {
		case models.HubStatusPendingApproval:
			counts.Pending++
		case models.HubStatusApproved:
			counts.Approved++
		case models.HubStatusRejected:
			counts.Rejected++
		case models.HubStatusSuspended:
			counts.Suspended++
		case models.HubStatusDraft:
			counts.Draft++
		}
	}
	return counts
}

// FilterHubsByStatus returns every hub when status is nil.
func FilterHubsByStatus(hubs []models.Hub, status *models.HubStatus) []models.Hub {
	if status == nil {
		return hubs
	}
	result := make([]models.Hub, 0, len(hubs))
	for _, h := range hubs {
		if h.Status == *status {
			result = append(result, h)
		}
	}
	return result
}
