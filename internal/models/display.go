// internal/models/display.go
package models

// Badge classes used by the dashboards.
const (
	BadgeYellow = "bg-yellow-500/10 text-yellow-500 border-yellow-500/20"
	BadgeBlue   = "bg-blue-500/10 text-blue-500 border-blue-500/20"
	BadgePurple = "bg-purple-500/10 text-purple-500 border-purple-500/20"
	BadgeOrange = "bg-orange-500/10 text-orange-500 border-orange-500/20"
	BadgeGreen  = "bg-green-500/10 text-green-500 border-green-500/20"
	BadgeRed    = "bg-red-500/10 text-red-500 border-red-500/20"
	BadgeGray   = "bg-gray-500/10 text-gray-500 border-gray-500/20"

	unknownLabel = "Unknown"
)

type display struct {
	label string
	color string
}

var orderStatusDisplay = map[OrderStatus]display{
	OrderStatusPending:    {"PENDING", BadgeYellow},
	OrderStatusAssigned:   {"ASSIGNED", BadgeBlue},
	OrderStatusProcessing: {"IN PRODUCTION", BadgePurple},
	OrderStatusShipped:    {"SHIPPED", BadgeOrange},
	OrderStatusDelivered:  {"DELIVERED", BadgeGreen},
}

var orderStatusDescriptions = map[OrderStatus]string{
	OrderStatusPending:    "Your order is being processed",
	OrderStatusAssigned:   "Order assigned to fulfillment hub",
	OrderStatusProcessing: "Hub is preparing your order",
	OrderStatusShipped:    "Your order is on the way",
	OrderStatusDelivered:  "Order delivered successfully",
}

var hubStatusDisplay = map[HubStatus]display{
	HubStatusDraft:           {"Draft", BadgeBlue},
	HubStatusPendingApproval: {"Pending Approval", BadgeYellow},
	HubStatusApproved:        {"Approved", BadgeGreen},
	HubStatusRejected:        {"Rejected", BadgeRed},
	HubStatusSuspended:       {"Suspended", BadgeGray},
}

var inventoryStatusDisplay = map[InventoryStatus]display{
	InventoryStatusInStock:    {"In Stock", "text-green-500"},
	InventoryStatusPending:    {"Pending", "text-blue-500"},
	InventoryStatusLowStock:   {"Low Stock", "text-yellow-500"},
	InventoryStatusOutOfStock: {"Out of Stock", "text-red-500"},
}

var tourStatusDisplay = map[TourStatus]display{
	TourStatusUpcoming:  {"Upcoming", "default"},
	TourStatusCompleted: {"Completed", "secondary"},
	TourStatusCancelled: {"Cancelled", "destructive"},
}

var tourTypeLabels = map[TourType]string{
	TourTypeExclusiveDrop: "Exclusive Drop",
	TourTypeRegularShow:   "Regular Show",
	TourTypeFestival:      "Festival",
}

var productTypeLabels = map[ProductType]string{
	ProductTypePhysical: "Physical",
	ProductTypeNFT:      "NFT",
	ProductTypePhygital: "Phygital",
}

func (s OrderStatus) Label() string {
	if d, ok := orderStatusDisplay[s]; ok {
		return d.label
	}
	return unknownLabel
}

func (s OrderStatus) Color() string {
	if d, ok := orderStatusDisplay[s]; ok {
		return d.color
	}
	return BadgeGray
}

// Description is the buyer-facing sentence for the status.
func (s OrderStatus) Description() string {
	return orderStatusDescriptions[s]
}

func (s HubStatus) Label() string {
	if d, ok := hubStatusDisplay[s]; ok {
		return d.label
	}
	return unknownLabel
}

func (s HubStatus) Color() string {
	if d, ok := hubStatusDisplay[s]; ok {
		return d.color
	}
	return BadgeGray
}

func (s InventoryStatus) Label() string {
	if d, ok := inventoryStatusDisplay[s]; ok {
		return d.label
	}
	return unknownLabel
}

func (s InventoryStatus) Color() string {
	if d, ok := inventoryStatusDisplay[s]; ok {
		return d.color
	}
	return "text-gray-500"
}

// NeedsAttention reports whether the status warrants a warning icon.
func (s InventoryStatus) NeedsAttention() bool {
	return s == InventoryStatusLowStock || s == InventoryStatusOutOfStock
}

func (s TourStatus) Label() string {
	if d, ok := tourStatusDisplay[s]; ok {
		return d.label
	}
	return unknownLabel
}

// Color returns the badge variant for the status.
func (s TourStatus) Color() string {
	if d, ok := tourStatusDisplay[s]; ok {
		return d.color
	}
	return "outline"
}

func (t TourType) Label() string {
	if label, ok := tourTypeLabels[t]; ok {
		return label
	}
	return unknownLabel
}

func (t ProductType) Label() string {
	if label, ok := productTypeLabels[t]; ok {
		return label
	}
	return unknownLabel
}
