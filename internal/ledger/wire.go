// internal/ledger/wire.go
package ledger

import (
	"github.com/resona/resona-api/internal/models"
)

// Wire shapes as exchanged with the ledger. Integers are BigInt and enums are
// tagged variants; everything is narrowed to models types before leaving this package.

type wireUserProfile struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Role    Variant `json:"role"`
	AppRole Variant `json:"appRole"`
	HubID   *string `json:"hubId,omitempty"`
}

type wireProduct struct {
	ID                string   `json:"id"`
	Artist            string   `json:"artist"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             BigInt   `json:"price"`
	Inventory         BigInt   `json:"inventory"`
	Images            []Blob   `json:"images"`
	ProductType       Variant  `json:"productType"`
	Blockchain        *Variant `json:"blockchain,omitempty"`
	RoyaltyPercentage *BigInt  `json:"royaltyPercentage,omitempty"`
	UnlockableContent *string  `json:"unlockableContent,omitempty"`
	Supply            *BigInt  `json:"supply,omitempty"`
	SKU               *string  `json:"sku,omitempty"`
	ShippingDetails   *string  `json:"shippingDetails,omitempty"`
	MintCertificate   bool     `json:"mintCertificate"`
	AttachNfcQrTag    bool     `json:"attachNfcQrTag"`
	AuthenticityLink  *string  `json:"authenticityLink,omitempty"`
}

type wireCertificate struct {
	ID               string  `json:"id"`
	ProductID        string  `json:"productId"`
	ArtistID         string  `json:"artistId"`
	MetadataHash     string  `json:"metadataHash"`
	Timestamp        BigInt  `json:"timestamp"`
	Version          BigInt  `json:"version"`
	Blockchain       Variant `json:"blockchain"`
	AuthenticityLink string  `json:"authenticityLink"`
}

type wireVerification struct {
	Product     *wireProduct     `json:"product,omitempty"`
	Certificate *wireCertificate `json:"certificate,omitempty"`
}

type wireOrder struct {
	ID          string  `json:"id"`
	Buyer       string  `json:"buyer"`
	ProductID   string  `json:"productId"`
	Quantity    BigInt  `json:"quantity"`
	Status      Variant `json:"status"`
	AssignedHub *string `json:"assignedHub,omitempty"`
	CreatedAt   BigInt  `json:"createdAt"`
	UpdatedAt   BigInt  `json:"updatedAt"`
}

type wireOrderFilter struct {
	Status     *Variant `json:"status,omitempty"`
	StartDate  *BigInt  `json:"startDate,omitempty"`
	EndDate    *BigInt  `json:"endDate,omitempty"`
	Hub        *string  `json:"hub,omitempty"`
	SearchTerm *string  `json:"searchTerm,omitempty"`
}

type wireOrderSummary struct {
	TotalOrders  BigInt `json:"totalOrders"`
	InProduction BigInt `json:"inProduction"`
	Shipped      BigInt `json:"shipped"`
	Delivered    BigInt `json:"delivered"`
	Urgent       BigInt `json:"urgent"`
	Pending      BigInt `json:"pending"`
}

type wireHub struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Location     models.Location `json:"location"`
	Capacity     BigInt          `json:"capacity"`
	Status       Variant         `json:"status"`
	BusinessInfo string          `json:"businessInfo"`
	ContactInfo  string          `json:"contactInfo"`
	Services     string          `json:"services"`
	CreatedAt    BigInt          `json:"createdAt"`
	UpdatedAt    BigInt          `json:"updatedAt"`
}

type wireHubApplication struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Location     models.Location `json:"location"`
	Capacity     BigInt          `json:"capacity"`
	BusinessInfo string          `json:"businessInfo"`
	ContactInfo  string          `json:"contactInfo"`
	Services     string          `json:"services"`
}

type wirePayment struct {
	ID             string `json:"id"`
	OrderID        string `json:"orderId"`
	ArtistAmount   BigInt `json:"artistAmount"`
	HubAmount      BigInt `json:"hubAmount"`
	PlatformAmount BigInt `json:"platformAmount"`
	TotalAmount    BigInt `json:"totalAmount"`
	Timestamp      BigInt `json:"timestamp"`
}

type wireStripeConfiguration struct {
	APIKey        string `json:"apiKey"`
	WebhookSecret string `json:"webhookSecret"`
}

type wireArtistDashboardSummary struct {
	TotalSales           BigInt   `json:"totalSales"`
	TotalSalesChange     float64  `json:"totalSalesChange"`
	ActiveFans           BigInt   `json:"activeFans"`
	ActiveFansGrowth     float64  `json:"activeFansGrowth"`
	PendingOrders        BigInt   `json:"pendingOrders"`
	UrgentOrders         BigInt   `json:"urgentOrders"`
	MonthlyRevenue       BigInt   `json:"monthlyRevenue"`
	MonthlyRevenueGrowth float64  `json:"monthlyRevenueGrowth"`
	ProductsPublished    BigInt   `json:"productsPublished"`
	AverageOrderValue    float64  `json:"averageOrderValue"`
	CustomerSatisfaction float64  `json:"customerSatisfaction"`
	FulfillmentTime      float64  `json:"fulfillmentTime"`
	TopTracks            []string `json:"topTracks"`
	ActionItems          []string `json:"actionItems"`
	Announcements        []string `json:"announcements"`
}

type wireInventoryItem struct {
	ProductID   string  `json:"productId"`
	HubID       string  `json:"hubId"`
	Stock       BigInt  `json:"stock"`
	Pending     BigInt  `json:"pending"`
	Status      Variant `json:"status"`
	LastUpdated BigInt  `json:"lastUpdated"`
}

type wireInventorySummary struct {
	HubName    string          `json:"hubName"`
	Location   models.Location `json:"location"`
	Status     string          `json:"status"`
	InStock    BigInt          `json:"inStock"`
	Pending    BigInt          `json:"pending"`
	LowStock   BigInt          `json:"lowStock"`
	TotalUnits BigInt          `json:"totalUnits"`
}

type wireHubActivity struct {
	HubID        string  `json:"hubId"`
	ActivityType Variant `json:"activityType"`
	Timestamp    BigInt  `json:"timestamp"`
}

type wireLowStockAlert struct {
	ProductName string          `json:"productName"`
	HubLocation models.Location `json:"hubLocation"`
	Stock       BigInt          `json:"stock"`
	Threshold   BigInt          `json:"threshold"`
	LastUpdated BigInt          `json:"lastUpdated"`
}

type wireTour struct {
	ID                    string  `json:"id"`
	Artist                string  `json:"artist"`
	VenueName             string  `json:"venueName"`
	TourType              Variant `json:"tourType"`
	Status                Variant `json:"status"`
	Location              string  `json:"location"`
	Date                  BigInt  `json:"date"`
	TicketSales           BigInt  `json:"ticketSales"`
	TicketSalesPercentage float64 `json:"ticketSalesPercentage"`
	MerchRevenue          BigInt  `json:"merchRevenue"`
}

type wireTourSummary struct {
	TotalTours            BigInt  `json:"totalTours"`
	UpcomingShows         BigInt  `json:"upcomingShows"`
	TicketSales           BigInt  `json:"ticketSales"`
	TicketSalesPercentage float64 `json:"ticketSalesPercentage"`
	TotalMerchRevenue     BigInt  `json:"totalMerchRevenue"`
	AverageMerchPerShow   float64 `json:"averageMerchPerShow"`
}

// decode: wire -> models

func (d *decoder) userProfile(w wireUserProfile) models.UserProfile {
	return models.UserProfile{
		Name:    w.Name,
		Email:   w.Email,
		Role:    enum[models.UserRole](d, w.Role),
		AppRole: enum[models.AppRole](d, w.AppRole),
		HubID:   w.HubID,
	}
}

func (d *decoder) product(w wireProduct) models.Product {
	images := make([]string, 0, len(w.Images))
	for _, img := range w.Images {
		images = append(images, img.URL)
	}
	return models.Product{
		ID:                w.ID,
		Artist:            w.Artist,
		Name:              w.Name,
		Description:       w.Description,
		Price:             d.int(w.Price),
		Inventory:         d.int(w.Inventory),
		Images:            images,
		ProductType:       enum[models.ProductType](d, w.ProductType),
		Blockchain:        optEnum[models.Blockchain](d, w.Blockchain),
		RoyaltyPercentage: d.optInt(w.RoyaltyPercentage),
		UnlockableContent: w.UnlockableContent,
		Supply:            d.optInt(w.Supply),
		SKU:               w.SKU,
		ShippingDetails:   w.ShippingDetails,
		MintCertificate:   w.MintCertificate,
		AttachNfcQrTag:    w.AttachNfcQrTag,
		AuthenticityLink:  w.AuthenticityLink,
	}
}

func (d *decoder) products(ws []wireProduct) []models.Product {
	out := make([]models.Product, 0, len(ws))
	for _, w := range ws {
		out = append(out, d.product(w))
	}
	return out
}

func (d *decoder) certificate(w wireCertificate) models.Certificate {
	return models.Certificate{
		ID:               w.ID,
		ProductID:        w.ProductID,
		ArtistID:         w.ArtistID,
		MetadataHash:     w.MetadataHash,
		Timestamp:        d.int(w.Timestamp),
		Version:          d.int(w.Version),
		Blockchain:       enum[models.Blockchain](d, w.Blockchain),
		AuthenticityLink: w.AuthenticityLink,
	}
}

func (d *decoder) order(w wireOrder) models.Order {
	return models.Order{
		ID:          w.ID,
		Buyer:       w.Buyer,
		ProductID:   w.ProductID,
		Quantity:    d.int(w.Quantity),
		Status:      enum[models.OrderStatus](d, w.Status),
		AssignedHub: w.AssignedHub,
		CreatedAt:   d.int(w.CreatedAt),
		UpdatedAt:   d.int(w.UpdatedAt),
	}
}

func (d *decoder) orders(ws []wireOrder) []models.Order {
	out := make([]models.Order, 0, len(ws))
	for _, w := range ws {
		out = append(out, d.order(w))
	}
	return out
}

func (d *decoder) orderSummary(w wireOrderSummary) models.OrderSummary {
	return models.OrderSummary{
		TotalOrders:  d.int(w.TotalOrders),
		InProduction: d.int(w.InProduction),
		Shipped:      d.int(w.Shipped),
		Delivered:    d.int(w.Delivered),
		Urgent:       d.int(w.Urgent),
		Pending:      d.int(w.Pending),
	}
}

func (d *decoder) hub(w wireHub) models.Hub {
	return models.Hub{
		ID:           w.ID,
		Name:         w.Name,
		Location:     w.Location,
		Capacity:     d.int(w.Capacity),
		Status:       enum[models.HubStatus](d, w.Status),
		BusinessInfo: w.BusinessInfo,
		ContactInfo:  w.ContactInfo,
		Services:     w.Services,
		CreatedAt:    d.int(w.CreatedAt),
		UpdatedAt:    d.int(w.UpdatedAt),
	}
}

func (d *decoder) hubs(ws []wireHub) []models.Hub {
	out := make([]models.Hub, 0, len(ws))
	for _, w := range ws {
		out = append(out, d.hub(w))
	}
	return out
}

func (d *decoder) payment(w wirePayment) models.Payment {
	return models.Payment{
		ID:             w.ID,
		OrderID:        w.OrderID,
		ArtistAmount:   d.int(w.ArtistAmount),
		HubAmount:      d.int(w.HubAmount),
		PlatformAmount: d.int(w.PlatformAmount),
		TotalAmount:    d.int(w.TotalAmount),
		Timestamp:      d.int(w.Timestamp),
	}
}

func (d *decoder) payments(ws []wirePayment) []models.Payment {
	out := make([]models.Payment, 0, len(ws))
	for _, w := range ws {
		out = append(out, d.payment(w))
	}
	return out
}

func (d *decoder) artistDashboardSummary(w wireArtistDashboardSummary) models.ArtistDashboardSummary {
	return models.ArtistDashboardSummary{
		TotalSales:           d.int(w.TotalSales),
		TotalSalesChange:     w.TotalSalesChange,
		ActiveFans:           d.int(w.ActiveFans),
		ActiveFansGrowth:     w.ActiveFansGrowth,
		PendingOrders:        d.int(w.PendingOrders),
		UrgentOrders:         d.int(w.UrgentOrders),
		MonthlyRevenue:       d.int(w.MonthlyRevenue),
		MonthlyRevenueGrowth: w.MonthlyRevenueGrowth,
		ProductsPublished:    d.int(w.ProductsPublished),
		AverageOrderValue:    w.AverageOrderValue,
		CustomerSatisfaction: w.CustomerSatisfaction,
		FulfillmentTime:      w.FulfillmentTime,
		TopTracks:            w.TopTracks,
		ActionItems:          w.ActionItems,
		Announcements:        w.Announcements,
	}
}

func (d *decoder) inventoryItem(w wireInventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ProductID:   w.ProductID,
		HubID:       w.HubID,
		Stock:       d.int(w.Stock),
		Pending:     d.int(w.Pending),
		Status:      enum[models.InventoryStatus](d, w.Status),
		LastUpdated: d.int(w.LastUpdated),
	}
}

func (d *decoder) inventoryItems(ws []wireInventoryItem) []models.InventoryItem {
	out := make([]models.InventoryItem, 0, len(ws))
	for _, w := range ws {
		out = append(out, d.inventoryItem(w))
	}
	return out
}

func (d *decoder) inventorySummary(w wireInventorySummary) models.InventorySummary {
	return models.InventorySummary{
		HubName:    w.HubName,
		Location:   w.Location,
		Status:     w.Status,
		InStock:    d.int(w.InStock),
		Pending:    d.int(w.Pending),
		LowStock:   d.int(w.LowStock),
		TotalUnits: d.int(w.TotalUnits),
	}
}

func (d *decoder) hubActivity(w wireHubActivity) models.HubActivity {
	return models.HubActivity{
		HubID:        w.HubID,
		ActivityType: enum[models.HubActivityType](d, w.ActivityType),
		Value:        d.optInt(w.ActivityType.Value),
		Timestamp:    d.int(w.Timestamp),
	}
}

func (d *decoder) lowStockAlert(w wireLowStockAlert) models.LowStockAlert {
	return models.LowStockAlert{
		ProductName: w.ProductName,
		HubLocation: w.HubLocation,
		Stock:       d.int(w.Stock),
		Threshold:   d.int(w.Threshold),
		LastUpdated: d.int(w.LastUpdated),
	}
}

func (d *decoder) tour(w wireTour) models.Tour {
	return models.Tour{
		ID:                    w.ID,
		Artist:                w.Artist,
		VenueName:             w.VenueName,
		TourType:              enum[models.TourType](d, w.TourType),
		Status:                enum[models.TourStatus](d, w.Status),
		Location:              w.Location,
		Date:                  d.int(w.Date),
		TicketSales:           d.int(w.TicketSales),
		TicketSalesPercentage: w.TicketSalesPercentage,
		MerchRevenue:          d.int(w.MerchRevenue),
	}
}

func (d *decoder) tours(ws []wireTour) []models.Tour {
	out := make([]models.Tour, 0, len(ws))
	for _, w := range ws {
		out = append(out, d.tour(w))
	}
	return out
}

func (d *decoder) tourSummary(w wireTourSummary) models.TourSummary {
	return models.TourSummary{
		TotalTours:            d.int(w.TotalTours),
		UpcomingShows:         d.int(w.UpcomingShows),
		TicketSales:           d.int(w.TicketSales),
		TicketSalesPercentage: w.TicketSalesPercentage,
		TotalMerchRevenue:     d.int(w.TotalMerchRevenue),
		AverageMerchPerShow:   w.AverageMerchPerShow,
	}
}

// encode: models -> wire

func encodeUserProfile(p models.UserProfile) wireUserProfile {
	role := p.Role
	if role == "" {
		role = models.UserRoleUser
	}
	return wireUserProfile{
		Name:    p.Name,
		Email:   p.Email,
		Role:    Tag(string(role)),
		AppRole: Tag(string(p.AppRole)),
		HubID:   p.HubID,
	}
}

func encodeProduct(p models.Product) wireProduct {
	images := make([]Blob, 0, len(p.Images))
	for _, url := range p.Images {
		images = append(images, Blob{URL: url})
	}
	return wireProduct{
		ID:                p.ID,
		Artist:            p.Artist,
		Name:              p.Name,
		Description:       p.Description,
		Price:             NewBigInt(p.Price),
		Inventory:         NewBigInt(p.Inventory),
		Images:            images,
		ProductType:       Tag(string(p.ProductType)),
		Blockchain:        optTag(p.Blockchain),
		RoyaltyPercentage: optBigInt(p.RoyaltyPercentage),
		UnlockableContent: p.UnlockableContent,
		Supply:            optBigInt(p.Supply),
		SKU:               p.SKU,
		ShippingDetails:   p.ShippingDetails,
		MintCertificate:   p.MintCertificate,
		AttachNfcQrTag:    p.AttachNfcQrTag,
		AuthenticityLink:  p.AuthenticityLink,
	}
}

func encodeCertificate(c models.Certificate) wireCertificate {
	return wireCertificate{
		ID:               c.ID,
		ProductID:        c.ProductID,
		ArtistID:         c.ArtistID,
		MetadataHash:     c.MetadataHash,
		Timestamp:        NewBigInt(c.Timestamp),
		Version:          NewBigInt(c.Version),
		Blockchain:       Tag(string(c.Blockchain)),
		AuthenticityLink: c.AuthenticityLink,
	}
}

func encodeOrder(o models.Order) wireOrder {
	status := o.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	return wireOrder{
		ID:          o.ID,
		Buyer:       o.Buyer,
		ProductID:   o.ProductID,
		Quantity:    NewBigInt(o.Quantity),
		Status:      Tag(string(status)),
		AssignedHub: o.AssignedHub,
		CreatedAt:   NewBigInt(o.CreatedAt),
		UpdatedAt:   NewBigInt(o.UpdatedAt),
	}
}

func encodeOrderFilter(f models.OrderFilter) wireOrderFilter {
	return wireOrderFilter{
		Status:     optTag(f.Status),
		StartDate:  optBigInt(f.StartDate),
		EndDate:    optBigInt(f.EndDate),
		Hub:        f.Hub,
		SearchTerm: f.SearchTerm,
	}
}

func encodeHub(h models.Hub) wireHub {
	return wireHub{
		ID:           h.ID,
		Name:         h.Name,
		Location:     h.Location,
		Capacity:     NewBigInt(h.Capacity),
		Status:       Tag(string(h.Status)),
		BusinessInfo: h.BusinessInfo,
		ContactInfo:  h.ContactInfo,
		Services:     h.Services,
		CreatedAt:    NewBigInt(h.CreatedAt),
		UpdatedAt:    NewBigInt(h.UpdatedAt),
	}
}

func encodeHubApplication(id string, a models.HubApplication) wireHubApplication {
	return wireHubApplication{
		ID:           id,
		Name:         a.Name,
		Location:     a.Location,
		Capacity:     NewBigInt(a.Capacity),
		BusinessInfo: a.BusinessInfo,
		ContactInfo:  a.ContactInfo,
		Services:     a.Services,
	}
}

func encodeTour(t models.Tour) wireTour {
	return wireTour{
		ID:                    t.ID,
		Artist:                t.Artist,
		VenueName:             t.VenueName,
		TourType:              Tag(string(t.TourType)),
		Status:                Tag(string(t.Status)),
		Location:              t.Location,
		Date:                  NewBigInt(t.Date),
		TicketSales:           NewBigInt(t.TicketSales),
		TicketSalesPercentage: t.TicketSalesPercentage,
		MerchRevenue:          NewBigInt(t.MerchRevenue),
	}
}
