// internal/models/order.go
package models

type Order struct {
	ID          string      `json:"id"`
	Buyer       string      `json:"buyer"`
	ProductID   string      `json:"product_id"`
	Quantity    int64       `json:"quantity"`
	Status      OrderStatus `json:"status"`
	AssignedHub *string     `json:"assigned_hub,omitempty"`
	CreatedAt   int64       `json:"created_at"`
	UpdatedAt   int64       `json:"updated_at"`
}

// OrderFilter narrows an order list. Nil fields match every order.
type OrderFilter struct {
	Status     *OrderStatus `json:"status,omitempty"`
	StartDate  *int64       `json:"start_date,omitempty"`
	EndDate    *int64       `json:"end_date,omitempty"`
	Hub        *string      `json:"hub,omitempty"`
	SearchTerm *string      `json:"search_term,omitempty"`
}

func (f OrderFilter) IsEmpty() bool {
	return f.Status == nil && f.StartDate == nil && f.EndDate == nil && f.Hub == nil &&
		(f.SearchTerm == nil || *f.SearchTerm == "")
}

type OrderSummary struct {
	TotalOrders  int64 `json:"total_orders"`
	InProduction int64 `json:"in_production"`
	Shipped      int64 `json:"shipped"`
	Delivered    int64 `json:"delivered"`
	Urgent       int64 `json:"urgent"`
	Pending      int64 `json:"pending"`
}
