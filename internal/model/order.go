package model

import "time"

type Order struct {
	ID            string     `json:"id"`
	UserID        int64      `json:"user_id"`
	ProductID     string     `json:"product_id"`
	ProductName   string     `json:"product_name,omitempty"`
	Quantity      int        `json:"quantity"`
	PointsCharged int64      `json:"points_charged"`
	Status        string     `json:"status"`
	OrderedAt     time.Time  `json:"ordered_at"`
	CanceledAt    *time.Time `json:"canceled_at,omitempty"`
}

type CreateOrderRequest struct {
	UserID    int64  `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderResponse struct {
	Order           Order              `json:"order"`
	Consumptions    []PointConsumption `json:"consumptions"`
	RemainingPoints int64              `json:"remaining_points"`
}

type CancelOrderRequest struct {
	OrderID string `json:"order_id"`
}

type CancelOrderResponse struct {
	Order          Order  `json:"order"`
	RefundedPoints int64  `json:"refunded_points"`
	RefundUnitID   string `json:"refund_unit_id"`
}

type UpdateOrderStatusRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type UpdateOrderStatusResponse struct {
	Order Order `json:"order"`
}

type GetOrdersRequest struct {
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetOrdersResponse struct {
	Orders []Order `json:"orders"`
}

type GetMyOrdersRequest struct {
	UserID int64  `json:"user_id"`
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetMyOrdersResponse struct {
	Orders []Order `json:"orders"`
}
