package model

import "time"

type Order struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	BoxID       string    `json:"box_id"`
	BoxName     string    `json:"box_name"`
	Quantity    int       `json:"quantity"`
	TotalAmount string    `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type GetMyOrdersRequest struct {
	Status string `json:"status"`
	BoxID  string `json:"box_id"`
	Begin  string `json:"begin"`
	End    string `json:"end"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetMyOrdersResponse struct {
	Orders []Order `json:"orders"`
	Total  int64   `json:"total"`
}
