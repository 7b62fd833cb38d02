package model

type BuyBoxRequest struct {
	BoxID    string `json:"box_id"`
	Quantity int    `json:"quantity"`
}

type BuyBoxResponse struct {
	Order  Order      `json:"order"`
	Prizes []WonPrize `json:"prizes"`
	User   User       `json:"user"`
}
