package model

import "time"

type WonPrize struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	PrizeID          string    `json:"prize_id"`
	BoxID            string    `json:"box_id"`
	OrderID          string    `json:"order_id"`
	PrizeName        string    `json:"prize_name"`
	PrizeDescription string    `json:"prize_description"`
	PrizeImageURL    string    `json:"prize_image_url"`
	PrizeRarity      string    `json:"prize_rarity"`
	BoxName          string    `json:"box_name"`
	ObtainedAt       time.Time `json:"obtained_at"`
}

type GetMyPrizesRequest struct {
	Rarity string `json:"rarity"`
	BoxID  string `json:"box_id"`
	Begin  string `json:"begin"`
	End    string `json:"end"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetMyPrizesResponse struct {
	Prizes []WonPrize `json:"prizes"`
	Total  int64      `json:"total"`
}
