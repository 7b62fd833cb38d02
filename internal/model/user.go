package model

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Status  string `json:"status"`
	Balance string `json:"balance"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type DepositRequest struct {
	UserID string `json:"user_id"`
	Amount string `json:"amount"`
}

type DepositResponse struct {
	User User `json:"user"`
}
