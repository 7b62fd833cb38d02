package model

type BoxSales struct {
	Box   Box   `json:"box"`
	Sales int64 `json:"sales"`
}

type GetTopBoxesRequest struct {
	Limit int `json:"limit"`
}

type GetTopBoxesResponse struct {
	Boxes []BoxSales `json:"boxes"`
}
