package model

type Prize struct {
	ID          string `json:"id"`
	BoxID       string `json:"box_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Probability string `json:"probability"`
	Rarity      string `json:"rarity"`
}

type Box struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Price       string  `json:"price"`
	Stock       int     `json:"stock"`
	Sales       int     `json:"sales"`
	Status      string  `json:"status"`
	Prizes      []Prize `json:"prizes,omitempty"`
}

type GetBoxRequest struct {
	ID string `json:"id"`
}

type GetBoxResponse struct {
	Box Box `json:"box"`
}

type GetBoxesRequest struct {
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetBoxesResponse struct {
	Boxes []Box `json:"boxes"`
}

type CreateBoxRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
}

type CreateBoxResponse struct {
	ID string `json:"id"`
}

type UpdateBoxRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	Status      string `json:"status"`
}

type UpdateBoxResponse struct{}

type CreatePrizeRequest struct {
	BoxID       string `json:"box_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Probability string `json:"probability"`
	Rarity      string `json:"rarity"`
}

type CreatePrizeResponse struct {
	ID string `json:"id"`
}
