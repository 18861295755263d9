package dto

type SignInRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type SignUpRequest struct {
	Email       string `form:"email"`
	Password    string `form:"password"`
	DisplayName string `form:"display_name"`
}

type AddItemRequest struct {
	ProductID string `form:"product_id"`
	Next      string `form:"next"`
}

type GateRetryRequest struct {
	Next string `form:"next"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
