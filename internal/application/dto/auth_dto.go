package dto

// LoginRequest operator credentials.
type LoginRequest struct {
	Operator string `json:"operator"`
	Password string `json:"password"`
}

// LoginResponse signed JWT for subsequent requests.
type LoginResponse struct {
	Token    string `json:"token"`
	Operator string `json:"operator"`
}
