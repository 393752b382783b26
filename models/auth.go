package models

// LoginStatusSuccess is the status value the backend sends on a good login.
const LoginStatusSuccess = "SUCCESS"

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Status  string `json:"status"`
	Token   string `json:"token"`
	Role    string `json:"role"`
	UserID  ID     `json:"userId"`
	Message string `json:"message"`
}
