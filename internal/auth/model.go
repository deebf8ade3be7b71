package auth

// SignupRequest is the request body for signup
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin student"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupResponse acknowledges a created user
type SignupResponse struct {
	Msg    string `json:"msg"`
	UserID int    `json:"userId"`
}

// LoginResponse carries the signed access token
type LoginResponse struct {
	Token string `json:"token"`
}

// WhoAmIResponse echoes the verified claims (diagnostic endpoint)
type WhoAmIResponse struct {
	User ClaimsInfo `json:"user"`
}

type ClaimsInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
