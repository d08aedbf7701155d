package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"notblank,email,max=255"`
	Password string `json:"password" validate:"notblank,min=8,max=20"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

type MeResponse struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
