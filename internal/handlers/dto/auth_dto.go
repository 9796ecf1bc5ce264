package dto

import (
	"time"

	"github.com/rafabene/socialnet-backend/internal/services"
)

// RegisterRequest representa a requisição de cadastro
type RegisterRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse é o token emitido junto com o usuário autenticado
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      OwnUserResponse `json:"user"`
}

// ToAuthResponse converte o resultado do AuthService
func ToAuthResponse(result *services.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      ToOwnUserResponse(result.User),
	}
}
