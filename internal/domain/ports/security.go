package ports

//go:generate mockgen -source=security.go -destination=mocks/mock_security.go -package=mocks

import (
	"time"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
)

// PasswordHasher gera e verifica hashes de senha
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenClaims são os dados extraídos de um access token válido
type TokenClaims struct {
	UserID    string
	Role      entities.Role
	ExpiresAt time.Time
}

// TokenManager emite e valida access tokens
type TokenManager interface {
	Issue(user *entities.User) (string, time.Time, error)
	Parse(token string) (*TokenClaims, error)
}
