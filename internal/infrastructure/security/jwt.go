package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
)

var ErrInvalidToken = errors.New("invalid token")

// accessClaims são as claims do access token (sub = ID do usuário)
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager implementa ports.TokenManager com HS256
type JWTManager struct {
	secret []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// NewJWTManager cria um novo JWTManager
func NewJWTManager(secret, issuer string, expiry time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		expiry: expiry,
		now:    time.Now,
	}
}

var _ ports.TokenManager = (*JWTManager)(nil)

// Issue emite um access token para o usuário
func (m *JWTManager) Issue(user *entities.User) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.expiry)

	claims := accessClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Parse valida assinatura, emissor e validade do token
func (m *JWTManager) Parse(token string) (*ports.TokenClaims, error) {
	var claims accessClaims

	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &ports.TokenClaims{
		UserID:    claims.Subject,
		Role:      entities.Role(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
