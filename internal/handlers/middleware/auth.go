package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/errors"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
)

const (
	// PrincipalContextKey guarda o entities.Principal autenticado
	PrincipalContextKey = "principal"
	// CurrentUserContextKey guarda o *entities.User carregado do banco
	CurrentUserContextKey = "current_user"
)

// PrincipalResolver carrega o usuário dono do token
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID string) (*entities.User, error)
}

// ErrorRenderer escreve a resposta de erro e aborta a requisição
type ErrorRenderer func(c *gin.Context, err error)

// AuthMiddleware valida o bearer token e resolve o usuário a cada requisição,
// então papel e status ativo refletem sempre o estado atual do banco
type AuthMiddleware struct {
	tokens ports.TokenManager
	users  PrincipalResolver
	render ErrorRenderer
	logger ports.Logger
}

// NewAuthMiddleware cria um novo AuthMiddleware
func NewAuthMiddleware(tokens ports.TokenManager, users PrincipalResolver, render ErrorRenderer, logger ports.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		render: render,
		logger: logger,
	}
}

// RequireAuth exige um token válido no header Authorization
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return m.authenticate(false)
}

// RequireAuthOrQuery aceita também ?token=, usado pelo websocket
// (browsers não enviam headers customizados no handshake)
func (m *AuthMiddleware) RequireAuthOrQuery() gin.HandlerFunc {
	return m.authenticate(true)
}

func (m *AuthMiddleware) authenticate(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && allowQuery {
			token = c.Query("token")
		}
		if token == "" {
			m.render(c, errors.ErrMissingToken)
			return
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			m.logger.Debug("token rejected", "error", err, "path", c.Request.URL.Path)
			m.render(c, errors.ErrInvalidToken)
			return
		}

		user, err := m.users.ResolvePrincipal(c.Request.Context(), claims.UserID)
		if err != nil {
			m.render(c, err)
			return
		}

		c.Set(PrincipalContextKey, user.Principal())
		c.Set(CurrentUserContextKey, user)
		c.Next()
	}
}

// RequireRole exige papel mínimo; usar depois de RequireAuth
func (m *AuthMiddleware) RequireRole(min entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			m.render(c, errors.ErrUnauthorized)
			return
		}
		if !principal.Role.AtLeast(min) {
			m.render(c, errors.ErrInsufficientRole)
			return
		}
		c.Next()
	}
}

// GetPrincipal retorna o principal autenticado da requisição
func GetPrincipal(c *gin.Context) (entities.Principal, bool) {
	v, ok := c.Get(PrincipalContextKey)
	if !ok {
		return entities.Principal{}, false
	}
	p, ok := v.(entities.Principal)
	return p, ok
}

// GetCurrentUser retorna o usuário carregado pelo RequireAuth
func GetCurrentUser(c *gin.Context) (*entities.User, bool) {
	v, ok := c.Get(CurrentUserContextKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entities.User)
	return u, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
