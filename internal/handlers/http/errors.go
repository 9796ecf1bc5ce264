package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/errors"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/handlers/dto"
	"github.com/rafabene/socialnet-backend/internal/handlers/middleware"
)

// ErrorResponder traduz erros em respostas {success:false, message} + RFC 7807
type ErrorResponder struct {
	logger ports.Logger
}

// NewErrorResponder cria um novo ErrorResponder
func NewErrorResponder(logger ports.Logger) *ErrorResponder {
	return &ErrorResponder{logger: logger}
}

// Respond escreve a resposta de erro e aborta a cadeia de handlers.
// Erros de domínio usam o status e a mensagem traduzida do próprio erro;
// qualquer outro erro é logado e vira 500 genérico.
func (r *ErrorResponder) Respond(c *gin.Context, err error) {
	if de, ok := errors.AsDomainError(err); ok {
		response := dto.NewErrorResponseI18n(c, de.ProblemType(), "title."+string(de.Kind), de.Code, de.Status)
		c.AbortWithStatusJSON(de.Status, response)
		return
	}

	_ = c.Error(err)
	r.logger.Error("unhandled error",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
}

// BindError responde 400 para corpo ou query inválidos
func (r *ErrorResponder) BindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.BindingErrorResponseI18n(c, err))
}

// principal lê o usuário autenticado colocado no contexto pelo AuthMiddleware
func principal(c *gin.Context) entities.Principal {
	p, _ := middleware.GetPrincipal(c)
	return p
}
