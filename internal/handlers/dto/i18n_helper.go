package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/socialnet-backend/internal/handlers/middleware"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/i18n"
)

// T é um helper para traduzir mensagens no contexto do Gin
// Uso: dto.T(c, "success.followed", map[string]any{"Username": "bob"})
func T(c *gin.Context, key string, params ...map[string]any) string {
	service, ok := c.Value(middleware.I18nServiceContextKey).(*i18n.Service)
	if !ok {
		return key
	}
	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	if lang := c.GetString(middleware.LanguageContextKey); lang != "" {
		return lang
	}
	return "en"
}
