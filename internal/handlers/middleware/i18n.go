package middleware

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/socialnet-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=pt-BR (override explícito)
// 2. Accept-Language header, respeitando os pesos q
// 3. Idioma padrão (fallback)
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.resolve(c.Query("lang"))

		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)

		c.Next()
	}
}

type weightedLang struct {
	tag    string
	weight float64
}

// parseAcceptLanguage analisa o header Accept-Language e retorna o melhor idioma suportado
// Exemplo: "fr;q=0.3,pt-BR;q=0.9,en;q=0.8" -> "pt-BR"
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	if acceptLang == "" {
		return ""
	}

	var candidates []weightedLang
	for _, part := range strings.Split(acceptLang, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		tag, weight := part, 1.0
		if idx := strings.Index(part, ";"); idx != -1 {
			tag = strings.TrimSpace(part[:idx])
			if q, ok := strings.CutPrefix(strings.TrimSpace(part[idx+1:]), "q="); ok {
				if w, err := strconv.ParseFloat(q, 64); err == nil {
					weight = w
				}
			}
		}
		if weight <= 0 {
			continue
		}
		candidates = append(candidates, weightedLang{tag: tag, weight: weight})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})

	for _, cand := range candidates {
		if lang := m.resolve(cand.tag); lang != "" {
			return lang
		}
	}

	return ""
}

// resolve casa a tag pedida com um idioma suportado.
// Tenta a tag exata, depois a base (pt-PT -> pt) e por fim
// uma variante regional da mesma base (pt -> pt-BR).
func (m *I18nMiddleware) resolve(tag string) string {
	if tag == "" {
		return ""
	}

	if m.i18nService.IsLanguageSupported(tag) {
		return tag
	}

	base, _, _ := strings.Cut(tag, "-")
	if m.i18nService.IsLanguageSupported(base) {
		return base
	}

	supported := m.i18nService.GetSupportedLanguages()
	sort.Strings(supported)
	for _, lang := range supported {
		if strings.EqualFold(strings.SplitN(lang, "-", 2)[0], base) {
			return lang
		}
	}

	return ""
}
