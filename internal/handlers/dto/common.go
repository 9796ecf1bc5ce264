package dto

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/moogar0880/problems"
)

// DefaultBaseURL é usado quando API_BASE_URL não foi configurada
const DefaultBaseURL = "http://localhost:5000"

// BaseURLContextKey guarda a base das URIs de problema no contexto do Gin
const BaseURLContextKey = "base_url"

// Response é o envelope de sucesso da API
type Response struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
	LikesCount *int   `json:"likesCount,omitempty"`
	Count      *int   `json:"count,omitempty"`
	Total      *int64 `json:"total,omitempty"`
	Page       *int   `json:"page,omitempty"`
	Pages      *int   `json:"pages,omitempty"`
}

// PaginationQuery representa ?page=&limit=
type PaginationQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// ErrorResponse combina o envelope {success:false, message} com os campos
// RFC 7807 (Problem Details for HTTP APIs)
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	*problems.Problem
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// OK monta uma resposta de sucesso com dados
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Message monta uma resposta de sucesso só com mensagem
func Message(message string) Response {
	return Response{Success: true, Message: message}
}

// List monta uma resposta de listagem com count
func List[T any](items []T) Response {
	count := len(items)
	return Response{Success: true, Data: items, Count: &count}
}

// Paginated monta uma resposta de listagem com metadados de paginação
func Paginated[T any](items []T, total int64, page, pages int) Response {
	count := len(items)
	return Response{
		Success: true,
		Data:    items,
		Count:   &count,
		Total:   &total,
		Page:    &page,
		Pages:   &pages,
	}
}

// Likes monta a resposta de like/unlike
func Likes(message string, likesCount int) Response {
	return Response{Success: true, Message: message, LikesCount: &likesCount}
}

// NewErrorResponse cria uma resposta de erro RFC 7807 já traduzida
func NewErrorResponse(c *gin.Context, problemType, title string, status int, detail string) ErrorResponse {
	baseURL := c.GetString(BaseURLContextKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	problem := problems.NewDetailedProblem(status, detail)
	problem.Type = strings.TrimSuffix(baseURL, "/") + problemType
	problem.Title = title
	if c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}

	return ErrorResponse{
		Success: false,
		Message: detail,
		Problem: problem,
	}
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]any) ErrorResponse {
	return NewErrorResponse(c, problemType, T(c, titleKey), status, T(c, detailKey, params...))
}

// ValidationErrorResponseI18n cria uma resposta 400 com a lista de campos inválidos
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := NewErrorResponseI18n(c, "/problems/validation-error", "title.validation", "error.validation", 400)
	response.Errors = validationErrors
	if len(validationErrors) > 0 {
		response.Message = validationErrors[0].Message
	}
	return response
}

// BindingErrorResponseI18n traduz o erro devolvido por ShouldBind*.
// Erros do validator viram lista de campos; JSON malformado vira bad request.
func BindingErrorResponseI18n(c *gin.Context, err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		return ValidationErrorResponseI18n(c, ToValidationErrors(c, verrs))
	}
	return NewErrorResponseI18n(c, "/problems/bad-request", "title.bad_request", "error.invalid_body", 400)
}

// ToValidationErrors converte validator.ValidationErrors em mensagens traduzidas
func ToValidationErrors(c *gin.Context, verrs validator.ValidationErrors) []ValidationError {
	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		key := "validation." + fe.Tag()
		params := map[string]any{"Field": field, "Param": fe.Param()}

		message := T(c, key, params)
		if message == key {
			message = T(c, "validation.default", params)
		}

		out = append(out, ValidationError{
			Field:   field,
			Message: message,
			Tag:     fe.Tag(),
		})
	}
	return out
}

// NotFoundRouteResponseI18n cria a resposta 404 para rotas inexistentes
func NotFoundRouteResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(c, "/problems/not-found", "title.not_found", "error.route_not_found", 404)
}

// UnauthorizedErrorResponseI18n cria uma resposta de erro 401
func UnauthorizedErrorResponseI18n(c *gin.Context, detailKey string) ErrorResponse {
	return NewErrorResponseI18n(c, "/problems/unauthorized", "title.unauthorized", detailKey, 401)
}

// InternalErrorResponseI18n cria uma resposta de erro 500
func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(c, "/problems/internal-error", "title.internal", "error.internal", 500)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
