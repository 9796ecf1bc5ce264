package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/socialnet-backend/internal/handlers/dto"
	"github.com/rafabene/socialnet-backend/internal/handlers/middleware"
	"github.com/rafabene/socialnet-backend/internal/services"
)

// AuthHandler lida com cadastro, login e dados do usuário autenticado
type AuthHandler struct {
	authService *services.AuthService
	errs        *ErrorResponder
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService, errs *ErrorResponder) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		errs:        errs,
	}
}

// Register cadastra um novo usuário
//
//	@Summary	Cadastra um usuário
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.RegisterRequest	true	"Dados de cadastro"
//	@Success	201		{object}	dto.Response{data=dto.AuthResponse}
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.BindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	resp := dto.OK(dto.ToAuthResponse(result))
	resp.Message = dto.T(c, "success.registered")
	c.JSON(http.StatusCreated, resp)
}

// Login autentica por email e senha
//
//	@Summary	Autentica um usuário
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.LoginRequest	true	"Credenciais"
//	@Success	200		{object}	dto.Response{data=dto.AuthResponse}
//	@Failure	401		{object}	dto.ErrorResponse
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	resp := dto.OK(dto.ToAuthResponse(result))
	resp.Message = dto.T(c, "success.logged_in")
	c.JSON(http.StatusOK, resp)
}

// Me retorna o usuário autenticado
//
//	@Summary	Usuário autenticado
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.Response{data=dto.OwnUserResponse}
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	c.JSON(http.StatusOK, dto.OK(dto.ToOwnUserResponse(user)))
}
