package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/socialnet-backend/internal/handlers/dto"
	"github.com/rafabene/socialnet-backend/internal/services"
)

// UserHandler lida com perfis e com o grafo social
type UserHandler struct {
	userService   *services.UserService
	socialService *services.SocialService
	errs          *ErrorResponder
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, socialService *services.SocialService, errs *ErrorResponder) *UserHandler {
	return &UserHandler{
		userService:   userService,
		socialService: socialService,
		errs:          errs,
	}
}

// ListUsers lista usuários ativos
//
//	@Summary	Lista usuários ativos
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page	query		int	false	"Página (padrão 1)"
//	@Param		limit	query		int	false	"Itens por página (padrão 50, máx. 100)"
//	@Success	200		{object}	dto.Response{data=[]dto.UserResponse}
//	@Router		/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.errs.BindError(c, err)
		return
	}

	page, err := h.userService.ListUsers(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginated(dto.ToUserResponses(page.Items), page.Total, page.Page, page.Pages))
}

// GetUser busca o perfil de um usuário
//
//	@Summary	Perfil de um usuário
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.Response{data=dto.UserResponse}
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	if principal(c).Is(user.ID) {
		c.JSON(http.StatusOK, dto.OK(dto.ToOwnUserResponse(user)))
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToUserResponse(user)))
}

// UpdateProfile atualiza o perfil do usuário autenticado
//
//	@Summary	Atualiza o próprio perfil
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.UpdateProfileRequest	true	"Campos do perfil"
//	@Success	200		{object}	dto.Response{data=dto.OwnUserResponse}
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.BindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), principal(c), services.UpdateProfileInput{
		Username:       req.Username,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	resp := dto.OK(dto.ToOwnUserResponse(user))
	resp.Message = dto.T(c, "success.profile_updated")
	c.JSON(http.StatusOK, resp)
}

// Follow segue um usuário
//
//	@Summary	Segue um usuário
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.Response
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id}/follow [post]
func (h *UserHandler) Follow(c *gin.Context) {
	target, err := h.socialService.Follow(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(dto.T(c, "success.followed", map[string]any{"Username": target.Username})))
}

// Unfollow deixa de seguir um usuário
//
//	@Summary	Deixa de seguir um usuário
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.Response
//	@Failure	400	{object}	dto.ErrorResponse
//	@Router		/users/{id}/unfollow [delete]
func (h *UserHandler) Unfollow(c *gin.Context) {
	target, err := h.socialService.Unfollow(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(dto.T(c, "success.unfollowed", map[string]any{"Username": target.Username})))
}

// Block bloqueia um usuário
//
//	@Summary	Bloqueia um usuário
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.Response
//	@Failure	400	{object}	dto.ErrorResponse
//	@Router		/users/{id}/block [post]
func (h *UserHandler) Block(c *gin.Context) {
	target, err := h.socialService.Block(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(dto.T(c, "success.blocked", map[string]any{"Username": target.Username})))
}

// Unblock desbloqueia um usuário
//
//	@Summary	Desbloqueia um usuário
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.Response
//	@Failure	400	{object}	dto.ErrorResponse
//	@Router		/users/{id}/unblock [delete]
func (h *UserHandler) Unblock(c *gin.Context) {
	if err := h.socialService.Unblock(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(dto.T(c, "success.unblocked")))
}
