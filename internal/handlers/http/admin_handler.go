package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/socialnet-backend/internal/handlers/dto"
	"github.com/rafabene/socialnet-backend/internal/services"
)

// AdminHandler expõe as rotas de moderação (admin e owner)
type AdminHandler struct {
	moderation *services.ModerationService
	errs       *ErrorResponder
}

// NewAdminHandler cria um novo AdminHandler
func NewAdminHandler(moderation *services.ModerationService, errs *ErrorResponder) *AdminHandler {
	return &AdminHandler{
		moderation: moderation,
		errs:       errs,
	}
}

// ListUsers lista todos os usuários, inclusive desativados
//
//	@Summary	Lista todos os usuários
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page	query		int	false	"Página"
//	@Param		limit	query		int	false	"Itens por página"
//	@Success	200		{object}	dto.Response{data=[]dto.UserResponse}
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.errs.BindError(c, err)
		return
	}

	page, err := h.moderation.ListAllUsers(c.Request.Context(), principal(c), q.Page, q.Limit)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginated(dto.ToUserResponses(page.Items), page.Total, page.Page, page.Pages))
}

// DeleteUser desativa uma conta
//
//	@Summary	Remove um usuário
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.Response
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.moderation.DeleteUser(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(dto.T(c, "success.user_deleted")))
}

// ListPosts lista todos os posts, inclusive removidos
//
//	@Summary	Lista todos os posts
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page	query		int	false	"Página"
//	@Param		limit	query		int	false	"Itens por página"
//	@Success	200		{object}	dto.Response{data=[]dto.PostResponse}
//	@Router		/admin/posts [get]
func (h *AdminHandler) ListPosts(c *gin.Context) {
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.errs.BindError(c, err)
		return
	}

	page, err := h.moderation.ListAllPosts(c.Request.Context(), principal(c), q.Page, q.Limit)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginated(dto.ToPostResponses(page.Items), page.Total, page.Page, page.Pages))
}

// DeletePost aplica o soft delete da moderação
//
//	@Summary	Remove um post (moderação)
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do post"
//	@Success	200	{object}	dto.Response{data=dto.PostResponse}
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/admin/posts/{id} [delete]
func (h *AdminHandler) DeletePost(c *gin.Context) {
	post, err := h.moderation.DeletePost(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	resp := dto.OK(dto.ToPostResponse(post))
	resp.Message = dto.T(c, "success.post_deleted")
	c.JSON(http.StatusOK, resp)
}

// RemoveLike remove a curtida de um usuário
//
//	@Summary	Remove a curtida de um usuário
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"ID do post"
//	@Param		userId	path		string	true	"ID do usuário"
//	@Success	200		{object}	dto.Response
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/admin/posts/{id}/likes/{userId} [delete]
func (h *AdminHandler) RemoveLike(c *gin.Context) {
	result, err := h.moderation.RemoveLike(c.Request.Context(), principal(c), c.Param("id"), c.Param("userId"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Likes(dto.T(c, "success.like_removed"), result.LikesCount))
}
