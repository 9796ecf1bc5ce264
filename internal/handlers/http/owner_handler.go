package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/socialnet-backend/internal/handlers/dto"
	"github.com/rafabene/socialnet-backend/internal/services"
)

// OwnerHandler expõe a gestão de admins
type OwnerHandler struct {
	moderation *services.ModerationService
	errs       *ErrorResponder
}

// NewOwnerHandler cria um novo OwnerHandler
func NewOwnerHandler(moderation *services.ModerationService, errs *ErrorResponder) *OwnerHandler {
	return &OwnerHandler{
		moderation: moderation,
		errs:       errs,
	}
}

// ListAdmins lista admins e owners
//
//	@Summary	Lista admins
//	@Tags		owner
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.Response{data=[]dto.UserResponse}
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/owner/admins [get]
func (h *OwnerHandler) ListAdmins(c *gin.Context) {
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.errs.BindError(c, err)
		return
	}

	page, err := h.moderation.ListAdmins(c.Request.Context(), principal(c), q.Page, q.Limit)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginated(dto.ToUserResponses(page.Items), page.Total, page.Page, page.Pages))
}

// Promote transforma um usuário em admin
//
//	@Summary	Promove a admin
//	@Tags		owner
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.PromoteRequest	true	"Usuário a promover"
//	@Success	200		{object}	dto.Response{data=dto.UserResponse}
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/owner/admins [post]
func (h *OwnerHandler) Promote(c *gin.Context) {
	var req dto.PromoteRequest
	// corpo vazio cai em ErrUserIDRequired no service
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.errs.BindError(c, err)
		return
	}

	user, err := h.moderation.Promote(c.Request.Context(), principal(c), req.UserID)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	resp := dto.OK(dto.ToUserResponse(user))
	resp.Message = dto.T(c, "success.promoted", map[string]any{"Username": user.Username})
	c.JSON(http.StatusOK, resp)
}

// Demote rebaixa um admin
//
//	@Summary	Rebaixa um admin
//	@Tags		owner
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do admin"
//	@Success	200	{object}	dto.Response{data=dto.UserResponse}
//	@Failure	400	{object}	dto.ErrorResponse
//	@Router		/owner/admins/{id} [delete]
func (h *OwnerHandler) Demote(c *gin.Context) {
	user, err := h.moderation.Demote(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	resp := dto.OK(dto.ToUserResponse(user))
	resp.Message = dto.T(c, "success.demoted", map[string]any{"Username": user.Username})
	c.JSON(http.StatusOK, resp)
}
