package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/socialnet-backend/internal/handlers/dto"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/realtime"
	"github.com/rafabene/socialnet-backend/internal/services"
)

// ActivityHandler expõe o feed de atividades e o stream websocket
type ActivityHandler struct {
	activityService *services.ActivityService
	hub             *realtime.Hub
	errs            *ErrorResponder
}

// NewActivityHandler cria um novo ActivityHandler
func NewActivityHandler(activityService *services.ActivityService, hub *realtime.Hub, errs *ErrorResponder) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		hub:             hub,
		errs:            errs,
	}
}

// Wall lista as atividades recentes
//
//	@Summary	Feed de atividades
//	@Tags		activities
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page	query		int	false	"Página (padrão 1)"
//	@Param		limit	query		int	false	"Itens por página (padrão 50, máx. 100)"
//	@Success	200		{object}	dto.Response{data=[]dto.ActivityResponse}
//	@Router		/activities [get]
func (h *ActivityHandler) Wall(c *gin.Context) {
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.errs.BindError(c, err)
		return
	}

	page, err := h.activityService.Wall(c.Request.Context(), principal(c), q.Page, q.Limit)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginated(dto.ToActivityResponses(page.Items), page.Total, page.Page, page.Pages))
}

// UserActivities lista as atividades de um usuário
//
//	@Summary	Atividades de um usuário
//	@Tags		activities
//	@Produce	json
//	@Security	BearerAuth
//	@Param		userId	path		string	true	"ID do usuário"
//	@Success	200		{object}	dto.Response{data=[]dto.ActivityResponse}
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/activities/user/{userId} [get]
func (h *ActivityHandler) UserActivities(c *gin.Context) {
	activities, err := h.activityService.UserActivities(c.Request.Context(), principal(c), c.Param("userId"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.List(dto.ToActivityResponses(activities)))
}

// Stream abre o websocket de atividades em tempo real
//
//	@Summary		Stream de atividades
//	@Description	Websocket; o token pode vir no header Authorization ou em ?token=
//	@Tags			activities
//	@Security		BearerAuth
//	@Param			token	query	string	false	"Access token"
//	@Success		101
//	@Router			/activities/stream [get]
func (h *ActivityHandler) Stream(c *gin.Context) {
	viewer := principal(c)

	blocked, err := h.activityService.BlockedUsers(c.Request.Context(), viewer)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	// Upgrade já escreve a resposta de erro do handshake
	if err := h.hub.ServeWS(c.Writer, c.Request, viewer.UserID, blocked); err != nil {
		_ = c.Error(err)
		c.Abort()
	}
}
