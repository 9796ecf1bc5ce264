package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/socialnet-backend/internal/handlers/dto"
	"github.com/rafabene/socialnet-backend/internal/services"
)

// PostHandler lida com posts e curtidas
type PostHandler struct {
	postService *services.PostService
	errs        *ErrorResponder
}

// NewPostHandler cria um novo PostHandler
func NewPostHandler(postService *services.PostService, errs *ErrorResponder) *PostHandler {
	return &PostHandler{
		postService: postService,
		errs:        errs,
	}
}

// ListFeed lista os posts mais recentes
//
//	@Summary	Feed de posts
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page	query		int	false	"Página (padrão 1)"
//	@Param		limit	query		int	false	"Itens por página (padrão 50, máx. 100)"
//	@Success	200		{object}	dto.Response{data=[]dto.PostResponse}
//	@Router		/posts [get]
func (h *PostHandler) ListFeed(c *gin.Context) {
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.errs.BindError(c, err)
		return
	}

	page, err := h.postService.ListFeed(c.Request.Context(), principal(c), q.Page, q.Limit)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginated(dto.ToPostResponses(page.Items), page.Total, page.Page, page.Pages))
}

// CreatePost cria um post
//
//	@Summary	Cria um post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.CreatePostRequest	true	"Conteúdo do post"
//	@Success	201		{object}	dto.Response{data=dto.PostResponse}
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.BindError(c, err)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), principal(c), services.CreatePostInput{
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	resp := dto.OK(dto.ToPostResponse(post))
	resp.Message = dto.T(c, "success.post_created")
	c.JSON(http.StatusCreated, resp)
}

// ListUserPosts lista os posts de um usuário
//
//	@Summary	Posts de um usuário
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		userId	path		string	true	"ID do usuário"
//	@Success	200		{object}	dto.Response{data=[]dto.PostResponse}
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/posts/user/{userId} [get]
func (h *PostHandler) ListUserPosts(c *gin.Context) {
	posts, err := h.postService.ListUserPosts(c.Request.Context(), principal(c), c.Param("userId"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.List(dto.ToPostResponses(posts)))
}

// GetPost busca um post
//
//	@Summary	Busca um post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do post"
//	@Success	200	{object}	dto.Response{data=dto.PostResponse}
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToPostResponse(post)))
}

// UpdatePost altera um post do próprio autor
//
//	@Summary	Altera um post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"ID do post"
//	@Param		body	body		dto.UpdatePostRequest	true	"Campos do post"
//	@Success	200		{object}	dto.Response{data=dto.PostResponse}
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.BindError(c, err)
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), principal(c), c.Param("id"), services.UpdatePostInput{
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	resp := dto.OK(dto.ToPostResponse(post))
	resp.Message = dto.T(c, "success.post_updated")
	c.JSON(http.StatusOK, resp)
}

// DeletePost remove um post do próprio autor
//
//	@Summary	Remove um post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do post"
//	@Success	200	{object}	dto.Response
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postService.DeletePost(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(dto.T(c, "success.post_deleted")))
}

// LikePost curte um post
//
//	@Summary	Curte um post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do post"
//	@Success	200	{object}	dto.Response
//	@Failure	400	{object}	dto.ErrorResponse
//	@Router		/posts/{id}/like [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	result, err := h.postService.LikePost(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Likes(dto.T(c, "success.post_liked"), result.LikesCount))
}

// UnlikePost desfaz a curtida
//
//	@Summary	Desfaz a curtida
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do post"
//	@Success	200	{object}	dto.Response
//	@Failure	400	{object}	dto.ErrorResponse
//	@Router		/posts/{id}/unlike [delete]
func (h *PostHandler) UnlikePost(c *gin.Context) {
	result, err := h.postService.UnlikePost(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Likes(dto.T(c, "success.post_unliked"), result.LikesCount))
}
