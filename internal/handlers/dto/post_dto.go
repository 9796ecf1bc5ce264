package dto

import (
	"time"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
)

// CreatePostRequest representa a requisição de POST /api/posts
type CreatePostRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
	Image   string `json:"image" binding:"omitempty,max=500"`
}

// UpdatePostRequest representa a requisição de PUT /api/posts/:id
type UpdatePostRequest struct {
	Content *string `json:"content" binding:"omitempty,max=1000"`
	Image   *string `json:"image" binding:"omitempty,max=500"`
}

// PostResponse representa a resposta de um post
type PostResponse struct {
	ID         string              `json:"id"`
	Author     UserSummaryResponse `json:"author"`
	Content    string              `json:"content"`
	Image      string              `json:"image"`
	Likes      []string            `json:"likes"`
	LikesCount int                 `json:"likesCount"`
	IsDeleted  bool                `json:"isDeleted"`
	DeletedBy  *string             `json:"deletedBy,omitempty"`
	DeletedAt  *time.Time          `json:"deletedAt,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// ToPostResponse converte uma entidade Post para PostResponse
func ToPostResponse(post *entities.Post) PostResponse {
	return PostResponse{
		ID:         post.ID,
		Author:     ToUserSummaryResponse(post.Author),
		Content:    post.Content,
		Image:      post.Image,
		Likes:      nonNil(post.Likes),
		LikesCount: post.LikesCount,
		IsDeleted:  post.IsDeleted,
		DeletedBy:  post.DeletedBy,
		DeletedAt:  post.DeletedAt,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}

// ToPostResponses converte uma lista de posts
func ToPostResponses(posts []*entities.Post) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = ToPostResponse(post)
	}
	return responses
}
