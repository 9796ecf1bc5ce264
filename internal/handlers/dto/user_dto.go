package dto

import (
	"time"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
)

// UpdateProfileRequest representa a requisição de PUT /api/users/profile
type UpdateProfileRequest struct {
	Username       *string `json:"username" binding:"omitempty,username"`
	Bio            *string `json:"bio" binding:"omitempty,max=250"`
	ProfilePicture *string `json:"profilePicture" binding:"omitempty,max=500"`
}

// PromoteRequest representa a requisição de POST /api/owner/admins
type PromoteRequest struct {
	UserID string `json:"userId"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profilePicture"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"isActive"`
	Followers      []string  `json:"followers"`
	Following      []string  `json:"following"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// OwnUserResponse é a visão do próprio usuário, com a lista de bloqueados
type OwnUserResponse struct {
	UserResponse
	BlockedUsers []string `json:"blockedUsers"`
}

// UserSummaryResponse é a forma reduzida usada em posts e atividades
type UserSummaryResponse struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

// ToUserResponse converte uma entidade User para UserResponse.
// A lista de bloqueados só aparece para o próprio usuário (ToOwnUserResponse).
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email.String(),
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		Role:           string(user.Role),
		IsActive:       user.IsActive,
		Followers:      nonNil(user.Followers),
		Following:      nonNil(user.Following),
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// ToOwnUserResponse inclui blockedUsers, sempre presente mesmo vazio
func ToOwnUserResponse(user *entities.User) OwnUserResponse {
	return OwnUserResponse{
		UserResponse: ToUserResponse(user),
		BlockedUsers: nonNil(user.BlockedUsers),
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// ToUserSummaryResponse converte um UserSummary
func ToUserSummaryResponse(s entities.UserSummary) UserSummaryResponse {
	return UserSummaryResponse{
		ID:             s.ID,
		Username:       s.Username,
		ProfilePicture: s.ProfilePicture,
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
