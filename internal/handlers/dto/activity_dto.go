package dto

import (
	"time"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
)

// ActivityResponse representa uma atividade do feed
type ActivityResponse struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Actor       UserSummaryResponse `json:"actor"`
	TargetID    string              `json:"targetId"`
	TargetModel string              `json:"targetModel"`
	Message     string              `json:"message"`
	Metadata    map[string]any      `json:"metadata"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// ToActivityResponse converte uma entidade Activity
func ToActivityResponse(a *entities.Activity) ActivityResponse {
	metadata := a.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return ActivityResponse{
		ID:          a.ID,
		Type:        string(a.Type),
		Actor:       ToUserSummaryResponse(a.Actor),
		TargetID:    a.TargetID,
		TargetModel: string(a.TargetModel),
		Message:     a.Message,
		Metadata:    metadata,
		CreatedAt:   a.CreatedAt,
	}
}

// ToActivityResponses converte uma lista de atividades
func ToActivityResponses(activities []*entities.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		responses[i] = ToActivityResponse(a)
	}
	return responses
}
