package repositories

import (
	"context"
	"time"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
)

// ActivityRepository define a interface para o log de atividades (append-only)
type ActivityRepository interface {
	Create(ctx context.Context, activity *entities.Activity) error
	List(ctx context.Context, filters ActivityFilters) ([]*entities.Activity, int64, error)
	// DeleteOlderThan aplica a política de retenção
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ActivityFilters contém filtros para listagem de atividades
type ActivityFilters struct {
	ActorID       string
	ExcludeActors []string
	Page          int
	PageSize      int
}
