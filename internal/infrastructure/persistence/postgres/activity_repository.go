package postgres

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
)

// ActivityRepository implementa repositories.ActivityRepository
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository cria um novo ActivityRepository
func NewActivityRepository(db *gorm.DB) repositories.ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *entities.Activity) error {
	model := &ActivityModel{
		ID:          activity.ID,
		Type:        string(activity.Type),
		ActorID:     activity.ActorID,
		TargetID:    activity.TargetID,
		TargetModel: string(activity.TargetModel),
		Message:     activity.Message,
		Metadata:    datatypes.JSONMap(activity.Metadata),
	}

	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return err
	}

	activity.ID = model.ID
	activity.CreatedAt = fromNano(model.CreatedAt)
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, filters repositories.ActivityFilters) ([]*entities.Activity, int64, error) {
	var models []*ActivityModel

	query := dbFrom(ctx, r.db).Model(&ActivityModel{})

	if filters.ActorID != "" {
		if !isUUID(filters.ActorID) {
			return []*entities.Activity{}, 0, nil
		}
		query = query.Where("actor_id = ?", filters.ActorID)
	}
	if len(filters.ExcludeActors) > 0 {
		query = query.Where("actor_id NOT IN ?", filters.ExcludeActors)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	_, pageSize, offset := repositories.Normalize(filters.Page, filters.PageSize)
	if err := query.Preload("Actor").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	activities := make([]*entities.Activity, 0, len(models))
	for _, model := range models {
		activities = append(activities, toActivity(model))
	}
	return activities, total, nil
}

func (r *ActivityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := dbFrom(ctx, r.db).
		Where("created_at < ?", cutoff.UnixNano()).
		Delete(&ActivityModel{})
	return result.RowsAffected, result.Error
}

func toActivity(model *ActivityModel) *entities.Activity {
	metadata := map[string]any(model.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}

	return &entities.Activity{
		ID:          model.ID,
		Type:        entities.ActivityType(model.Type),
		ActorID:     model.ActorID,
		Actor:       toSummary(&model.Actor),
		TargetID:    model.TargetID,
		TargetModel: entities.TargetModel(model.TargetModel),
		Message:     model.Message,
		Metadata:    metadata,
		CreatedAt:   fromNano(model.CreatedAt),
	}
}
