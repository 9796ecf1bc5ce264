package services

import (
	"context"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/errors"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
)

// userActivitiesLimit é o máximo de atividades retornadas por usuário
const userActivitiesLimit = 50

// ActivityService registra e lê o feed de atividades
type ActivityService struct {
	activityRepo repositories.ActivityRepository
	userRepo     repositories.UserRepository
	publisher    ports.ActivityPublisher
	logger       ports.Logger
}

// NewActivityService cria um novo ActivityService
func NewActivityService(
	activityRepo repositories.ActivityRepository,
	userRepo repositories.UserRepository,
	publisher ports.ActivityPublisher,
	logger ports.Logger,
) *ActivityService {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	return &ActivityService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// Log registra uma atividade. Falhas são apenas logadas: o registro nunca
// interrompe a ação principal que o disparou.
func (s *ActivityService) Log(ctx context.Context, entry entities.ActivityEntry) *entities.Activity {
	activity := entities.NewActivity(entry)

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Error("error logging activity",
			"type", entry.Type,
			"actor_id", entry.Actor.ID,
			"target_id", entry.TargetID,
			"error", err,
		)
		return nil
	}

	s.publisher.Publish(activity)
	return activity
}

// Page é uma página de resultados
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Pages int
	Limit int
}

func newPage[T any](items []T, total int64, page, limit int) Page[T] {
	page, limit, _ = repositories.Normalize(page, limit)
	return Page[T]{
		Items: items,
		Total: total,
		Page:  page,
		Pages: repositories.Pages(total, limit),
		Limit: limit,
	}
}

// Wall lista as atividades mais recentes, sem atores bloqueados pelo viewer
func (s *ActivityService) Wall(ctx context.Context, viewer entities.Principal, page, limit int) (Page[*entities.Activity], error) {
	current, err := requireUser(ctx, s.userRepo, viewer.UserID)
	if err != nil {
		return Page[*entities.Activity]{}, err
	}

	activities, total, err := s.activityRepo.List(ctx, repositories.ActivityFilters{
		ExcludeActors: current.BlockedUsers,
		Page:          page,
		PageSize:      limit,
	})
	if err != nil {
		return Page[*entities.Activity]{}, err
	}

	return newPage(activities, total, page, limit), nil
}

// UserActivities lista as atividades de um usuário
func (s *ActivityService) UserActivities(ctx context.Context, viewer entities.Principal, userID string) ([]*entities.Activity, error) {
	current, err := requireUser(ctx, s.userRepo, viewer.UserID)
	if err != nil {
		return nil, err
	}

	if current.HasBlocked(userID) {
		return nil, errors.ErrActivitiesBlocked
	}

	activities, _, err := s.activityRepo.List(ctx, repositories.ActivityFilters{
		ActorID:  userID,
		PageSize: userActivitiesLimit,
	})
	return activities, err
}

// BlockedUsers retorna o conjunto bloqueado pelo viewer (usado pelo stream em tempo real)
func (s *ActivityService) BlockedUsers(ctx context.Context, viewer entities.Principal) ([]string, error) {
	current, err := requireUser(ctx, s.userRepo, viewer.UserID)
	if err != nil {
		return nil, err
	}
	return current.BlockedUsers, nil
}
