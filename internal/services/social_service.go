package services

import (
	"context"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/errors"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
)

// SocialService aplica as regras de follow e block.
// As arestas mudam por inserções/deleções condicionais dentro de transações,
// então requisições concorrentes sobre o mesmo par não perdem atualizações.
type SocialService struct {
	userRepo   repositories.UserRepository
	graphRepo  repositories.SocialGraphRepository
	uow        ports.UnitOfWork
	activities *ActivityService
	logger     ports.Logger
}

// NewSocialService cria um novo SocialService
func NewSocialService(
	userRepo repositories.UserRepository,
	graphRepo repositories.SocialGraphRepository,
	uow ports.UnitOfWork,
	activities *ActivityService,
	logger ports.Logger,
) *SocialService {
	return &SocialService{
		userRepo:   userRepo,
		graphRepo:  graphRepo,
		uow:        uow,
		activities: activities,
		logger:     logger,
	}
}

// Follow cria a aresta current -> target e registra user_followed
func (s *SocialService) Follow(ctx context.Context, current entities.Principal, targetID string) (*entities.User, error) {
	var target *entities.User

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		target, err = requireActiveUser(txCtx, s.userRepo, targetID)
		if err != nil {
			return err
		}

		if current.Is(target.ID) {
			return errors.ErrSelfFollow
		}

		me, err := requireUser(txCtx, s.userRepo, current.UserID)
		if err != nil {
			return err
		}

		if me.IsFollowing(target.ID) {
			return errors.ErrAlreadyFollowing
		}

		if target.HasBlocked(me.ID) || me.HasBlocked(target.ID) {
			return errors.ErrFollowBlocked
		}

		added, err := s.graphRepo.AddFollow(txCtx, me.ID, target.ID)
		if err != nil {
			return err
		}
		if !added {
			return errors.ErrAlreadyFollowing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user followed", "follower_id", current.UserID, "followee_id", target.ID)

	s.activities.Log(ctx, entities.ActivityEntry{
		Type:         entities.ActivityUserFollowed,
		Actor:        entities.UserSummary{ID: current.UserID, Username: current.Username},
		TargetID:     target.ID,
		TargetModel:  entities.TargetUser,
		FollowedUser: target.Username,
	})

	return target, nil
}

// Unfollow remove a aresta current -> target; não gera atividade
func (s *SocialService) Unfollow(ctx context.Context, current entities.Principal, targetID string) (*entities.User, error) {
	target, err := requireUser(ctx, s.userRepo, targetID)
	if err != nil {
		return nil, err
	}

	removed, err := s.graphRepo.RemoveFollow(ctx, current.UserID, target.ID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, errors.ErrNotFollowing
	}

	s.logger.Info("user unfollowed", "follower_id", current.UserID, "followee_id", target.ID)
	return target, nil
}

// Block registra o bloqueio e remove as arestas de follow nos dois sentidos
func (s *SocialService) Block(ctx context.Context, current entities.Principal, targetID string) (*entities.User, error) {
	var target *entities.User

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		target, err = requireUser(txCtx, s.userRepo, targetID)
		if err != nil {
			return err
		}

		if current.Is(target.ID) {
			return errors.ErrSelfBlock
		}

		added, err := s.graphRepo.AddBlock(txCtx, current.UserID, target.ID)
		if err != nil {
			return err
		}
		if !added {
			return errors.ErrAlreadyBlocked
		}

		return s.graphRepo.RemoveFollowsBetween(txCtx, current.UserID, target.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user blocked", "blocker_id", current.UserID, "blocked_id", target.ID)
	return target, nil
}

// Unblock remove o bloqueio; não verifica a existência do alvo
func (s *SocialService) Unblock(ctx context.Context, current entities.Principal, targetID string) error {
	removed, err := s.graphRepo.RemoveBlock(ctx, current.UserID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return errors.ErrNotBlocked
	}

	s.logger.Info("user unblocked", "blocker_id", current.UserID, "blocked_id", targetID)
	return nil
}
