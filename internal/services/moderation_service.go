package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/errors"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
)

// ModerationService reúne as operações de admin e owner.
// Toda decisão de papel passa por entities.Authorize.
type ModerationService struct {
	userRepo   repositories.UserRepository
	postRepo   repositories.PostRepository
	uow        ports.UnitOfWork
	activities *ActivityService
	logger     ports.Logger
	now        func() time.Time
}

// NewModerationService cria um novo ModerationService
func NewModerationService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	uow ports.UnitOfWork,
	activities *ActivityService,
	logger ports.Logger,
) *ModerationService {
	return &ModerationService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		uow:        uow,
		activities: activities,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ListAllUsers lista todos os usuários, inclusive desativados
func (s *ModerationService) ListAllUsers(ctx context.Context, actor entities.Principal, page, limit int) (Page[*entities.User], error) {
	if err := entities.Authorize(actor.Role, entities.ActionModerate, entities.RoleUser); err != nil {
		return Page[*entities.User]{}, err
	}

	users, total, err := s.userRepo.List(ctx, repositories.UserFilters{
		IncludeInactive: true,
		Page:            page,
		PageSize:        limit,
	})
	if err != nil {
		return Page[*entities.User]{}, err
	}
	return newPage(users, total, page, limit), nil
}

// ListAllPosts lista todos os posts, inclusive removidos
func (s *ModerationService) ListAllPosts(ctx context.Context, actor entities.Principal, page, limit int) (Page[*entities.Post], error) {
	if err := entities.Authorize(actor.Role, entities.ActionModerate, entities.RoleUser); err != nil {
		return Page[*entities.Post]{}, err
	}

	posts, total, err := s.postRepo.List(ctx, repositories.PostFilters{
		IncludeDeleted: true,
		Page:           page,
		PageSize:       limit,
	})
	if err != nil {
		return Page[*entities.Post]{}, err
	}
	return newPage(posts, total, page, limit), nil
}

// DeleteUser desativa a conta (soft delete) e registra user_deleted
func (s *ModerationService) DeleteUser(ctx context.Context, actor entities.Principal, targetID string) error {
	target, err := requireUser(ctx, s.userRepo, targetID)
	if err != nil {
		return err
	}

	if err := entities.Authorize(actor.Role, entities.ActionDeleteUser, target.Role); err != nil {
		return err
	}

	if !target.IsActive {
		return errors.ErrUserAlreadyDeleted
	}

	deactivated, err := s.userRepo.Deactivate(ctx, target.ID)
	if err != nil {
		return err
	}
	if !deactivated {
		return errors.ErrUserAlreadyDeleted
	}

	s.logger.Info("user deleted",
		"user_id", target.ID,
		"deleted_by", actor.UserID,
		"deleted_by_role", actor.Role,
	)

	s.activities.Log(ctx, entities.ActivityEntry{
		Type:        entities.ActivityUserDeleted,
		Actor:       target.Summary(),
		TargetID:    target.ID,
		TargetModel: entities.TargetUser,
		DeletedBy:   actor.UserID,
		DeletedRole: actor.Role,
	})

	return nil
}

// DeletePost aplica o soft delete da moderação e registra post_deleted
func (s *ModerationService) DeletePost(ctx context.Context, actor entities.Principal, postID string) (*entities.Post, error) {
	if err := entities.Authorize(actor.Role, entities.ActionModerate, entities.RoleUser); err != nil {
		return nil, err
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrPostNotFound
	}

	if post.IsDeleted {
		return nil, errors.ErrPostAlreadyDeleted
	}

	deletedAt := s.now()
	marked, err := s.postRepo.SoftDelete(ctx, post.ID, actor.UserID, deletedAt)
	if err != nil {
		return nil, err
	}
	if !marked {
		return nil, errors.ErrPostAlreadyDeleted
	}
	post.MarkDeleted(actor.UserID, deletedAt)

	s.logger.Info("post deleted by moderation",
		"post_id", post.ID,
		"deleted_by", actor.UserID,
		"deleted_by_role", actor.Role,
	)

	s.activities.Log(ctx, entities.ActivityEntry{
		Type:        entities.ActivityPostDeleted,
		Actor:       post.Author,
		TargetID:    post.ID,
		TargetModel: entities.TargetPost,
		DeletedBy:   actor.UserID,
		DeletedRole: actor.Role,
	})

	return post, nil
}

// RemoveLike remove a curtida de um usuário em qualquer post
func (s *ModerationService) RemoveLike(ctx context.Context, actor entities.Principal, postID, userID string) (LikeResult, error) {
	if err := entities.Authorize(actor.Role, entities.ActionModerate, entities.RoleUser); err != nil {
		return LikeResult{}, err
	}

	var count int
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		post, err := s.postRepo.FindByID(txCtx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return errors.ErrPostNotFound
		}

		removed, likes, err := s.postRepo.RemoveLike(txCtx, post.ID, userID)
		if err != nil {
			return err
		}
		if !removed {
			return errors.ErrUserHasNotLiked
		}
		count = likes
		return nil
	})
	if err != nil {
		return LikeResult{}, err
	}

	s.logger.Info("like removed by moderation", "post_id", postID, "user_id", userID, "by", actor.UserID)
	return LikeResult{PostID: postID, LikesCount: count}, nil
}

// ListAdmins lista admins e owners
func (s *ModerationService) ListAdmins(ctx context.Context, actor entities.Principal, page, limit int) (Page[*entities.User], error) {
	if err := entities.Authorize(actor.Role, entities.ActionManageAdmins, entities.RoleUser); err != nil {
		return Page[*entities.User]{}, err
	}

	users, total, err := s.userRepo.List(ctx, repositories.UserFilters{
		Roles:           []entities.Role{entities.RoleAdmin, entities.RoleOwner},
		IncludeInactive: true,
		Page:            page,
		PageSize:        limit,
	})
	if err != nil {
		return Page[*entities.User]{}, err
	}
	return newPage(users, total, page, limit), nil
}

// Promote transforma um usuário em admin
func (s *ModerationService) Promote(ctx context.Context, actor entities.Principal, userID string) (*entities.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.ErrUserIDRequired
	}
	if err := entities.Authorize(actor.Role, entities.ActionManageAdmins, entities.RoleUser); err != nil {
		return nil, err
	}

	target, err := requireUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	if err := entities.Authorize(actor.Role, entities.ActionManageAdmins, target.Role); err != nil {
		return nil, err
	}
	if target.Role == entities.RoleAdmin {
		return nil, errors.ErrAlreadyAdmin
	}

	if err := s.userRepo.UpdateRole(ctx, target.ID, entities.RoleAdmin); err != nil {
		return nil, err
	}
	target.Role = entities.RoleAdmin

	s.logger.Info("user promoted to admin", "user_id", target.ID, "by", actor.UserID)
	return target, nil
}

// Demote rebaixa um admin para user
func (s *ModerationService) Demote(ctx context.Context, actor entities.Principal, userID string) (*entities.User, error) {
	if err := entities.Authorize(actor.Role, entities.ActionManageAdmins, entities.RoleUser); err != nil {
		return nil, err
	}

	target, err := requireUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	if target.Role != entities.RoleAdmin {
		return nil, errors.ErrNotAdmin
	}

	if err := s.userRepo.UpdateRole(ctx, target.ID, entities.RoleUser); err != nil {
		return nil, err
	}
	target.Role = entities.RoleUser

	s.logger.Info("admin demoted to user", "user_id", target.ID, "by", actor.UserID)
	return target, nil
}
