package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/errors"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
)

// UserService contém a lógica de negócio de perfis
type UserService struct {
	userRepo repositories.UserRepository
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// UpdateProfileInput representa os campos editáveis do perfil; nil mantém o valor atual
type UpdateProfileInput struct {
	Username       *string
	Bio            *string
	ProfilePicture *string
}

// ResolvePrincipal carrega o usuário do token, recusando contas desativadas
func (s *UserService) ResolvePrincipal(ctx context.Context, userID string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, errors.ErrAccountDisabled
	}
	return user, nil
}

// GetProfile busca o perfil de um usuário ativo.
// Retorna ErrProfileBlocked se o dono do perfil bloqueou o viewer.
func (s *UserService) GetProfile(ctx context.Context, viewer entities.Principal, id string) (*entities.User, error) {
	user, err := requireActiveUser(ctx, s.userRepo, id)
	if err != nil {
		return nil, err
	}

	if user.HasBlocked(viewer.UserID) {
		return nil, errors.ErrProfileBlocked
	}

	return user, nil
}

// UpdateProfile atualiza o perfil do próprio usuário
func (s *UserService) UpdateProfile(ctx context.Context, viewer entities.Principal, input UpdateProfileInput) (*entities.User, error) {
	user, err := requireUser(ctx, s.userRepo, viewer.UserID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && strings.TrimSpace(*input.Username) != "" {
		username := strings.TrimSpace(*input.Username)
		if !entities.ValidateUsername(username) {
			return nil, errors.ErrInvalidUsername
		}
		if username != user.Username {
			existing, err := s.userRepo.FindByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, errors.ErrUsernameAlreadyExists
			}
			user.Username = username
		}
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}

	if err := user.Validate(); err != nil {
		return nil, errors.ErrInvalidProfile.Wrap(err)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if stderrors.Is(err, repositories.ErrDuplicate) {
			return nil, errors.ErrUsernameAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", user.ID)
	return user, nil
}

// ListUsers lista usuários ativos, mais recentes primeiro
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (Page[*entities.User], error) {
	users, total, err := s.userRepo.List(ctx, repositories.UserFilters{
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		return Page[*entities.User]{}, err
	}
	return newPage(users, total, page, limit), nil
}

// requireUser busca um usuário por ID, ativo ou não
func requireUser(ctx context.Context, repo repositories.UserRepository, id string) (*entities.User, error) {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// requireActiveUser trata contas desativadas como inexistentes
func requireActiveUser(ctx context.Context, repo repositories.UserRepository, id string) (*entities.User, error) {
	user, err := requireUser(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}
