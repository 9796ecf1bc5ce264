package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/errors"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
	"github.com/rafabene/socialnet-backend/internal/domain/valueobjects"
)

// AuthService registra usuários e emite access tokens
type AuthService struct {
	userRepo   repositories.UserRepository
	hasher     ports.PasswordHasher
	tokens     ports.TokenManager
	logger     ports.Logger
	ownerEmail string
}

// NewAuthService cria um novo AuthService.
// ownerEmail (opcional) recebe o papel owner ao se registrar.
func NewAuthService(
	userRepo repositories.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenManager,
	logger ports.Logger,
	ownerEmail string,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		hasher:     hasher,
		tokens:     tokens,
		logger:     logger,
		ownerEmail: strings.TrimSpace(strings.ToLower(ownerEmail)),
	}
}

// RegisterInput representa os dados de cadastro
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult é o usuário autenticado com seu token
type AuthResult struct {
	User      *entities.User
	Token     string
	ExpiresAt time.Time
}

// Register cria um usuário com papel user (ou owner, para o email configurado)
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	username := strings.TrimSpace(input.Username)
	if !entities.ValidateUsername(username) {
		return nil, errors.ErrInvalidUsername
	}

	s.logger.Info("registering user", "email", email.String(), "username", username)

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	existing, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrUsernameAlreadyExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := entities.RoleUser
	if s.ownerEmail != "" && email.String() == s.ownerEmail {
		role = entities.RoleOwner
	}

	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		Followers:    []string{},
		Following:    []string{},
		BlockedUsers: []string{},
	}

	if err := user.Validate(); err != nil {
		return nil, errors.ErrInvalidProfile.Wrap(err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if stderrors.Is(err, repositories.ErrDuplicate) {
			return nil, errors.ErrUsernameAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.issue(user)
}

// Login valida as credenciais e emite um novo token
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	normalized, err := valueobjects.NewEmail(email)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, normalized.String())
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, password) {
		return nil, errors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, errors.ErrAccountDisabled
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *entities.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
