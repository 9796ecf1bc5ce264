package entities

import (
	"errors"
	"regexp"
	"slices"
	"time"

	"github.com/rafabene/socialnet-backend/internal/domain/valueobjects"
)

const (
	MaxBioLength            = 250
	MaxProfilePictureLength = 500
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// User representa um usuário do sistema.
// Followers, Following e BlockedUsers contêm IDs e são carregados pelo
// repositório; alterações nesses conjuntos passam pelo SocialGraphRepository.
type User struct {
	ID             string
	Username       string
	Email          valueobjects.Email
	PasswordHash   string
	Bio            string
	ProfilePicture string
	Role           Role
	IsActive       bool
	Followers      []string
	Following      []string
	BlockedUsers   []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserSummary é a projeção mínima de um usuário usada em posts e atividades
type UserSummary struct {
	ID             string
	Username       string
	ProfilePicture string
}

// Summary retorna a projeção mínima do usuário
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// IsAdmin verifica se o usuário é admin ou owner
func (u *User) IsAdmin() bool {
	return u.Role.AtLeast(RoleAdmin)
}

// IsOwner verifica se o usuário é owner
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// HasBlocked verifica se o usuário bloqueou userID
func (u *User) HasBlocked(userID string) bool {
	return slices.Contains(u.BlockedUsers, userID)
}

// IsFollowing verifica se o usuário segue userID
func (u *User) IsFollowing(userID string) bool {
	return slices.Contains(u.Following, userID)
}

// IsFollowedBy verifica se userID segue o usuário
func (u *User) IsFollowedBy(userID string) bool {
	return slices.Contains(u.Followers, userID)
}

// Principal retorna o usuário autenticado correspondente
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// ValidateUsername valida o formato do username
func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if !ValidateUsername(u.Username) {
		return errors.New("username must be 3-30 letters, digits or underscores")
	}

	if len(u.Bio) > MaxBioLength {
		return errors.New("bio must be at most 250 characters")
	}

	if len(u.ProfilePicture) > MaxProfilePictureLength {
		return errors.New("profile picture must be at most 500 characters")
	}

	if !u.Role.IsValid() {
		return errors.New("invalid role")
	}

	return nil
}
