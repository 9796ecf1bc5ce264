package repositories

import (
	"context"
	"errors"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// Find* retornam (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateRole(ctx context.Context, id string, role entities.Role) error
	Deactivate(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filters UserFilters) ([]*entities.User, int64, error)
}

// UserFilters contém filtros para listagem de usuários
type UserFilters struct {
	Roles           []entities.Role
	IncludeInactive bool
	Page            int // Página (começa em 1)
	PageSize        int // Itens por página (default: 50, max: 100)
}

// ErrDuplicate indica violação de unicidade (username ou email)
var ErrDuplicate = errors.New("duplicate key")
