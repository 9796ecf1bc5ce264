package repositories

import (
	"context"
	"time"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
)

// PostRepository define a interface para persistência de posts
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	FindByID(ctx context.Context, id string) (*entities.Post, error)
	Update(ctx context.Context, post *entities.Post) error
	// SoftDelete marca o post como removido pela moderação.
	// Retorna false se ele já estava removido.
	SoftDelete(ctx context.Context, id, deletedBy string, at time.Time) (bool, error)
	// Delete remove o post fisicamente (caminho do autor)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters PostFilters) ([]*entities.Post, int64, error)
	// AddLike e RemoveLike retornam se o conjunto mudou e o likesCount resultante
	AddLike(ctx context.Context, postID, userID string) (bool, int, error)
	RemoveLike(ctx context.Context, postID, userID string) (bool, int, error)
}

// PostFilters contém filtros para listagem de posts
type PostFilters struct {
	AuthorID        string
	ExcludeAuthors  []string
	IncludeDeleted  bool
	Page            int
	PageSize        int
	DisablePaginate bool
}
