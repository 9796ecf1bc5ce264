package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
)

// PostRepository implementa repositories.PostRepository
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	model := r.toModel(post)

	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return err
	}

	post.ID = model.ID
	post.Likes = []string{}
	post.CreatedAt = fromNano(model.CreatedAt)
	post.UpdatedAt = fromNano(model.UpdatedAt)
	return nil
}

// FindByID retorna o post mesmo que tenha sofrido soft delete
func (r *PostRepository) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	if !isUUID(id) {
		return nil, nil
	}

	var model PostModel

	db := dbFrom(ctx, r.db)
	if err := db.Preload("Author").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	posts := r.toEntities([]*PostModel{&model})
	if err := r.loadLikes(db, posts); err != nil {
		return nil, err
	}
	return posts[0], nil
}

// Update grava conteúdo, imagem e os campos de soft delete.
// likes_count é mantido apenas por AddLike/RemoveLike.
func (r *PostRepository) Update(ctx context.Context, post *entities.Post) error {
	model := r.toModel(post)

	result := dbFrom(ctx, r.db).
		Model(&PostModel{ID: post.ID}).
		Select("content", "image", "is_deleted", "deleted_by", "deleted_at", "updated_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}

	post.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *PostRepository) SoftDelete(ctx context.Context, id, deletedBy string, at time.Time) (bool, error) {
	result := dbFrom(ctx, r.db).
		Model(&PostModel{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_by": deletedBy,
			"deleted_at": at.UnixNano(),
			"updated_at": time.Now().UnixNano(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Delete remove o post e suas curtidas
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("post_id = ?", id).Delete(&PostLikeModel{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&PostModel{}).Error
}

func (r *PostRepository) List(ctx context.Context, filters repositories.PostFilters) ([]*entities.Post, int64, error) {
	var models []*PostModel

	db := dbFrom(ctx, r.db)
	query := db.Model(&PostModel{})

	if !filters.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if filters.AuthorID != "" {
		if !isUUID(filters.AuthorID) {
			return []*entities.Post{}, 0, nil
		}
		query = query.Where("author_id = ?", filters.AuthorID)
	}
	if len(filters.ExcludeAuthors) > 0 {
		query = query.Where("author_id NOT IN ?", filters.ExcludeAuthors)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Author").Order("created_at DESC")
	if !filters.DisablePaginate {
		_, pageSize, offset := repositories.Normalize(filters.Page, filters.PageSize)
		query = query.Limit(pageSize).Offset(offset)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, err
	}

	posts := r.toEntities(models)
	if err := r.loadLikes(db, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// AddLike insere a curtida e recalcula likes_count na mesma transação do chamador
func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) (bool, int, error) {
	db := dbFrom(ctx, r.db)

	result := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&PostLikeModel{PostID: postID, UserID: userID})
	if result.Error != nil {
		return false, 0, result.Error
	}

	added := result.RowsAffected == 1
	if added {
		if err := r.syncLikesCount(db, postID); err != nil {
			return false, 0, err
		}
	}

	count, err := r.likesCount(db, postID)
	return added, count, err
}

// RemoveLike remove a curtida e recalcula likes_count na mesma transação do chamador
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, int, error) {
	db := dbFrom(ctx, r.db)

	if !isUUID(userID) {
		count, err := r.likesCount(db, postID)
		return false, count, err
	}

	result := db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&PostLikeModel{})
	if result.Error != nil {
		return false, 0, result.Error
	}

	removed := result.RowsAffected == 1
	if removed {
		if err := r.syncLikesCount(db, postID); err != nil {
			return false, 0, err
		}
	}

	count, err := r.likesCount(db, postID)
	return removed, count, err
}

// syncLikesCount recalcula likes_count a partir de post_likes
func (r *PostRepository) syncLikesCount(db *gorm.DB, postID string) error {
	return db.Model(&PostModel{}).
		Where("id = ?", postID).
		UpdateColumn("likes_count", gorm.Expr("(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = ?)", postID)).Error
}

func (r *PostRepository) likesCount(db *gorm.DB, postID string) (int, error) {
	var count int
	err := db.Model(&PostModel{}).
		Where("id = ?", postID).
		Select("likes_count").
		Scan(&count).Error
	return count, err
}

// loadLikes preenche Likes dos posts com uma única consulta
func (r *PostRepository) loadLikes(db *gorm.DB, posts []*entities.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, len(posts))
	byID := make(map[string]*entities.Post, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
		post.Likes = []string{}
		byID[post.ID] = post
	}

	var likes []PostLikeModel
	if err := db.Where("post_id IN ?", ids).Order("created_at").Find(&likes).Error; err != nil {
		return err
	}

	for _, like := range likes {
		post := byID[like.PostID]
		post.Likes = append(post.Likes, like.UserID)
	}
	return nil
}

// Conversores
func (r *PostRepository) toModel(post *entities.Post) *PostModel {
	var deletedAt *int64
	if post.DeletedAt != nil {
		ts := post.DeletedAt.UnixNano()
		deletedAt = &ts
	}

	return &PostModel{
		ID:         post.ID,
		AuthorID:   post.AuthorID,
		Content:    post.Content,
		Image:      post.Image,
		LikesCount: post.LikesCount,
		IsDeleted:  post.IsDeleted,
		DeletedBy:  post.DeletedBy,
		DeletedAt:  deletedAt,
	}
}

func (r *PostRepository) toEntity(model *PostModel) *entities.Post {
	var deletedAt *time.Time
	if model.DeletedAt != nil {
		ts := fromNano(*model.DeletedAt)
		deletedAt = &ts
	}

	return &entities.Post{
		ID:         model.ID,
		AuthorID:   model.AuthorID,
		Author:     toSummary(&model.Author),
		Content:    model.Content,
		Image:      model.Image,
		LikesCount: model.LikesCount,
		IsDeleted:  model.IsDeleted,
		DeletedBy:  model.DeletedBy,
		DeletedAt:  deletedAt,
		CreatedAt:  fromNano(model.CreatedAt),
		UpdatedAt:  fromNano(model.UpdatedAt),
	}
}

func (r *PostRepository) toEntities(models []*PostModel) []*entities.Post {
	posts := make([]*entities.Post, 0, len(models))
	for _, model := range models {
		posts = append(posts, r.toEntity(model))
	}
	return posts
}
