package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
	"github.com/rafabene/socialnet-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return translateDuplicate(err)
	}

	user.ID = model.ID
	user.CreatedAt = fromNano(model.CreatedAt)
	user.UpdatedAt = fromNano(model.UpdatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entities.User, error) {
	var model UserModel

	db := dbFrom(ctx, r.db)
	if err := db.Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := r.toEntity(&model)
	if err != nil {
		return nil, err
	}

	if err := r.loadRelations(db, user); err != nil {
		return nil, err
	}
	return user, nil
}

// loadRelations carrega followers, following e blockedUsers
func (r *UserRepository) loadRelations(db *gorm.DB, user *entities.User) error {
	user.Followers = []string{}
	user.Following = []string{}
	user.BlockedUsers = []string{}

	if err := db.Model(&FollowModel{}).
		Where("followee_id = ?", user.ID).
		Order("created_at").
		Pluck("follower_id", &user.Followers).Error; err != nil {
		return err
	}

	if err := db.Model(&FollowModel{}).
		Where("follower_id = ?", user.ID).
		Order("created_at").
		Pluck("followee_id", &user.Following).Error; err != nil {
		return err
	}

	return db.Model(&BlockModel{}).
		Where("blocker_id = ?", user.ID).
		Order("created_at").
		Pluck("blocked_id", &user.BlockedUsers).Error
}

// Update grava os campos de perfil; papel e status têm operações próprias
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	result := dbFrom(ctx, r.db).
		Model(&UserModel{ID: user.ID}).
		Select("username", "email", "bio", "profile_picture", "password_hash", "updated_at").
		Updates(&UserModel{
			Username:       user.Username,
			Email:          user.Email.String(),
			Bio:            user.Bio,
			ProfilePicture: user.ProfilePicture,
			PasswordHash:   user.PasswordHash,
		})
	if result.Error != nil {
		return translateDuplicate(result.Error)
	}

	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role entities.Role) error {
	return dbFrom(ctx, r.db).
		Model(&UserModel{}).
		Where("id = ?", id).
		Update("role", string(role)).Error
}

// Deactivate aplica o soft delete; retorna false se o usuário já estava inativo
func (r *UserRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	result := dbFrom(ctx, r.db).
		Model(&UserModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, int64, error) {
	var models []*UserModel

	query := dbFrom(ctx, r.db).Model(&UserModel{})

	if !filters.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}

	if len(filters.Roles) > 0 {
		roles := make([]string, len(filters.Roles))
		for i, role := range filters.Roles {
			roles[i] = string(role)
		}
		query = query.Where("role IN ?", roles)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	_, pageSize, offset := repositories.Normalize(filters.Page, filters.PageSize)
	if err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	users, err := r.toEntities(models)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadFollows(dbFrom(ctx, r.db), users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// loadFollows preenche Followers e Following da página com uma consulta só
func (r *UserRepository) loadFollows(db *gorm.DB, users []*entities.User) error {
	if len(users) == 0 {
		return nil
	}

	ids := make([]string, len(users))
	byID := make(map[string]*entities.User, len(users))
	for i, user := range users {
		ids[i] = user.ID
		user.Followers = []string{}
		user.Following = []string{}
		byID[user.ID] = user
	}

	var edges []FollowModel
	if err := db.Where("follower_id IN ? OR followee_id IN ?", ids, ids).
		Order("created_at").
		Find(&edges).Error; err != nil {
		return err
	}

	for _, edge := range edges {
		if user, ok := byID[edge.FolloweeID]; ok {
			user.Followers = append(user.Followers, edge.FollowerID)
		}
		if user, ok := byID[edge.FollowerID]; ok {
			user.Following = append(user.Following, edge.FolloweeID)
		}
	}
	return nil
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email.String(),
		PasswordHash:   user.PasswordHash,
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		Role:           string(user.Role),
		IsActive:       user.IsActive,
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:             model.ID,
		Username:       model.Username,
		Email:          email,
		PasswordHash:   model.PasswordHash,
		Bio:            model.Bio,
		ProfilePicture: model.ProfilePicture,
		Role:           entities.Role(model.Role),
		IsActive:       model.IsActive,
		CreatedAt:      fromNano(model.CreatedAt),
		UpdatedAt:      fromNano(model.UpdatedAt),
	}, nil
}

func (r *UserRepository) toEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		user, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func toSummary(model *UserModel) entities.UserSummary {
	return entities.UserSummary{
		ID:             model.ID,
		Username:       model.Username,
		ProfilePicture: model.ProfilePicture,
	}
}

func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repositories.ErrDuplicate
	}
	return err
}

// isUUID evita consultas com IDs malformados (erro de sintaxe no tipo uuid do PostgreSQL)
func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}

func fromNano(ns int64) time.Time {
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns).UTC()
}
