package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
)

// SocialGraphRepository implementa repositories.SocialGraphRepository
// com inserções condicionais (ON CONFLICT DO NOTHING) e deleções cujo
// número de linhas afetadas decide o resultado
type SocialGraphRepository struct {
	db *gorm.DB
}

// NewSocialGraphRepository cria um novo SocialGraphRepository
func NewSocialGraphRepository(db *gorm.DB) repositories.SocialGraphRepository {
	return &SocialGraphRepository{db: db}
}

func (r *SocialGraphRepository) AddFollow(ctx context.Context, followerID, followeeID string) (bool, error) {
	result := dbFrom(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&FollowModel{FollowerID: followerID, FolloweeID: followeeID})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *SocialGraphRepository) RemoveFollow(ctx context.Context, followerID, followeeID string) (bool, error) {
	result := dbFrom(ctx, r.db).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&FollowModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *SocialGraphRepository) RemoveFollowsBetween(ctx context.Context, a, b string) error {
	return dbFrom(ctx, r.db).
		Where("(follower_id = ? AND followee_id = ?) OR (follower_id = ? AND followee_id = ?)", a, b, b, a).
		Delete(&FollowModel{}).Error
}

func (r *SocialGraphRepository) AddBlock(ctx context.Context, blockerID, blockedID string) (bool, error) {
	result := dbFrom(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&BlockModel{BlockerID: blockerID, BlockedID: blockedID})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *SocialGraphRepository) RemoveBlock(ctx context.Context, blockerID, blockedID string) (bool, error) {
	if !isUUID(blockedID) {
		return false, nil
	}
	result := dbFrom(ctx, r.db).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&BlockModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *SocialGraphRepository) BlockedBy(ctx context.Context, blockerID string) ([]string, error) {
	blocked := []string{}
	err := dbFrom(ctx, r.db).
		Model(&BlockModel{}).
		Where("blocker_id = ?", blockerID).
		Pluck("blocked_id", &blocked).Error
	return blocked, err
}
