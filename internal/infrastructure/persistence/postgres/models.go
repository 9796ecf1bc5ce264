package postgres

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserModel é o model GORM para usuários
type UserModel struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	Username       string `gorm:"type:varchar(30);uniqueIndex;not null"`
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash   string `gorm:"type:varchar(255);not null"`
	Bio            string `gorm:"type:varchar(250);not null;default:''"`
	ProfilePicture string `gorm:"type:varchar(500);not null;default:''"`
	Role           string `gorm:"type:varchar(20);not null;index"`
	IsActive       bool   `gorm:"not null;default:true;index"`
	CreatedAt      int64  `gorm:"autoCreateTime:nano;index"`
	UpdatedAt      int64  `gorm:"autoUpdateTime:nano"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// FollowModel é uma aresta follower -> followee
type FollowModel struct {
	FollowerID string `gorm:"type:uuid;primaryKey"`
	FolloweeID string `gorm:"type:uuid;primaryKey;index"`
	CreatedAt  int64  `gorm:"autoCreateTime:nano"`
}

func (FollowModel) TableName() string {
	return "follows"
}

// BlockModel é um bloqueio unidirecional blocker -> blocked
type BlockModel struct {
	BlockerID string `gorm:"type:uuid;primaryKey"`
	BlockedID string `gorm:"type:uuid;primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime:nano"`
}

func (BlockModel) TableName() string {
	return "blocks"
}

// PostModel é o model GORM para posts
type PostModel struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	AuthorID   string    `gorm:"type:uuid;not null;index:idx_posts_author_created,priority:1"`
	Author     UserModel `gorm:"foreignKey:AuthorID"`
	Content    string    `gorm:"type:varchar(1000);not null"`
	Image      string    `gorm:"type:varchar(500);not null;default:''"`
	LikesCount int       `gorm:"not null;default:0"`
	IsDeleted  bool      `gorm:"not null;default:false;index"`
	DeletedBy  *string   `gorm:"type:uuid"`
	DeletedAt  *int64
	CreatedAt  int64 `gorm:"autoCreateTime:nano;index:idx_posts_author_created,priority:2"`
	UpdatedAt  int64 `gorm:"autoUpdateTime:nano"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (m *PostModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// PostLikeModel registra a curtida de um usuário em um post
type PostLikeModel struct {
	PostID    string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;primaryKey;index"`
	CreatedAt int64  `gorm:"autoCreateTime:nano"`
}

func (PostLikeModel) TableName() string {
	return "post_likes"
}

// ActivityModel é o model GORM para o log de atividades
type ActivityModel struct {
	ID          string            `gorm:"type:uuid;primaryKey"`
	Type        string            `gorm:"type:varchar(30);not null"`
	ActorID     string            `gorm:"type:uuid;not null;index:idx_activities_actor_created,priority:1"`
	Actor       UserModel         `gorm:"foreignKey:ActorID"`
	TargetID    string            `gorm:"type:uuid"`
	TargetModel string            `gorm:"type:varchar(10)"`
	Message     string            `gorm:"type:varchar(500);not null"`
	Metadata    datatypes.JSONMap
	CreatedAt   int64             `gorm:"autoCreateTime:nano;index;index:idx_activities_actor_created,priority:2"`
}

func (ActivityModel) TableName() string {
	return "activities"
}

func (m *ActivityModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// AllModels lista os models migrados na inicialização
func AllModels() []any {
	return []any{
		&UserModel{},
		&FollowModel{},
		&BlockModel{},
		&PostModel{},
		&PostLikeModel{},
		&ActivityModel{},
	}
}
