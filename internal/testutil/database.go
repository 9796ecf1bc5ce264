// Package testutil monta um banco sqlite descartável com os repositórios
// reais para os testes de services e handlers.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
	"github.com/rafabene/socialnet-backend/internal/domain/valueobjects"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/persistence/postgres"
)

// NewSQLiteDB abre um banco sqlite em dir e aplica as migrações
func NewSQLiteDB(dir string) (*gorm.DB, error) {
	dsn := filepath.Join(dir, "socialnet.db") + "?_busy_timeout=5000"

	db, err := postgres.Open(sqlite.Open(dsn), false)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Store agrupa os repositórios sobre um mesmo banco
type Store struct {
	DB         *gorm.DB
	Users      repositories.UserRepository
	Graph      repositories.SocialGraphRepository
	Posts      repositories.PostRepository
	Activities repositories.ActivityRepository
	UoW        ports.UnitOfWork
}

// NewStore cria o banco em dir e os repositórios GORM
func NewStore(dir string) (*Store, error) {
	db, err := NewSQLiteDB(dir)
	if err != nil {
		return nil, err
	}
	return &Store{
		DB:         db,
		Users:      postgres.NewUserRepository(db),
		Graph:      postgres.NewSocialGraphRepository(db),
		Posts:      postgres.NewPostRepository(db),
		Activities: postgres.NewActivityRepository(db),
		UoW:        postgres.NewUnitOfWork(db),
	}, nil
}

// Close fecha a conexão
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateUser grava um usuário ativo com o papel informado.
// O email é derivado do username.
func (s *Store) CreateUser(ctx context.Context, username string, role entities.Role) (*entities.User, error) {
	user := &entities.User{
		Username:     username,
		Email:        valueobjects.MustEmail(fmt.Sprintf("%s@example.com", username)),
		PasswordHash: "not-a-real-hash",
		Role:         role,
		IsActive:     true,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RecordingPublisher guarda as atividades publicadas
type RecordingPublisher struct {
	mu        sync.Mutex
	published []*entities.Activity
}

func (p *RecordingPublisher) Publish(activity *entities.Activity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, activity)
}

// Published retorna uma cópia das atividades publicadas
func (p *RecordingPublisher) Published() []*entities.Activity {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*entities.Activity, len(p.published))
	copy(out, p.published)
	return out
}
