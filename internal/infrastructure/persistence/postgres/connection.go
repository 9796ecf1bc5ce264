package postgres

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/config"
)

// NewDatabaseConnection cria uma nova conexão com o PostgreSQL e aplica as migrações
func NewDatabaseConnection(cfg *config.DatabaseConfig, log ports.Logger) (*gorm.DB, error) {
	db, err := Open(postgres.Open(cfg.DSN()), cfg.LogQueries)
	if err != nil {
		return nil, err
	}

	// Configurar connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MinConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Second)

	// Ping para verificar conexão
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connected successfully",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("database migrated", "tables", len(AllModels()))

	return db, nil
}

// Open abre o banco com o dialector informado (postgres em produção, sqlite nos testes)
func Open(dialector gorm.Dialector, logQueries bool) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: newGormLogger(os.Stdout, logQueries),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt:    false,
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// newGormLogger ignora ErrRecordNotFound: buscas vazias são fluxo normal dos repositórios
func newGormLogger(w io.Writer, logQueries bool) logger.Interface {
	level := logger.Warn
	if logQueries {
		level = logger.Info
	}
	return logger.New(stdlog.New(w, "\r\n", stdlog.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate cria ou atualiza as tabelas
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
