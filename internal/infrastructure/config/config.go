package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Activity ActivityConfig
	I18n     I18nConfig
	Logging  LoggingConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	BaseURL string // URL base da API para construir URIs RFC 7807
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
	LogQueries  bool
}

type JWTConfig struct {
	Secret       string
	Issuer       string
	AccessExpiry time.Duration
}

type AuthConfig struct {
	// OwnerEmail recebe o papel owner ao se registrar
	OwnerEmail string
}

type ActivityConfig struct {
	Retention     time.Duration
	PurgeInterval time.Duration
}

type I18nConfig struct {
	DefaultLanguage string
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

// Load carrega as configurações do arquivo .env (opcional) e das variáveis de ambiente
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom é o Load com o caminho do arquivo .env explícito
func LoadFrom(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			Host:    v.GetString("HOST"),
			BaseURL: v.GetString("API_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: v.GetInt("DB_MAX_IDLE_TIME"),
			LogQueries:  v.GetBool("DB_LOG_QUERIES"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			Issuer:       v.GetString("JWT_ISSUER"),
			AccessExpiry: v.GetDuration("JWT_ACCESS_EXPIRY"),
		},
		Auth: AuthConfig{
			OwnerEmail: v.GetString("OWNER_EMAIL"),
		},
		Activity: ActivityConfig{
			Retention:     v.GetDuration("ACTIVITY_RETENTION"),
			PurgeInterval: v.GetDuration("ACTIVITY_PURGE_INTERVAL"),
		},
		I18n: I18nConfig{
			DefaultLanguage: v.GetString("DEFAULT_LANGUAGE"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "5000")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("API_BASE_URL", "http://localhost:5000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "socialnet")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)

	v.SetDefault("JWT_ISSUER", "socialnet-backend")
	v.SetDefault("JWT_ACCESS_EXPIRY", "24h")

	v.SetDefault("ACTIVITY_RETENTION", "720h")
	v.SetDefault("ACTIVITY_PURGE_INTERVAL", "1h")

	v.SetDefault("DEFAULT_LANGUAGE", "en")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

// Validate verifica as configurações obrigatórias
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Env == "production" && len(c.JWT.Secret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters in production")
	}
	if c.JWT.AccessExpiry <= 0 {
		return errors.New("JWT_ACCESS_EXPIRY must be positive")
	}
	return nil
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
