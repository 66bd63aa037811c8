package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env        string
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Storage    StorageConfig
	Moderation ModerationConfig
	Admin      AdminConfig
	Logging    LoggingConfig
	CORS       CORSConfig
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
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type StorageConfig struct {
	BaseURL    string // URL base do blob store de pacotes e thumbnails
	SigningKey string // chave HMAC das URLs assinadas
	PlayURLTTL time.Duration
}

type ModerationConfig struct {
	// OperationTimeout limita load+persist de uma transição;
	// estouro vira error.unavailable sem mutação parcial
	OperationTimeout time.Duration
}

type AdminConfig struct {
	// BootstrapEmail identifica o administrador inicial provisionado
	// por migração/seed; não há auto-registro de admin
	BootstrapEmail string
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

// Load carrega as configurações do arquivo .env e do ambiente
func Load() (*Config, error) {
	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("ENV", "development")
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_ACCESS_EXPIRY", "24h")
	viper.SetDefault("PLAY_URL_TTL", "15m")
	viper.SetDefault("OPERATION_TIMEOUT", "5s")
	viper.SetDefault("DB_SSL_MODE", "disable")

	config := &Config{
		Env: viper.GetString("ENV"),
		Server: ServerConfig{
			Port:    viper.GetString("PORT"),
			Host:    viper.GetString("HOST"),
			BaseURL: viper.GetString("API_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetInt("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			DBName:      viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSL_MODE"),
			MaxConns:    viper.GetInt("DB_MAX_CONNS"),
			MinConns:    viper.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: viper.GetInt("DB_MAX_IDLE_TIME"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: viper.GetDuration("JWT_ACCESS_EXPIRY"),
		},
		Storage: StorageConfig{
			BaseURL:    viper.GetString("STORAGE_BASE_URL"),
			SigningKey: viper.GetString("STORAGE_SIGNING_KEY"),
			PlayURLTTL: viper.GetDuration("PLAY_URL_TTL"),
		},
		Moderation: ModerationConfig{
			OperationTimeout: viper.GetDuration("OPERATION_TIMEOUT"),
		},
		Admin: AdminConfig{
			BootstrapEmail: viper.GetString("ADMIN_BOOTSTRAP_EMAIL"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetString("CORS_ALLOWED_ORIGINS"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
