package utils

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Staff    StaffConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Sweeper  SweeperConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// StaffConfig holds the shared back-office credential. PasswordHash is a bcrypt hash.
type StaffConfig struct {
	PasswordHash string
}

type StorageConfig struct {
	Driver    string // "s3" or "local"
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PathStyle bool
	LocalRoot string
}

type UploadConfig struct {
	MaxPhotoMB int
}

type RedisConfig struct {
	URL               string
	SubmitLockSeconds int
}

type NATSConfig struct {
	URL string
}

type SweeperConfig struct {
	IntervalMinutes   int
	StagingTTLMinutes int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "prebook")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("STORAGE_BUCKET", "photos")
	viper.SetDefault("STORAGE_REGION", "ap-northeast-2")
	viper.SetDefault("STORAGE_LOCAL_ROOT", "data/")
	viper.SetDefault("UPLOAD_MAX_PHOTO_MB", 10)
	viper.SetDefault("SUBMIT_LOCK_SECONDS", 60)
	viper.SetDefault("SWEEP_INTERVAL_MINUTES", 30)
	viper.SetDefault("STAGING_TTL_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional in containers; everything can come from the environment
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			CORSOrigins: SplitList(viper.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Staff: StaffConfig{
			PasswordHash: viper.GetString("STAFF_PASSWORD_HASH"),
		},
		Storage: StorageConfig{
			Driver:    viper.GetString("STORAGE_DRIVER"),
			Bucket:    viper.GetString("STORAGE_BUCKET"),
			Region:    viper.GetString("STORAGE_REGION"),
			Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
			AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
			PathStyle: viper.GetBool("STORAGE_PATH_STYLE"),
			LocalRoot: viper.GetString("STORAGE_LOCAL_ROOT"),
		},
		Upload: UploadConfig{
			MaxPhotoMB: viper.GetInt("UPLOAD_MAX_PHOTO_MB"),
		},
		Redis: RedisConfig{
			URL:               viper.GetString("REDIS_URL"),
			SubmitLockSeconds: viper.GetInt("SUBMIT_LOCK_SECONDS"),
		},
		NATS: NATSConfig{
			URL: viper.GetString("NATS_URL"),
		},
		Sweeper: SweeperConfig{
			IntervalMinutes:   viper.GetInt("SWEEP_INTERVAL_MINUTES"),
			StagingTTLMinutes: viper.GetInt("STAGING_TTL_MINUTES"),
		},
	}

	return config, nil
}
