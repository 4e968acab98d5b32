package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env        string
	Port       string
	JWTSecret  string
	Database   DatabaseConfig
	LocalStore LocalStoreConfig
	Storage    StorageConfig
	Sheets     SheetsConfig
	Scheduler  SchedulerConfig
}

// DatabaseConfig holds the remote store connection settings.
// Host "localhost" with an empty password selects the embedded instance.
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Quiet    bool
}

// LocalStoreConfig holds the fallback log settings
type LocalStoreConfig struct {
	Dir string
}

// StorageConfig holds the photo bucket settings
type StorageConfig struct {
	URL    string
	APIKey string
	Bucket string
}

// SheetsConfig holds the Google Sheets export settings
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// SchedulerConfig controls the monthly consolidation job
type SchedulerConfig struct {
	Enabled  bool
	CronSpec string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3400"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "sedes"),
			Quiet:    getEnv("DB_QUIET", "false") == "true",
		},
		LocalStore: LocalStoreConfig{
			Dir: getEnv("LOCAL_STORE_DIR", "./local_data"),
		},
		Storage: StorageConfig{
			URL:    os.Getenv("STORAGE_URL"),
			APIKey: os.Getenv("STORAGE_API_KEY"),
			Bucket: getEnv("STORAGE_BUCKET", "fotos-atendimentos"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
			Range:           getEnv("SHEETS_RANGE", "Consolidado!A:H"),
		},
		Scheduler: SchedulerConfig{
			Enabled:  getEnv("SCHEDULER_ENABLED", "true") == "true",
			CronSpec: getEnv("SCHEDULER_CRON", "0 6 1 * *"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
