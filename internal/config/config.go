package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMock     = "mock"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sources  SourcesConfig
	Storage  StorageConfig
	Refresh  RefreshConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type SourcesConfig struct {
	Backend           string
	DataDir           string
	DocumentPairs     string
	DocumentPairsFile string
	Results           []ResultSourceConfig
}

// ResultSourceConfig maps a selectable result set name to its file.
type ResultSourceConfig struct {
	Name string
	File string
}

type StorageConfig struct {
	MaxFileSize int64
}

// RefreshConfig controls background cache warming. A zero Interval loads
// each source once at startup and never again on its own.
type RefreshConfig struct {
	Workers  int
	Interval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "compliance_dashboard"),
		},
		Sources: SourcesConfig{
			Backend:           strings.ToLower(getEnv("SOURCE_BACKEND", BackendFile)),
			DataDir:           getEnv("DATA_DIR", "."),
			DocumentPairs:     getEnv("DOCUMENT_PAIRS_SOURCE", "document_pairs"),
			DocumentPairsFile: getEnv("DOCUMENT_PAIRS_FILE", "document_pairs.json"),
			Results:           getEnvAsSourceList("RESULT_SOURCES", "Results 1=all_results.json,Results 2=all_results2.json"),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Refresh: RefreshConfig{
			Workers:  int(getEnvAsInt64("REFRESH_WORKERS", 2)),
			Interval: getEnvAsDuration("REFRESH_INTERVAL", 0),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// ResultNames returns the configured result source names in order.
func (s SourcesConfig) ResultNames() []string {
	names := make([]string, 0, len(s.Results))
	for _, r := range s.Results {
		names = append(names, r.Name)
	}
	return names
}

// Files maps every configured source name, document pairs included, to its
// file name.
func (s SourcesConfig) Files() map[string]string {
	files := map[string]string{s.DocumentPairs: s.DocumentPairsFile}
	for _, r := range s.Results {
		files[r.Name] = r.File
	}
	return files
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSourceList parses "Name=file,Name=file". Malformed entries are
// skipped; an empty result falls back to the default.
func getEnvAsSourceList(key, defaultValue string) []ResultSourceConfig {
	if list := parseSourceList(getEnv(key, defaultValue)); len(list) > 0 {
		return list
	}
	return parseSourceList(defaultValue)
}

func parseSourceList(value string) []ResultSourceConfig {
	var list []ResultSourceConfig
	seen := make(map[string]bool)

	for _, item := range strings.Split(value, ",") {
		name, file, ok := strings.Cut(item, "=")
		name, file = strings.TrimSpace(name), strings.TrimSpace(file)
		if !ok || name == "" || file == "" || seen[name] {
			continue
		}
		seen[name] = true
		list = append(list, ResultSourceConfig{Name: name, File: file})
	}

	return list
}
