// Package config provides centralized default values for AssetGrid
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Tenant Configuration
	ConfigDir  string
	MaxTenants int

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int

	// Selection Engine
	LargeSelectionThreshold int
	MaxSelectionPerSession  int
	SelectionIdleTTL        time.Duration
	DefaultSnapshotPageSize int
	MaxSnapshotPageSize     int

	// Cache Configuration
	SnapshotPageTTL      time.Duration
	CacheCleanupInterval time.Duration
	CacheCleanupVerbose  bool

	// Websocket Configuration
	WSWriteTimeout        time.Duration
	WSPongTimeout         time.Duration
	WSMaxClientsPerTenant int

	// Auth Configuration
	JWTSecret     string
	AESKey        string
	TokenLifetime time.Duration
	BcryptCost    int

	// Alert Email Configuration
	AlertEmailEnabled bool

	// Media Configuration
	ThumbnailDir     string
	ThumbnailWidth   int
	ThumbnailQuality float32
)

func init() {
	loadEnvFile()

	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second)

	ConfigDir = getEnvString("ASSETGRID_CONFIG_DIR", "config")
	MaxTenants = getEnvInt("MAX_TENANTS", 25)

	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 5)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 10)

	LargeSelectionThreshold = getEnvInt("LARGE_SELECTION_THRESHOLD", 100)
	MaxSelectionPerSession = getEnvInt("MAX_SELECTION_PER_SESSION", 10000)
	SelectionIdleTTL = getEnvDuration("SELECTION_IDLE_TTL", 4*time.Hour)
	DefaultSnapshotPageSize = getEnvInt("DEFAULT_SNAPSHOT_PAGE_SIZE", 50)
	MaxSnapshotPageSize = getEnvInt("MAX_SNAPSHOT_PAGE_SIZE", 200)

	SnapshotPageTTL = getEnvDuration("SNAPSHOT_PAGE_TTL", 5*time.Minute)
	CacheCleanupInterval = getEnvDuration("CACHE_CLEANUP_INTERVAL", 15*time.Minute)
	CacheCleanupVerbose = getEnvBool("CACHE_CLEANUP_VERBOSE", false)

	WSWriteTimeout = getEnvDuration("WS_WRITE_TIMEOUT", 10*time.Second)
	WSPongTimeout = getEnvDuration("WS_PONG_TIMEOUT", 60*time.Second)
	WSMaxClientsPerTenant = getEnvInt("WS_MAX_CLIENTS_PER_TENANT", 100)

	JWTSecret = getEnvString("JWT_SECRET", "")
	AESKey = getEnvString("AES_KEY", "")
	TokenLifetime = getEnvDuration("TOKEN_LIFETIME", 24*time.Hour)
	BcryptCost = getEnvInt("BCRYPT_COST", 10)

	AlertEmailEnabled = getEnvBool("ALERT_EMAIL_ENABLED", false)

	ThumbnailDir = getEnvString("THUMBNAIL_DIR", "thumbs")
	ThumbnailWidth = getEnvInt("THUMBNAIL_WIDTH", 320)
	ThumbnailQuality = float32(getEnvInt("THUMBNAIL_QUALITY", 80))
}
