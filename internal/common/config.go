package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Pipeline PipelineConfig
	Scoring  ScoringConfig
	Output   OutputConfig
}

// DatabaseConfig holds back-office mirror database configuration
type DatabaseConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// PipelineConfig holds RFM pipeline configuration
type PipelineConfig struct {
	MinYear      int
	CartsPath    string
	SnapshotPath string
	SnapshotTTL  time.Duration
}

// ScoringConfig holds marketing score thresholds
type ScoringConfig struct {
	HighValue       float64
	MediumValue     float64
	HighFrequency   int
	MediumFrequency int
	RecentDays      float64
	MediumDays      float64
	HighCartValue   float64
	MediumCartValue float64
}

// OutputConfig holds export configuration
type OutputConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Pipeline: PipelineConfig{
			MinYear:      getEnvAsInt("RFM_MIN_YEAR", 2024),
			CartsPath:    getEnv("CARTS_CSV_PATH", ""),
			SnapshotPath: getEnv("SNAPSHOT_DB_PATH", ""),
			SnapshotTTL:  getEnvAsDuration("SNAPSHOT_TTL", 24*time.Hour),
		},
		Scoring: ScoringConfig{
			HighValue:       getEnvAsFloat64("SCORE_HIGH_VALUE", 1_000_000),
			MediumValue:     getEnvAsFloat64("SCORE_MEDIUM_VALUE", 300_000),
			HighFrequency:   getEnvAsInt("SCORE_HIGH_FREQUENCY", 5),
			MediumFrequency: getEnvAsInt("SCORE_MEDIUM_FREQUENCY", 3),
			RecentDays:      getEnvAsFloat64("SCORE_RECENT_DAYS", 7),
			MediumDays:      getEnvAsFloat64("SCORE_MEDIUM_DAYS", 30),
			HighCartValue:   getEnvAsFloat64("SCORE_HIGH_CART_VALUE", 300_000),
			MediumCartValue: getEnvAsFloat64("SCORE_MEDIUM_CART_VALUE", 100_000),
		},
		Output: OutputConfig{
			Path: getEnv("XLSX_OUT", "./rfm-report.xlsx"),
		},
	}
}

// Validate checks cross-field constraints before a run starts.
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("RFM_MIN_YEAR", c.Pipeline.MinYear, IntBetween(2020, 2030))
	v.Field("XLSX_OUT", c.Output.Path, Required)
	return v.Error()
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
