// Package config loads the runtime settings from the environment. A .env
// file is honored when present; real environment variables win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"dawam/internal/extract"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	Environment string

	SeedAdminUser     string
	SeedAdminPassword string
	RunMigrations     bool
	RunSeed           bool

	MaxBodyBytes int64
	SessionTTL   time.Duration

	// Attendance derivation defaults; callers may override per request.
	StartTime          string
	GraceMinutes       int
	ScheduleMode       string
	OvertimeEnd        string
	DailyRequiredHours float64
	SeasonFrom         string
	SeasonTo           string
	SeasonStart        string
	SeasonEnd          string

	// PDF assets.
	FontPath string
	LogoPath string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:        getEnv("APP_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		Environment: getEnv("APP_ENV", "development"),

		SeedAdminUser:     getEnv("SEED_ADMIN_USER", "admin"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:           getEnvBool("RUN_SEED", true),

		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 16<<20)),
		SessionTTL:   getEnvDuration("SESSION_TTL", 8*time.Hour),

		StartTime:          getEnv("START_TIME", "08:00"),
		GraceMinutes:       getEnvInt("GRACE_MINUTES", 15),
		ScheduleMode:       getEnv("SCHEDULE_MODE", "by_nationality"),
		OvertimeEnd:        getEnv("OVERTIME_END", "17:00"),
		DailyRequiredHours: getEnvFloat("DAILY_REQUIRED_HOURS", 9),
		SeasonFrom:         getEnv("SEASON_FROM", "2026-02-18"),
		SeasonTo:           getEnv("SEASON_TO", "2026-03-17"),
		SeasonStart:        getEnv("SEASON_START", "09:30"),
		SeasonEnd:          getEnv("SEASON_END", "15:30"),

		FontPath: getEnv("PDF_FONT_PATH", "fonts/Amiri-Regular.ttf"),
		LogoPath: getEnv("PDF_LOGO_PATH", "assets/logo.png"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.GraceMinutes < 0 {
		return fmt.Errorf("GRACE_MINUTES must not be negative")
	}
	for key, value := range map[string]string{
		"START_TIME":   c.StartTime,
		"OVERTIME_END": c.OvertimeEnd,
		"SEASON_START": c.SeasonStart,
		"SEASON_END":   c.SeasonEnd,
	} {
		if value == "" && (key == "SEASON_START" || key == "SEASON_END") {
			continue
		}
		if _, ok := extract.ParseClock(value); !ok {
			return fmt.Errorf("%s is not a valid HH:MM time: %q", key, value)
		}
	}
	for key, value := range map[string]string{
		"SEASON_FROM": c.SeasonFrom,
		"SEASON_TO":   c.SeasonTo,
	} {
		if value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Errorf("%s is not a valid YYYY-MM-DD date: %q", key, value)
		}
	}
	return nil
}
