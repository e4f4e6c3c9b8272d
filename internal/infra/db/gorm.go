package db

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres connection and returns *gorm.DB with the
// pool sized for a small API instance. DATABASE_URL wins when present;
// otherwise the DSN is assembled from the discrete POSTGRES_* variables.
func Connect() (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsnFromEnv()), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevelFromEnv()),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(intFromEnv("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(intFromEnv("DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gdb, nil
}

func dsnFromEnv() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		envOr("POSTGRES_HOST", "localhost"),
		envOr("POSTGRES_PORT", "5432"),
		envOr("POSTGRES_USER", "postgres"),
		envOr("POSTGRES_PASSWORD", "postgres"),
		envOr("POSTGRES_DB", "souk"),
		envOr("POSTGRES_SSLMODE", "disable"),
	)
}

// SQL echo only outside prod.
func logLevelFromEnv() logger.LogLevel {
	if os.Getenv("GO_ENV") == "prod" {
		return logger.Warn
	}
	return logger.Info
}

func envOr(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func intFromEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
