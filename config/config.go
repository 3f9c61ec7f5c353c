package config

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config menampung seluruh konfigurasi dari environment.
type Config struct {
	Port          string
	BotToken      string
	DBDriver      string
	DBDSN         string
	DefaultLocale string

	// Komponen harga order (lihat order_service)
	DeliveryFee float64
	Discount    float64
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		BotToken:      os.Getenv("BOT_TOKEN"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBDSN:         os.Getenv("DB_DSN"),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		DeliveryFee:   getEnvFloat("DELIVERY_FEE", 10000),
		Discount:      getEnvFloat("ORDER_DISCOUNT", 1000),
	}
}

// InitDB membuka koneksi database sesuai driver.
// DB_DRIVER=sqlite dipakai untuk development/test tanpa MySQL.
func InitDB() (*gorm.DB, error) {
	cfg := Load()

	switch cfg.DBDriver {
	case "sqlite":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = "food_order.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "mysql":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				getEnv("DB_USER", "root"),
				os.Getenv("DB_PASSWORD"),
				getEnv("DB_HOST", "127.0.0.1"),
				getEnv("DB_PORT", "3306"),
				getEnv("DB_NAME", "food_order"),
			)
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
