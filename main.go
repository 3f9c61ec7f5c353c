package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/bot"
	"github.com/yeremiapane/food-order-bot/config"
	"github.com/yeremiapane/food-order-bot/database"
	"github.com/yeremiapane/food-order-bot/feed"
	"github.com/yeremiapane/food-order-bot/locales"
	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/router"
	"github.com/yeremiapane/food-order-bot/services"
	"github.com/yeremiapane/food-order-bot/utils"
)

func init() {
	// Load .env sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database ke utils untuk digunakan di controller
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := database.Seed(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed database: %v", err)
	}

	// Services
	customers := services.NewUserService(db)
	otp := services.NewOtpService(db)
	catalog := services.NewCatalogService(db)
	addresses := services.NewAddressService(db)
	carts := services.NewCartService(db)
	orders := services.NewOrderService(db, cfg.DeliveryFee, cfg.Discount)

	sessions := bot.NewSessionStore(cfg.DefaultLocale, 24*time.Hour)

	deps := bot.Deps{
		Sessions:     sessions,
		Locales:      locales.New(cfg.DefaultLocale),
		Auth:         otp,
		Catalog:      catalog,
		Addresses:    addresses,
		Customers:    customers,
		Carts:        carts,
		Orders:       orders,
		Feed:         feed.Broadcaster{},
		RestaurantID: 1,
	}

	telegramBot, err := bot.New(cfg.BotToken, deps)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to start Telegram bot: %v", err)
	}

	r := router.SetupRouter(utils.GetDB())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		utils.InfoLogger.Printf("HTTP server listening on port %s", cfg.Port)
		return r.Run(":" + cfg.Port)
	})

	g.Go(func() error {
		return telegramBot.Start(ctx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		utils.ErrorLogger.Fatalf("Shutdown with error: %v", err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Customer{},
		&models.Address{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.CartItem{},
		&models.OrderData{},
		&models.Order{},
		&models.OrderItem{},
		&models.OtpRequest{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
