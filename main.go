package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lifequest-system/handlers"
	"lifequest-system/middleware"
	"lifequest-system/models"
	"lifequest-system/services"
	"lifequest-system/utils"
	"lifequest-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB, image uploads only
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.Statistic{},
		&models.UserStreak{},
		&models.ShopItem{},
		&models.UserInventory{},
		&models.UserBoost{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Trade{},
		&models.UserDailyRoulette{},
		&models.Todo{},
		&models.Dream{},
		&models.DreamImage{},
		&models.DreamLike{},
		&models.FriendRelation{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	achievementService := services.NewAchievementService(db)
	progressService := services.NewProgressService(db, achievementService)
	streakService := services.NewStreakService(db, services.DefaultStreakMilestones, achievementService)
	profileService := services.NewProfileService(db)
	shopService := services.NewShopService(db, progressService, achievementService)
	tradeService := services.NewTradeService(db)
	rouletteService := services.NewRouletteService(db, services.DefaultDailyRewards)
	todoService := services.NewTodoService(db, streakService, progressService)
	dreamService := services.NewDreamService(db, services.NewAIClient())
	friendService := services.NewFriendService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	overdueSweeper := workers.NewOverdueTodoSweeper(todoService)
	go workers.PollOverdueTodos(ctx, overdueSweeper, 10*time.Minute)

	shopService.StartBoostSweeper()

	handlers.SetupAccountRoutes(app, profileService, shopService, achievementService, streakService, progressService)
	handlers.SetupShopRoutes(app, shopService)
	handlers.SetupTradeRoutes(app, tradeService, friendService)
	handlers.SetupRouletteRoutes(app, rouletteService)
	handlers.SetupTodoRoutes(app, todoService)
	handlers.SetupDreamRoutes(app, dreamService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Overdue task sweeper running (every 10m)")
	log.Println("✅ Boost sweeper scheduled (hourly)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
