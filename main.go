package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"wellness-game-system/handlers"
	"wellness-game-system/middleware"
	"wellness-game-system/models"
	"wellness-game-system/services"
	"wellness-game-system/utils"
	"wellness-game-system/workers"

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
		BodyLimit: 50 * 1024 * 1024, // 50MB — avatar models and preview images
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Load allowed origins from environment variable
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
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Session-Token, X-Service-Token, X-Device-ID",
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
		&models.UserWallet{},
		&models.Asset{},
		&models.OwnedAsset{},
		&models.EquippedAsset{},
		&models.DailyReward{},
		&models.UserClaimState{},
		&models.AchievementType{},
		&models.UserAchievement{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := services.SeedAchievementTypes(db); err != nil {
		log.Fatal("failed to seed achievement types:", err)
	}

	walletService := services.NewWalletService(db)
	ownershipService := services.NewOwnershipService(db)
	equipmentService := services.NewEquipmentService(db)
	shopService := services.NewShopService(db)
	claimService := services.NewClaimService(db)
	achievementService := services.NewAchievementService(db)
	catalogService := services.NewCatalogService(db)

	// --- CONFIGURE Profile Service details for wallet seeding ---
	profileServiceURL := os.Getenv("PROFILE_SERVICE_URL")
	if profileServiceURL == "" {
		log.Fatal("PROFILE_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("WELLNESS_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("WELLNESS_SERVICE_TOKEN environment variable not set")
	}
	// --- END CONFIG ---

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seedWorker := workers.NewWalletSeedWorker(db, profileServiceURL, "/api/v1/public/profiles", serviceToken)
	seedWorker.Start(ctx)

	catalogService.StartPublishScheduler()

	// ✅ Setup routes — public catalog first, then user-scoped groups
	handlers.SetupShopRoutes(app, shopService, catalogService)
	handlers.SetupEquipmentRoutes(app, equipmentService)
	handlers.SetupRewardRoutes(app, claimService)
	handlers.SetupWalletRoutes(app, walletService, ownershipService, achievementService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Wallet Seed Worker running")
	log.Println("✅ Publish scheduler running")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
