package config

import (
	"Macho-AI-Backend/internal/api/handlers"
	"Macho-AI-Backend/internal/api/routes"
	"Macho-AI-Backend/internal/middleware"
	"Macho-AI-Backend/internal/utils"
	"Macho-AI-Backend/internal/utils/storage"
	"Macho-AI-Backend/pkg/analysis"
	"Macho-AI-Backend/pkg/creature"
	"Macho-AI-Backend/pkg/snapshot"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Tokyo",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	store := creature.NewStore(utils.GetTargets())

	// Repository
	mealScanRepository := creature.NewMealScanRepository(db)
	snapshotRepository := snapshot.NewSnapshotRepository(db)

	// Service
	analysisService := analysis.NewAnalysisService()
	creatureService := creature.NewCreatureService(store, mealScanRepository, analysisService, s3)
	snapshotService := snapshot.NewSnapshotService(store, snapshotRepository, s3)

	// Handler
	creatureHandler := handlers.NewCreatureHandler(creatureService, validator)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		CreatureHandler: creatureHandler,
		SnapshotHandler: snapshotHandler,
		Middleware:      middlewares,
	}
	routesConfig.Setup()
	return app, nil
}
