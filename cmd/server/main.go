package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"

	"github.com/carbonledger/carbonledger/internal/config"
	"github.com/carbonledger/carbonledger/internal/database"
	"github.com/carbonledger/carbonledger/internal/handlers"
	"github.com/carbonledger/carbonledger/internal/middleware"
	"github.com/carbonledger/carbonledger/internal/types"
)

func main() {
	// .env is optional, real deployments use the environment
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed reference data
	if cfg.SeedOnStart {
		if err := database.Seed(db); err != nil {
			log.Fatalf("Failed to seed reference data: %v", err)
		}
	}

	// Create Fiber app with the server-rendered page engine
	engine := html.New(cfg.ViewsDir, ".html")
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		Views:                 engine,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("carbonledger")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Static assets for the page shells
	app.Static("/static", cfg.StaticDir)

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	facilityHandler := &handlers.FacilityHandler{DB: db}
	factorHandler := &handlers.FactorHandler{DB: db}
	activityHandler := &handlers.ActivityHandler{DB: db}
	reportHandler := &handlers.ReportHandler{DB: db}
	targetHandler := &handlers.TargetHandler{DB: db}
	forecastHandler := &handlers.ForecastHandler{DB: db}
	plannerHandler := &handlers.PlannerHandler{DB: db}
	fileHandler := &handlers.FileHandler{DB: db, Cfg: cfg}
	profileHandler := &handlers.ProfileHandler{DB: db}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	// Health endpoint sits outside /api for container checks
	app.Get("/healthz", healthHandler.Check)

	protected := middleware.Protected(cfg, db)

	// API routes under /api
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/logout", authHandler.Logout)
	auth.Get("/me", protected, authHandler.Me)

	facilities := api.Group("/facilities", protected)
	facilities.Get("/", facilityHandler.List)
	facilities.Post("/", facilityHandler.Create)
	facilities.Get("/:id", facilityHandler.Get)
	facilities.Put("/:id", facilityHandler.Update)
	facilities.Delete("/:id", facilityHandler.Delete)

	factors := api.Group("/factors", protected)
	factors.Get("/", factorHandler.List)
	factors.Post("/", factorHandler.Create)
	factors.Post("/import", factorHandler.Import)
	factors.Get("/export", factorHandler.Export)

	activities := api.Group("/activities", protected)
	activities.Post("/", activityHandler.Create)
	activities.Post("/quick/:facility_id", activityHandler.Quick)
	activities.Get("/types", activityHandler.Types)
	activities.Get("/", activityHandler.List)
	activities.Delete("/:id", activityHandler.Delete)

	api.Get("/reports/summary", protected, reportHandler.Summary)

	targets := api.Group("/targets", protected)
	targets.Post("/", targetHandler.Create)
	targets.Get("/", targetHandler.List)
	targets.Get("/progress/:id", targetHandler.Progress)

	forecast := api.Group("/forecast", protected)
	forecast.Post("/scenario", forecastHandler.CreateScenario)
	forecast.Get("/scenarios", forecastHandler.ListScenarios)
	forecast.Get("/scenario/:id", forecastHandler.RunScenario)

	planner := api.Group("/planner", protected)
	planner.Get("/library", plannerHandler.Library)
	planner.Post("/library", plannerHandler.CreateLibraryAction)
	planner.Post("/apply", plannerHandler.Apply)
	planner.Get("/impact", plannerHandler.Impact)
	planner.Post("/evaluate", plannerHandler.Evaluate)

	files := api.Group("/files", protected)
	files.Post("/upload", fileHandler.Upload)
	files.Get("/", fileHandler.List)
	files.Get("/list", fileHandler.List)
	files.Delete("/:id", fileHandler.Delete)

	profile := api.Group("/profile", protected)
	profile.Get("/me", profileHandler.Me)
	profile.Put("/me", profileHandler.Update)

	// Browser-facing page shells
	pageHandler := &handlers.PageHandler{}
	pageHandler.Register(app, middleware.ProtectedPage(cfg, db))

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	if e, ok := err.(*types.APIError); ok {
		code = e.Code
		message = e.Message
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
