package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"imoveisuniao_backend/internal/controller"
	"imoveisuniao_backend/internal/middleware"
	"imoveisuniao_backend/internal/model"
	"imoveisuniao_backend/internal/service"
	"imoveisuniao_backend/pkg/config"
	"imoveisuniao_backend/pkg/cron"
	"imoveisuniao_backend/pkg/database"
	"imoveisuniao_backend/pkg/seed"
	"imoveisuniao_backend/pkg/utils/storage"
)

type controllers struct {
	auth       *controller.AuthController
	properties *controller.PropertyController
	types      *controller.PropertyTypeController
	leads      *controller.LeadController
	cep        *controller.CEPController
}

func setupRoutes(app *fiber.App, ctl controllers) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", ctl.auth.Register)
	auth.Post("/login", ctl.auth.Login)
	auth.Post("/logout", ctl.auth.Logout)

	// Public Routes
	api.Get("/p", ctl.properties.FindPublic)
	api.Get("/properties/:id<int>", ctl.properties.FindOne)
	api.Post("/properties/:id<int>/leads", ctl.leads.Create)
	api.Get("/property-types", ctl.types.List)
	api.Get("/property-types/:id<int>/subtypes", ctl.types.ListSubtypes)
	api.Get("/cep/:cep", ctl.cep.Lookup)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", ctl.auth.GetMe)

	// Admin Property Routes
	properties := protected.Group("/properties", middleware.RequireAdmin())
	properties.Get("/", ctl.properties.FindAll)
	properties.Post("/", ctl.properties.Create)
	properties.Patch("/:id<int>", ctl.properties.Update)
	properties.Delete("/:id<int>", ctl.properties.Delete)
	properties.Post("/:id<int>/media", ctl.properties.SaveMedia)
	properties.Delete("/media/:media_id<int>", ctl.properties.DeleteMedia)

	// Admin Lead Routes
	leads := protected.Group("/leads", middleware.RequireAdmin())
	leads.Get("/", ctl.leads.List)
	leads.Put("/:id<int>/status", ctl.leads.UpdateStatus)
}

func main() {
	cfg := config.Load()

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = database.Migrate(db,
		&model.User{},
		&model.PropertyType{},
		&model.PropertySubtype{},
		&model.Property{},
		&model.PropertyFeature{},
		&model.PropertyMedia{},
		&model.Lead{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedPropertyTaxonomy(db)

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatal("Could not initialize storage client:", err)
	}

	propertyService := service.NewPropertyService(db, store)
	typeService := service.NewTypeService(db)
	leadService := service.NewLeadService(db)
	authService := service.NewAuthService(db)

	cron.InitPropertyExpiryCron(propertyService)

	app := fiber.New(fiber.Config{
		BodyLimit: 55 * 1024 * 1024, // 10 images of 5MB plus form fields
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, controllers{
		auth:       controller.NewAuthController(authService),
		properties: controller.NewPropertyController(propertyService),
		types:      controller.NewPropertyTypeController(typeService),
		leads:      controller.NewLeadController(leadService),
		cep:        controller.NewCEPController(),
	})

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
