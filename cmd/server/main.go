package main

import (
	"log"
	"strings"
	"time"

	"mktracker-backend/internal/auth"
	"mktracker-backend/internal/branch"
	"mktracker-backend/internal/config"
	"mktracker-backend/internal/dashboard"
	"mktracker-backend/internal/database"
	"mktracker-backend/internal/expense"
	"mktracker-backend/internal/importer"
	"mktracker-backend/internal/machine"
	"mktracker-backend/internal/models"
	"mktracker-backend/internal/mw"
	"mktracker-backend/internal/sparepart"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	gocache "github.com/patrickmn/go-cache"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // room for uploaded workbooks
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Read routes (any authenticated role)
	protected.Get("/branches", branch.ListHandler())
	protected.Get("/machines", machine.ListHandler())
	protected.Get("/expenses", expense.ListHandler())
	protected.Get("/parts", sparepart.ListHandler())

	store := gocache.New(30*time.Second, time.Minute)
	protected.Get("/dashboard/stats", mw.Cache(store, 30*time.Second), dashboard.StatsHandler())

	protected.Get("/:kind/template", importer.TemplateHandler())
	protected.Get("/:kind/export", importer.ExportHandler())

	// Admin routes (writes)
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/auth/users", auth.CreateUserHandler())

	adminRoutes.Post("/branches", branch.CreateHandler())
	adminRoutes.Put("/branches/:id", branch.UpdateHandler())
	adminRoutes.Delete("/branches/:id", branch.DeleteHandler())
	adminRoutes.Delete("/branches", branch.ClearAllHandler())

	adminRoutes.Post("/machines", machine.CreateHandler())
	adminRoutes.Put("/machines/:id", machine.UpdateHandler())
	adminRoutes.Delete("/machines/:id", machine.DeleteHandler())
	adminRoutes.Delete("/machines", machine.ClearAllHandler())

	adminRoutes.Post("/expenses", expense.CreateHandler())
	adminRoutes.Put("/expenses/:id", expense.UpdateHandler())
	adminRoutes.Delete("/expenses/:id", expense.DeleteHandler())
	adminRoutes.Delete("/expenses", expense.ClearAllHandler())

	adminRoutes.Post("/parts", sparepart.CreateHandler())
	adminRoutes.Put("/parts/:id", sparepart.UpdateHandler())
	adminRoutes.Delete("/parts/:id", sparepart.DeleteHandler())
	adminRoutes.Delete("/parts", sparepart.ClearAllHandler())

	adminRoutes.Post("/:kind/import", importer.ImportHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
