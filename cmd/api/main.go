package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"talentboard/internal/config"
	"talentboard/internal/domain"
	"talentboard/internal/handler"
	"talentboard/internal/middleware"
	"talentboard/internal/repository"
	"talentboard/internal/service"
	"talentboard/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	repos := repository.NewRepositories(db)
	hub := ws.NewHub()
	services := service.NewServices(repos, redis, hub, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services, hub)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services, hub *ws.Hub) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/ws", ws.Upgrade(services.Auth), ws.Handler(hub))

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	protected := v1.Group("", middleware.AuthRequired(services.Auth))

	notifications := protected.Group("/notifications")
	notifications.Post("/system", middleware.RequireRole(domain.RoleAdmin), h.Notification.NotifySystemWide)
	notifications.Post("/role", middleware.RequireRole(domain.RoleAdmin), h.Notification.NotifyRole)
	notifications.Post("/user", middleware.RequireRole(domain.RoleAdmin), h.Notification.NotifyUser)
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread", h.Notification.ListUnread)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Get("/:id", h.Notification.Get)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Delete("/:id", h.Notification.Delete)

	messages := protected.Group("/messages")
	messages.Post("/send", h.Message.Send)
	messages.Get("/conversations", h.Message.ListConversations)
	messages.Get("/conversations/:otherUserId", h.Message.GetConversation)
	messages.Post("/conversations/:otherUserId/read", h.Message.MarkConversationAsRead)
	messages.Get("/unread-count", h.Message.GetUnreadCount)
	messages.Patch("/:id/read", h.Message.MarkAsRead)

	// Event intake for the surrounding platform. Employers emit job and
	// hiring-flow events, admins emit moderation events.
	events := protected.Group("/events")
	employerEvents := middleware.RequireAnyRole(domain.RoleEmployer, domain.RoleAdmin)
	events.Post("/job-posted", employerEvents, h.Event.JobPosted)
	events.Post("/application-status", employerEvents, h.Event.ApplicationStatus)
	events.Post("/interview-scheduled", employerEvents, h.Event.InterviewScheduled)
	events.Post("/interview-updated", employerEvents, h.Event.InterviewUpdated)
	events.Post("/interview-cancelled", employerEvents, h.Event.InterviewCancelled)
	events.Post("/assessment-assigned", employerEvents, h.Event.AssessmentAssigned)
	events.Post("/assessment-scored", employerEvents, h.Event.AssessmentScored)
	events.Post("/employer-approved", middleware.RequireRole(domain.RoleAdmin), h.Event.EmployerApproved)
	events.Post("/employer-rejected", middleware.RequireRole(domain.RoleAdmin), h.Event.EmployerRejected)
}
