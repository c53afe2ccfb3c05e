package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/havenstead/tenant-assist-be/internal/core/auth"
	"github.com/havenstead/tenant-assist-be/internal/core/dialogue"
	"github.com/havenstead/tenant-assist-be/internal/core/email"
	"github.com/havenstead/tenant-assist-be/internal/core/jobs"
	"github.com/havenstead/tenant-assist-be/internal/core/llm"
	"github.com/havenstead/tenant-assist-be/internal/core/notification"
	"github.com/havenstead/tenant-assist-be/internal/core/whatsapp"
	"github.com/havenstead/tenant-assist-be/internal/handlers"
	"github.com/havenstead/tenant-assist-be/internal/models"
	"github.com/havenstead/tenant-assist-be/internal/repositories"
	"github.com/havenstead/tenant-assist-be/internal/services"
	"github.com/havenstead/tenant-assist-be/internal/shared/config"
	"github.com/havenstead/tenant-assist-be/internal/shared/database"
	"github.com/havenstead/tenant-assist-be/internal/shared/utils"

	_ "github.com/havenstead/tenant-assist-be/docs"
)

// @title Tenant Assistant API
// @version 1.0
// @description Chat assistant backend for the Havenstead rental platform
// @contact.name API Support
// @contact.email support@havenstead.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting tenant-assist API on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Init repositories (use GORM instance)
	leaseRepo := repositories.NewLeaseRepo(db.GORM)
	paymentRepo := repositories.NewPaymentRepo(db.GORM)
	propertyRepo := repositories.NewPropertyRepo(db.GORM)
	kbRepo := repositories.NewKBRepo(db.GORM)
	conversationRepo := repositories.NewConversationRepo(db.GORM)
	contextRepo := repositories.NewContextRepo(db.GORM)
	actionLogRepo := repositories.NewActionLogRepo(db.GORM)
	maintenanceRepo := repositories.NewMaintenanceRepo(db.GORM)
	feedbackRepo := repositories.NewFeedbackRepo(db.GORM)
	notificationRepo := repositories.NewNotificationRepo(db.GORM)
	escalationStore := repositories.NewEscalationStore(db.GORM, conversationRepo)

	// Init email service (multi-provider support)
	var emailProvider email.Provider
	switch cfg.EmailProvider {
	case "resend":
		emailProvider = email.NewResendProvider(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	case "brevo":
		emailProvider = email.NewBrevoProvider(cfg.BrevoAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	default:
		if cfg.BrevoAPIKey != "" {
			emailProvider = email.NewBrevoProvider(cfg.BrevoAPIKey, cfg.EmailFrom, cfg.EmailFromName)
		} else if cfg.ResendAPIKey != "" {
			emailProvider = email.NewResendProvider(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName)
		}
	}
	var emailService *email.Service
	if emailProvider != nil {
		emailService = email.NewService(emailProvider)
		log.Printf("📧 Using Email provider: %s", emailService.GetProviderName())
	} else {
		log.Printf("⚠️  Email service not configured")
	}

	// Init WhatsApp service (optional side channel)
	var waSender notification.WhatsAppSender
	if cfg.WhatsAppEnabled {
		waService := whatsapp.NewService(cfg.WhatsAppStoreURL)
		if err := waService.Connect(); err != nil {
			log.Printf("⚠️  WhatsApp connect failed, channel disabled: %v", err)
		} else {
			defer waService.Disconnect()
			waSender = waService
			log.Printf("📱 WhatsApp channel enabled")
		}
	}

	// Init notification service (multi-channel)
	var emailSender notification.EmailSender
	if emailService != nil {
		emailSender = emailService
	}
	notificationService := notification.NewService(notificationRepo, emailSender, waSender)

	// Init optional LLM fallback
	var fallback dialogue.FallbackResponder
	if cfg.OpenAIKey != "" {
		llmService := llm.NewService(llm.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel))
		fallback = llmService
		log.Printf("🤖 LLM fallback enabled: %s", llmService.GetProviderName())
	}

	// Init dialogue pipeline
	orchestrator := dialogue.NewOrchestrator(
		dialogue.NewPaymentHandler(leaseRepo, paymentRepo),
		dialogue.NewLeaseHandler(leaseRepo),
		dialogue.NewPropertyHandler(propertyRepo),
		dialogue.NewFAQMatcher(kbRepo),
		dialogue.NewEscalationHandler(escalationStore),
		maintenanceRepo,
		fallback,
	)

	// Init services
	chatService := services.NewChatService(
		conversationRepo, contextRepo, actionLogRepo, feedbackRepo,
		escalationStore, orchestrator, notificationService,
	)

	// Init cron housekeeping
	scheduler := jobs.NewScheduler(contextRepo, leaseRepo, notificationService)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Init handlers
	chatbotHandler := handlers.NewChatbotHandler(chatService)
	kbHandler := handlers.NewKBHandler(kbRepo)
	paymentHandler := handlers.NewPaymentHandler(leaseRepo, cfg.PortalBaseURL)
	healthHandler := handlers.NewHealthHandler(db)

	// Init auth
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authMiddleware := auth.Middleware(jwtService)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Tenant Assistant API",
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check and metrics
	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Chatbot routes
	app.Get("/api/chatbot/conversation", authMiddleware, chatbotHandler.GetConversation)
	app.Post("/api/chatbot/message", authMiddleware, chatbotHandler.PostMessage)
	app.Put("/api/chatbot/feedback", authMiddleware, chatbotHandler.PutFeedback)

	// Knowledge base routes (staff only)
	app.Get("/api/knowledge-base", authMiddleware, kbHandler.ListEntries)
	app.Post("/api/knowledge-base", authMiddleware, auth.RequireRole(models.RoleAdmin, models.RoleLandlord), kbHandler.AddEntry)
	app.Delete("/api/knowledge-base/:id", authMiddleware, auth.RequireRole(models.RoleAdmin, models.RoleLandlord), kbHandler.DeleteEntry)

	// Payment routes
	app.Get("/api/payments/qr", authMiddleware, paymentHandler.GetPaymentQR)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("✅ Listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
