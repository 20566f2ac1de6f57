package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gega19/barber-app-backoffice-sub001/internal/audit"
	"github.com/gega19/barber-app-backoffice-sub001/internal/auth"
	"github.com/gega19/barber-app-backoffice-sub001/internal/cache"
	"github.com/gega19/barber-app-backoffice-sub001/internal/config"
	"github.com/gega19/barber-app-backoffice-sub001/internal/handlers"
	infraRepo "github.com/gega19/barber-app-backoffice-sub001/internal/infra/repository"
	"github.com/gega19/barber-app-backoffice-sub001/internal/middleware"
	"github.com/gega19/barber-app-backoffice-sub001/internal/storage"
	ucAppointment "github.com/gega19/barber-app-backoffice-sub001/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	ch *cache.Cache,
	log zerolog.Logger,
) {

	// ------------------------------
	// Infra singletons
	// ------------------------------
	jwtSvc := auth.New(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	uploader := storage.NewUploader(cfg)

	// ------------------------------
	// Use cases
	// ------------------------------
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, auditDispatcher)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher)
	verifyPaymentUC := ucAppointment.NewVerifyPayment(appointmentRepo, auditDispatcher)

	// ------------------------------
	// Handlers
	// ------------------------------
	authHandler := handlers.NewAuthHandler(db, jwtSvc, ch, cfg)
	userHandler := handlers.NewUserHandler(db, auditDispatcher)
	appointmentHandler := handlers.NewAppointmentHandler(
		db, auditDispatcher,
		confirmUC, completeUC, cancelUC, verifyPaymentUC,
	)
	promotionHandler := handlers.NewPromotionHandler(db, auditDispatcher)
	paymentMethodHandler := handlers.NewPaymentMethodHandler(db, auditDispatcher)
	specialtyHandler := handlers.NewSpecialtyHandler(db, auditDispatcher)
	notificationHandler := handlers.NewNotificationHandler(db, auditDispatcher)
	workplaceHandler := handlers.NewWorkplaceHandler(db, auditDispatcher)
	statsHandler := handlers.NewStatsHandler(db, ch)
	uploadHandler := handlers.NewUploadHandler(uploader)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appWebHandler := handlers.NewAppWebHandler(cfg)

	// ------------------------------
	// Web pages (HTML)
	// ------------------------------
	webApp := r.Group("/app")
	{
		webApp.GET("/login", appWebHandler.LoginPage)

		for _, page := range []string{
			"dashboard", "users", "appointments", "specialties",
			"promotions", "workplaces", "payment-methods",
			"payment-verification", "notifications", "audit-logs",
		} {
			webApp.GET("/"+page, appWebHandler.Page(page))
		}
	}

	// ------------------------------
	// API (JSON)
	// ------------------------------
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/auth/logout", authHandler.Logout)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(jwtSvc), middleware.RequireBackofficeRole())
		{
			secured.GET("/auth/me", authHandler.Me)

			secured.GET("/users", userHandler.List)
			secured.POST("/users", userHandler.Create)
			secured.GET("/users/:id", userHandler.Get)
			secured.PUT("/users/:id", userHandler.Update)
			secured.DELETE("/users/:id", userHandler.Delete)

			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/payment", appointmentHandler.VerifyPayment)

			secured.GET("/promotions", promotionHandler.List)
			secured.POST("/promotions", promotionHandler.Create)
			secured.GET("/promotions/:id", promotionHandler.Get)
			secured.PUT("/promotions/:id", promotionHandler.Update)
			secured.PATCH("/promotions/:id/active", promotionHandler.ToggleActive)
			secured.DELETE("/promotions/:id", promotionHandler.Delete)

			secured.GET("/payment-methods", paymentMethodHandler.List)
			secured.POST("/payment-methods", paymentMethodHandler.Create)
			secured.GET("/payment-methods/:id", paymentMethodHandler.Get)
			secured.PUT("/payment-methods/:id", paymentMethodHandler.Update)
			secured.PATCH("/payment-methods/:id/active", paymentMethodHandler.ToggleActive)
			secured.DELETE("/payment-methods/:id", paymentMethodHandler.Delete)

			secured.GET("/specialties", specialtyHandler.List)
			secured.POST("/specialties", specialtyHandler.Create)
			secured.GET("/specialties/:id", specialtyHandler.Get)
			secured.PUT("/specialties/:id", specialtyHandler.Update)
			secured.DELETE("/specialties/:id", specialtyHandler.Delete)

			secured.GET("/notifications", notificationHandler.List)
			secured.POST("/notifications", notificationHandler.Send)
			secured.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			secured.GET("/notifications/:id", notificationHandler.Get)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			secured.DELETE("/notifications/:id", notificationHandler.Delete)

			secured.GET("/workplaces", workplaceHandler.List)
			secured.POST("/workplaces", workplaceHandler.Create)
			secured.GET("/workplaces/:id", workplaceHandler.Get)
			secured.PUT("/workplaces/:id", workplaceHandler.Update)
			secured.DELETE("/workplaces/:id", workplaceHandler.Delete)

			secured.GET("/stats/dashboard", statsHandler.Dashboard)

			secured.POST("/uploads/payment-proof", uploadHandler.PaymentProof)
			secured.POST("/uploads/avatar", uploadHandler.Avatar)
			secured.POST("/uploads/promotion-image", uploadHandler.PromotionImage)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
