package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/attendance"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auditlog"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auth"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/campaign"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/donation"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/event"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/guest"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/notification"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/payment"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/reports"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/middleware"
	"gorm.io/gorm"

	_ "github.com/pedrosilva76986974-afk/Back-birthday-fund/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Mailer sends plain text mail. utils.Mailer satisfies it.
type Mailer interface {
	Send(to, subject, body string) error
}

// Deps are the outside resources the API is built on.
type Deps struct {
	Config     *config.Config
	DB         *gorm.DB
	Tokens     auth.TokenStore
	Mailer     Mailer
	Gateway    payment.Gateway
	Publishers []notification.Publisher
	Subscriber notification.Subscriber

	// NewDispatcher builds the async notification dispatcher around the
	// notifier. Nil means an in-process queue sized from Config.
	NewDispatcher func(notification.Notifier) notification.Dispatcher
}

// App exposes the services main needs after the routes are mounted.
type App struct {
	Notifications notification.Service
	Campaigns     campaign.Service
	Dispatcher    notification.Dispatcher
}

func Setup(r *gin.Engine, deps Deps) *App {
	cfg := deps.Config
	db := deps.DB

	binding.EnableDecoderDisallowUnknownFields = true

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter(cfg.RateLimitPerMin))
	api.Use(middleware.AuditMiddleware()) // client IP for audit entries

	// ========== Audit Log ==========
	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authSvc := auth.NewService(auth.NewRepository(db), deps.Tokens, deps.Mailer, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
	}

	// ========== Notifications ==========
	notificationRepo := notification.NewRepository(db)
	notificationSvc := notification.NewService(notificationRepo, deps.Publishers...)
	notificationHandler := notification.NewHandler(notificationSvc, deps.Subscriber)

	var dispatcher notification.Dispatcher
	if deps.NewDispatcher != nil {
		dispatcher = deps.NewDispatcher(notificationSvc)
	} else {
		dispatcher = notification.NewQueueDispatcher(notificationSvc, cfg.NotifyQueueSize, cfg.NotifyWorkers)
	}

	// ========== Domain services ==========
	guestSvc := guest.NewService(guest.NewRepository(db))
	campaignSvc := campaign.NewService(db, campaign.NewRepository(db), auditSvc)
	donationSvc := donation.NewService(db, donation.NewRepository(db), dispatcher, auditSvc)
	attendanceSvc := attendance.NewService(db, attendance.NewRepository(db), dispatcher, auditSvc)
	// dependents run before the event row is removed
	eventSvc := event.NewService(event.NewRepository(db), auditSvc, campaignSvc, deps.Mailer,
		donationSvc, attendanceSvc, campaignSvc)
	reportSvc := reports.NewReportService(reports.NewReportRepository(db), reports.NewReportExporter(), auditSvc)
	paymentSvc := payment.NewService(campaignSvc, deps.Gateway, cfg.PaymentCurrency, auditSvc)

	guestHandler := guest.NewHandler(guestSvc)
	eventHandler := event.NewHandler(eventSvc)
	campaignHandler := campaign.NewHandler(campaignSvc)
	donationHandler := donation.NewHandler(donationSvc)
	attendanceHandler := attendance.NewHandler(attendanceSvc)
	reportHandler := reports.NewHandler(reportSvc)
	paymentHandler := payment.NewHandler(paymentSvc)

	// Streams authenticate with ?token= as well as the header.
	stream := api.Group("/notifications")
	stream.Use(middleware.StreamAuthMiddleware(cfg, authSvc))
	{
		stream.GET("/stream", notificationHandler.Stream)
		stream.GET("/ws", notificationHandler.WebSocket)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	users := protected.Group("/users")
	{
		users.GET("", authHandler.ListUsers)
		users.GET("/me", authHandler.Me)
		users.DELETE("/me", authHandler.DeleteMe)
		users.GET("/:id", authHandler.GetUser)
	}

	guests := protected.Group("/guests")
	{
		guests.POST("", guestHandler.Create)
		guests.GET("", guestHandler.List)
	}

	events := protected.Group("/events")
	{
		events.POST("", eventHandler.CreateEvent)
		events.GET("", eventHandler.ListEvents)
		events.GET("/mine", eventHandler.ListMine)
		events.GET("/user/:userId", eventHandler.ListByUser)
		events.GET("/invitations/:email", eventHandler.ListInvitations)
		events.GET("/:id", eventHandler.GetEventByID)
		events.DELETE("/:id", eventHandler.DeleteEvent)
		events.GET("/:id/guests", eventHandler.ListGuests)
		events.POST("/:id/invite", eventHandler.InviteGuest)
		events.DELETE("/:id/invite/:guestId", eventHandler.RemoveGuest)
		events.GET("/:id/confirmed", attendanceHandler.ListConfirmed)
	}

	campaigns := protected.Group("/campaigns")
	{
		campaigns.POST("", campaignHandler.Create)
		campaigns.GET("", campaignHandler.List)
		campaigns.GET("/mine", campaignHandler.ListMine)
		campaigns.GET("/user/:userId", campaignHandler.ListByUser)
		campaigns.GET("/:id", campaignHandler.Get)
		campaigns.PATCH("/:id/close", campaignHandler.Close)
		campaigns.GET("/:id/donations", donationHandler.ListByCampaign)
		campaigns.GET("/:id/donations/export", reportHandler.ExportDonations)
	}

	donations := protected.Group("/donations")
	{
		donations.POST("", donationHandler.Record)
		donations.GET("", donationHandler.List)
	}

	attendanceRoutes := protected.Group("/attendance")
	{
		attendanceRoutes.POST("/confirm", attendanceHandler.Confirm)
		attendanceRoutes.POST("/decline", attendanceHandler.Decline)
	}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", notificationHandler.List)
		notifications.GET("/count", notificationHandler.CountUnread)
		notifications.PATCH("/:id/read", notificationHandler.MarkRead)
		notifications.POST("/test-send", notificationHandler.TestSend)
		notifications.POST("/devices", notificationHandler.RegisterDevice)
		notifications.DELETE("/devices", notificationHandler.UnregisterDevice)
	}

	protected.POST("/payments/pix", paymentHandler.CreatePixCharge)
	protected.GET("/audit-logs/me", auditHandler.GetMyAuditLogs)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return &App{
		Notifications: notificationSvc,
		Campaigns:     campaignSvc,
		Dispatcher:    dispatcher,
	}
}
