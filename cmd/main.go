package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/database"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auth"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/notification"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/payment"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/scheduler"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/routes"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"go.uber.org/zap"
)

// @title Birthday Fund API
// @version 1.0
// @description Events, guest invitations, fundraising campaigns and donations.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	if err := utils.InitLogger(cfg.AppEnv); err != nil {
		panic(err)
	}
	defer utils.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		utils.Log.Fatal("❌ database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		utils.Log.Fatal("❌ database migration failed", zap.Error(err))
	}

	// Redis holds reset tokens and carries realtime notifications
	rdb, err := utils.InitRedis(cfg)
	if err != nil {
		utils.Log.Fatal("❌ Redis init failed", zap.Error(err))
	}
	defer rdb.Close()
	channel := notification.NewRedisChannel(rdb)

	publishers := []notification.Publisher{channel}
	fcm, err := utils.InitFirebase(ctx, cfg)
	switch {
	case err == nil:
		publishers = append(publishers, notification.NewPushPublisher(fcm, notification.NewRepository(db)))
	case errors.Is(err, utils.ErrFCMNotConfigured):
		utils.Log.Info("ℹ️ push notifications disabled")
	default:
		utils.Log.Warn("⚠️ Firebase initialization failed, continuing without push", zap.Error(err))
	}

	deps := routes.Deps{
		Config:     cfg,
		DB:         db,
		Tokens:     auth.NewRedisTokenStore(rdb),
		Mailer:     utils.NewMailer(cfg),
		Gateway:    payment.NewRazorpayGateway(cfg.RazorpayKey, cfg.RazorpaySecret),
		Publishers: publishers,
		Subscriber: channel,
	}
	if cfg.NotifyDispatch == "kafka" {
		deps.NewDispatcher = func(notification.Notifier) notification.Dispatcher {
			return notification.NewKafkaDispatcher(utils.NewKafkaWriter(cfg))
		}
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	app := routes.Setup(router, deps)

	if cfg.NotifyDispatch == "kafka" {
		reader := utils.NewKafkaReader(cfg)
		go func() {
			defer reader.Close()
			if err := notification.StartKafkaConsumer(ctx, reader, app.Notifications); err != nil {
				utils.Log.Error("notification consumer stopped", zap.Error(err))
			}
		}()
	}

	if cfg.SweepEnabled {
		go scheduler.Hourly(ctx, app.Campaigns)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Log.Info("🚀 Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	utils.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Log.Error("server shutdown", zap.Error(err))
	}
	// pending notifications are delivered before exit
	if err := app.Dispatcher.Close(); err != nil {
		utils.Log.Error("dispatcher close", zap.Error(err))
	}
}
