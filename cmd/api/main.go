package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"solarops/internal/audit"
	"solarops/internal/config"
	"solarops/internal/database"
	"solarops/internal/middleware"
	"solarops/internal/modules/auth"
	"solarops/internal/modules/inventory"
	"solarops/internal/modules/notification"
	"solarops/internal/modules/payment"
	"solarops/internal/modules/project"
	"solarops/internal/modules/schedule"
	"solarops/internal/mq"
	jwtsvc "solarops/internal/pkg/jwt"
	"solarops/internal/pkg/logger"
	"solarops/internal/pkg/metrics"
	"solarops/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)
	defer log.Sync()

	if cfg.Mode == config.ModeRelease {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DB.DSN)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("connect message queue", zap.Error(err))
	}
	defer publisher.Close()

	jwtSvc := jwtsvc.New(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessExpire)*time.Second,
		time.Duration(cfg.JWT.RefreshExpire)*time.Second,
	)

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	userLogRepo := repository.NewUserLogRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	workLogRepo := repository.NewWorkLogRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	proofRepo := repository.NewTaskProofRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	requisitionRepo := repository.NewRequisitionRepository(db)

	auditLog := audit.New(userLogRepo, log)

	hub := notification.NewHub()
	defer hub.Close()
	notifySvc := notification.NewService(notificationRepo, publisher, hub, log)
	notifyHandler := notification.NewHandler(notifySvc, hub)

	gatewayClient := payment.NewClient(cfg.Gateway)
	paymentSvc := payment.NewService(paymentRepo, projectRepo, gatewayClient, auditLog, log)
	paymentHandler := payment.NewHandler(paymentSvc)

	scheduleSvc := schedule.NewService(
		taskRepo, proofRepo, projectRepo, workLogRepo, paymentRepo,
		userRepo, notifySvc, gatewayClient, auditLog, log,
	)
	scheduleHandler := schedule.NewHandler(scheduleSvc, cfg.Upload.ProofDir)

	authSvc := auth.NewService(userRepo, refreshRepo, auth.NewRedisOTPStore(rdb), publisher, jwtSvc, log)
	authHandler := auth.NewHandler(authSvc)

	projectSvc := project.NewService(projectRepo, taskRepo, workLogRepo, userRepo, auditLog, log)
	projectHandler := project.NewHandler(projectSvc)

	inventorySvc := inventory.NewService(materialRepo, equipmentRepo, requisitionRepo, notifySvc, auditLog, log)
	inventoryHandler := inventory.NewHandler(inventorySvc)

	r := gin.New()
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(metrics.Middleware())

	r.GET("/metrics", metrics.Handler())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static("/uploads/proofs", cfg.Upload.ProofDir)

	api := r.Group("/api/v1")
	authHandler.RegisterRoutes(api)

	protected := api.Group("", middleware.Auth(jwtSvc))
	projectHandler.RegisterRoutes(protected)
	scheduleHandler.RegisterRoutes(protected)
	paymentHandler.RegisterRoutes(protected)
	inventoryHandler.RegisterRoutes(protected)
	notifyHandler.RegisterRoutes(protected)

	srv := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
