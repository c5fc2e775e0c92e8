package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"orphanage-api/internal/config"
	apphttp "orphanage-api/internal/http"
	"orphanage-api/internal/repository/sqlite"
	"orphanage-api/internal/service"
	"orphanage-api/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.SecretKey) == "" {
		logger.Fatalf("auth secret key is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	orphRepo := sqlite.NewOrphanageRepository(db)
	messageRepo := sqlite.NewMessageRepository(db)
	donationRepo := sqlite.NewDonationRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := orphRepo.Init(ctx); err != nil {
		logger.Fatalf("init orphanage repository: %v", err)
	}
	if err := messageRepo.Init(ctx); err != nil {
		logger.Fatalf("init message repository: %v", err)
	}
	if err := donationRepo.Init(ctx); err != nil {
		logger.Fatalf("init donation repository: %v", err)
	}

	notifier := service.NewLogNotifier(logger)
	tokenService := service.NewTokenService(userRepo, time.Duration(cfg.Auth.TokenTTLSeconds)*time.Second)
	userService := service.NewUserService(userRepo, notifier, cfg.Auth.SecretKey, time.Duration(cfg.Auth.ResetTTLSeconds)*time.Second)
	orphService := service.NewOrphanageService(orphRepo)
	messageService := service.NewMessageService(messageRepo)
	donationService := service.NewDonationService(donationRepo, userRepo, orphRepo)

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		logger,
		userService,
		tokenService,
		orphService,
		messageService,
		donationService,
		storageSvc,
		apphttp.UploadPolicy{
			MaxBytes:    cfg.Upload.MaxBytes,
			AllowedExts: cfg.AllowedExtensions(),
		},
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		logger.Infof("storing uploads in %s", cfg.Upload.Dir)
		return storage.NewLocalService(cfg.Upload.Dir, cfg.Upload.PublicPrefix), nil
	case "s3":
		// fall through to the aws setup below
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client, cfg.Storage.Bucket, cfg.Storage.KeyPrefix), nil
}
