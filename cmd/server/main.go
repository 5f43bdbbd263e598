package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"attendance-server/internal/config"
	apphttp "attendance-server/internal/http"
	"attendance-server/internal/repository/sqlite"
	"attendance-server/internal/scanner"
	"attendance-server/internal/service"
	"attendance-server/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	employeeRepo := sqlite.NewEmployeeRepository(db)
	departmentRepo := sqlite.NewDepartmentRepository(db)
	holidayRepo := sqlite.NewHolidayRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := employeeRepo.Init(ctx); err != nil {
		logger.Fatalf("init employee repository: %v", err)
	}
	if err := departmentRepo.Init(ctx); err != nil {
		logger.Fatalf("init department repository: %v", err)
	}
	if err := holidayRepo.Init(ctx); err != nil {
		logger.Fatalf("init holiday repository: %v", err)
	}

	scheme, err := service.SchemeByName(cfg.Auth.PasswordScheme)
	if err != nil {
		logger.Fatalf("resolve password scheme: %v", err)
	}

	userService := service.NewUserService(userRepo, scheme)
	employeeService := service.NewEmployeeService(employeeRepo)
	departmentService := service.NewDepartmentService(departmentRepo)
	holidayService := service.NewHolidayService(holidayRepo)

	// schema and seed must be ready before the listener binds
	if err := userService.EnsureDefaultAdmin(ctx); err != nil {
		logger.Fatalf("seed default admin: %v", err)
	}

	storageSvc, uploadsRoot, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	var fingerprint *scanner.Scanner
	var usbTransport *scanner.USBTransport
	if cfg.Scanner.Enabled {
		usbTransport = scanner.NewUSBTransport()
		fingerprint = scanner.New(usbTransport)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		employeeService,
		departmentService,
		holidayService,
		storageSvc,
		fingerprint,
		uploadsRoot,
		logger,
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
	if fingerprint != nil {
		if err := fingerprint.StopCapture(); err != nil {
			logger.Warnf("stop capture: %v", err)
		}
	}
	if usbTransport != nil {
		if err := usbTransport.Close(); err != nil {
			logger.Warnf("close usb transport: %v", err)
		}
	}

	logger.Info("bye")
}

// buildStorage picks S3 when a bucket is configured, local disk otherwise.
// The returned root is non-empty only for local storage and is served at /uploads.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, string, error) {
	if cfg.Storage.Bucket == "" {
		local, err := storage.NewLocalService(cfg.Uploads.Dir)
		if err != nil {
			return nil, "", err
		}
		logger.Infof("storing uploads under %s", local.Root())
		return local, local.Root(), nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, "", err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client, cfg.Storage.Bucket, cfg.Storage.KeyPrefix), "", nil
}
