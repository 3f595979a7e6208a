package main

import (
	"context"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mile-mijatovic/address-book/config"
	"github.com/mile-mijatovic/address-book/db"
	contacthandler "github.com/mile-mijatovic/address-book/internal/contact/handler"
	contactpg "github.com/mile-mijatovic/address-book/internal/contact/repository/postgres"
	contactservice "github.com/mile-mijatovic/address-book/internal/contact/service"
	"github.com/mile-mijatovic/address-book/internal/credential"
	"github.com/mile-mijatovic/address-book/internal/imagestore"
	"github.com/mile-mijatovic/address-book/internal/mail"
	"github.com/mile-mijatovic/address-book/internal/middleware"
	userhandler "github.com/mile-mijatovic/address-book/internal/user/handler"
	userpg "github.com/mile-mijatovic/address-book/internal/user/repository/postgres"
	userservice "github.com/mile-mijatovic/address-book/internal/user/service"
)

const maxBodySize = 6 * 1024 * 1024 // image limit plus multipart overhead

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	images, err := newImageStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize image store", zap.Error(err))
	}

	mailer, err := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		From:      cfg.EmailFrom,
		ClientURL: cfg.ClientURL,
	})
	if err != nil {
		logger.Fatal("failed to initialize mailer", zap.Error(err))
	}

	hasher := credential.NewHasher(cfg.BcryptCost)
	tokenService := credential.NewTokenService(cfg.JWTSecret, cfg.TokenExpiryMin)

	userRepo := userpg.NewRepository(pool)
	contactRepo := contactpg.NewRepository(pool)

	resetTTL := time.Duration(cfg.ResetTokenExpiryMin) * time.Minute
	userService := userservice.NewUserService(userRepo, hasher, tokenService, mailer, images, resetTTL, logger)
	contactService := contactservice.NewContactService(contactRepo)

	authHandler := userhandler.NewAuthHandler(userService, cfg.SessionName, tokenService.Expiry())
	profileHandler := userhandler.NewProfileHandler(userService)
	contactHandler := contacthandler.NewContactHandler(contactService)

	app := fiber.New(fiber.Config{
		BodyLimit:    maxBodySize,
		ErrorHandler: middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURL,
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.Metrics())

	requireAuth := middleware.RequireAuth(tokenService, cfg.SessionName)
	userhandler.RegisterRoutes(app, authHandler, profileHandler, requireAuth)
	contacthandler.RegisterRoutes(app, contactHandler, requireAuth)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unreachable")
		}
		return c.SendString("ok")
	})

	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newImageStore(ctx context.Context, cfg *config.Config) (userservice.ImageStore, error) {
	if cfg.ImageBackend == "s3" {
		return imagestore.NewS3Store(ctx, imagestore.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
	}
	return imagestore.NewDiskStore(cfg.UploadDir)
}
