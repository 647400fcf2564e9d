package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"summitportal/config"
	_ "summitportal/docs"
	authAdapter "summitportal/internal/adapters/auth"
	emailAdapter "summitportal/internal/adapters/email"
	httpDelivery "summitportal/internal/delivery/http"
	"summitportal/internal/delivery/http/controllers"
	"summitportal/internal/repository/postgres"
	"summitportal/internal/services"
)

const shutdownTimeout = 15 * time.Second

// @title Summit Portal API
// @version 1.0
// @description Admin and public registration backend for the summits events site.
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	err = db.PingContext(pingCtx)
	cancelPing()
	if err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := postgres.RunMigrations(cfg.DBUrl, cfg.MigrationsPath, logger); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	mailer, err := emailAdapter.NewMailer(emailAdapter.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: emailAdapter.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		log.Fatalf("failed to create mailer: %v", err)
	}

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	roleRepo := postgres.NewAdminRoleRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	sponsorRepo := postgres.NewSponsorRepository(db)
	registrationRepo := postgres.NewEventRegistrationRepository(db)

	// Services
	timeout := cfg.RequestTimeout
	emailService := services.NewEmailService(mailer, emailAdapter.NewTemplateRenderer(), logger)
	accessService := services.NewAccessService(profileRepo, timeout)
	authService := services.NewAuthService(
		profileRepo,
		roleRepo,
		authAdapter.NewBcryptHasher(bcrypt.DefaultCost),
		authAdapter.NewJWTIssuer(cfg.JWTSecret),
		cfg.JWTExpiry,
		timeout,
	)
	profileService := services.NewProfileService(profileRepo, roleRepo, logger, timeout)
	teamService := services.NewAdminTeamService(roleRepo, profileRepo, emailService, logger, timeout)
	eventService := services.NewEventService(eventRepo, registrationRepo, logger, timeout)
	sponsorService := services.NewSponsorService(sponsorRepo, logger, timeout)
	registrationService := services.NewRegistrationService(eventRepo, registrationRepo, emailService, logger, timeout)

	router := httpDelivery.NewRouter(httpDelivery.RouterDeps{
		Logger:         logger,
		TokenVerifier:  authAdapter.NewJWTVerifier(cfg.JWTSecret),
		Access:         accessService,
		AllowedOrigins: cfg.AllowedOrigins,
		Auth:           controllers.NewAuthController(logger, authService),
		Profiles:       controllers.NewProfileController(logger, profileService),
		Events:         controllers.NewEventController(logger, eventService),
		Sponsors:       controllers.NewSponsorController(logger, sponsorService),
		Users:          controllers.NewUserController(logger, profileService),
		Team:           controllers.NewAdminTeamController(logger, teamService),
		Public:         controllers.NewPublicController(logger, eventService, sponsorService, registrationService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
