package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"smarthire_backend/database"
	"smarthire_backend/internal/auth"
	"smarthire_backend/internal/config"
	"smarthire_backend/internal/email"
	"smarthire_backend/internal/handlers"
	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/middleware"
	"smarthire_backend/internal/repositories"
	"smarthire_backend/internal/routes"
	"smarthire_backend/internal/services"
	"smarthire_backend/internal/validator"
	"smarthire_backend/internal/workers"
	"smarthire_backend/pkg/apperrors"
)

const shutdownTimeout = 10 * time.Second

// App - контекст процесса: конфигурация, хранилище, сервисы и планировщик
type App struct {
	cfg      *config.Config
	store    repositories.Store
	mailer   email.Provider
	services *services.ServiceContainer
	router   *gin.Engine
	worker   *workers.ExpiryWorker
}

// New подключает хранилище и собирает приложение
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(ctx, store); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	mailer, err := newMailer(cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a, err := build(cfg, store, mailer, time.Now)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	if err := a.seedFirstAdmin(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("seed first admin: %w", err)
	}
	return a, nil
}

// build собирает сервисы, роутер и воркер над готовым хранилищем
func build(cfg *config.Config, store repositories.Store, mailer email.Provider, now func() time.Time) (*App, error) {
	ttl, err := cfg.TokenTTL()
	if err != nil {
		return nil, err
	}
	secret := cfg.JWT.Secret
	if secret == "" {
		// Validate пропускает пустой секрет только в development
		secret = uuid.NewString() + uuid.NewString()
		logger.Warn("JWT_SECRET is empty, using a random per-process secret; tokens will not survive a restart")
	}
	tokens := auth.NewTokenManager(secret, ttl)

	templates, err := email.NewTemplateManager()
	if err != nil {
		return nil, err
	}
	notifier := services.NewEmailNotificationService(mailer, templates)

	svc := services.NewServiceContainer(store, tokens, notifier, now)

	return &App{
		cfg:      cfg,
		store:    store,
		mailer:   mailer,
		services: svc,
		router:   SetupRouter(cfg, svc, store),
		worker:   workers.NewExpiryWorker(svc.SweepService, cfg.Sweep.Schedule, cfg.Sweep.RunOnStart),
	}, nil
}

// SetupRouter создает gin.Engine со всеми middleware и маршрутами
func SetupRouter(cfg *config.Config, svc *services.ServiceContainer, store repositories.Store) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(cfg.IsDevelopment())

	appHandlers := handlers.NewAppHandlers(svc, validator.New(), store)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.FrontendURL))
	router.Use(middleware.BodyLimitMiddleware(middleware.MaxBodyBytes))

	routes.RegisterRoutes(router, appHandlers)
	return router
}

// Run запускает HTTP сервер и планировщик; возвращается после отмены ctx
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Address(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting", "address", srv.Addr, "env", a.cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.worker.Start(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *App) Close() error {
	var errs []error
	if err := a.mailer.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) seedFirstAdmin(ctx context.Context) error {
	if a.cfg.Admin.Email == "" || a.cfg.Admin.Password == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	created, err := a.services.AuthService.SeedAdmin(ctx, a.cfg.Admin.Email, a.cfg.Admin.Password, a.cfg.Admin.Name)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Created first admin user", "email", a.cfg.Admin.Email)
	} else {
		logger.Info("Admin user already exists. Skipping creation.", "email", a.cfg.Admin.Email)
	}
	return nil
}

// newMailer - SMTP при включенной почте, иначе письма только логируются
func newMailer(cfg *config.Config) (email.Provider, error) {
	if !cfg.Email.Enabled {
		logger.Warn("Email is disabled. Notifications are written to the log.")
		return email.NewLogProvider(), nil
	}
	return email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
}
