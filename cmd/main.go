package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/api/handler"
	apiMiddleware "backoffice/api/middleware"
	"backoffice/api/routes"
	"backoffice/config"
	"backoffice/internal/repository"
	"backoffice/internal/service"
	"backoffice/internal/utils"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

const sessionCleanupInterval = time.Hour

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	logger.SetLevel(cfg.LogLevel)

	db, err := config.ConnectionDb(cfg)
	if err != nil {
		logger.WithError(err).Fatal("database unavailable")
	}
	logger.Info("success connect to db")

	validate := utils.NewValidator()

	accessManager := utils.JWTManager{
		Secret:         []byte(cfg.JWTSecret),
		Issuer:         cfg.JWTIssuer,
		AccessTokenTTL: cfg.AccessTokenTTL,
	}
	accessIssuer := service.JWTAccessIssuer{Manager: &accessManager}
	mfaIssuer := service.MFATokenIssuerJWT{
		Secret: []byte(cfg.MFAJWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.MFATokenTTL,
	}

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	mfaRepo := repository.NewMFASecretRepository(db)
	securityRepo := repository.NewSecurityLogRepository(db)
	exceptionRepo := repository.NewExceptionRepository(db)

	passwordHasher := service.BcryptPasswordHasher{Cost: cfg.BcryptCost}

	var notifier service.Notifier
	if cfg.MailEnabled() {
		resendNotifier, err := service.NewResendNotifier(cfg.ResendAPIKey, cfg.MailFrom, cfg.AppURL)
		if err != nil {
			logger.WithError(err).Fatal("mail notifier")
		}
		notifier = resendNotifier
	} else {
		logger.Warn("RESEND_API_KEY or MAIL_FROM not set, account mails are disabled")
	}

	authService := service.NewAuthService(
		userRepo,
		sessionRepo,
		mfaRepo,
		securityRepo,
		passwordHasher,
		accessIssuer,
		mfaIssuer,
		service.NewTOTPProvider(),
		service.RealClock{},
		service.AuthConfig{
			SessionTTL:  cfg.AccessTokenTTL,
			MFATokenTTL: cfg.MFATokenTTL,
			MFAIssuer:   cfg.MFAIssuer,
		},
		logger,
	)
	userService := service.NewUserService(userRepo, roleRepo, securityRepo, passwordHasher, notifier, service.RealClock{}, logger)
	roleService := service.NewRoleService(roleRepo, securityRepo, logger)
	exceptionService := service.NewExceptionService(exceptionRepo)

	if cfg.AutoMigrate {
		if err := roleService.SeedPermissions(context.Background()); err != nil {
			logger.WithError(err).Fatal("seed permissions")
		}
	}

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	recorder := &handler.ExceptionRecorder{
		Store:  exceptionService,
		Next:   app.DefaultHTTPErrorHandler,
		Logger: logger,
	}
	app.HTTPErrorHandler = recorder.Handle
	app.IPExtractor = apiMiddleware.ClientIP(cfg.TrustedProxies)
	app.Use(echoMiddleware.Recover())
	app.Use(apiMiddleware.Metrics)
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &accessManager, Sessions: authService}
	router := routes.NewRouter(app, authMiddleware)
	router.Auth = handler.NewAuthHandler(authService, validate)
	router.Users = handler.NewUserHandler(userService, validate)
	router.Roles = handler.NewRoleHandler(roleService, validate)
	router.Exceptions = handler.NewExceptionHandler(exceptionService)
	router.Profile = handler.NewProfileHandler(userService, authService, validate)
	router.RegisterRoutes()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go cleanupSessions(ctx, sessionRepo, logger)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("server started")
		if err := app.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown")
	}
	logger.Info("server stopped")
}

func cleanupSessions(ctx context.Context, sessions repository.SessionRepository, logger logrus.FieldLogger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.CleanupExpired(ctx); err != nil {
				logger.WithError(err).Warn("session cleanup failed")
			}
		}
	}
}
