package main

import (
	"expvar"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"

	"vendorly/internal/auth"
	"vendorly/internal/domain/storage"
	"vendorly/internal/latency"
	"vendorly/internal/mailer"
	"vendorly/internal/media"
	"vendorly/internal/metrics"
	"vendorly/internal/notifications"
	"vendorly/internal/ratelimiter"
	"vendorly/internal/services"
)

// NewLogger creates a console logger with colored levels. When file is set,
// entries are also written as JSON to a rotating log file.
func NewLogger(level, file string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stdout), lvl),
	}

	if file != "" {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		sink := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(sink), lvl))
	}

	return zap.New(zapcore.NewTee(cores...)).Sugar(), nil
}

var version = "0.3.0"

//	@title			Vendorly API
//	@description	Vendor discovery and review moderation.

//	@contact.name	API Support
//	@contact.email	support@vendorly.dev

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "error loading .env file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := NewLogger(cfg.log.level, cfg.log.file)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		os.Exit(1)
	}

	if err := serve(cfg, logger); err != nil {
		logger.Errorw("server exited", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// serve wires the application and blocks until the server stops.
func serve(cfg config, logger *zap.SugaredLogger) error {
	if cfg.sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.sentryDSN,
			Environment: cfg.env,
			Release:     "vendorly@" + version,
		})
		if err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		logger.Info("sentry error reporting enabled")
	}

	// storage
	store, err := storage.NewSeededContainer(bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed storage: %w", err)
	}

	// mail
	var mail mailer.Client = mailer.Noop{}
	if cfg.mail.host != "" {
		smtp, err := mailer.NewSMTPMailer(cfg.mail.host, cfg.mail.port, cfg.mail.user, cfg.mail.pass, cfg.mail.fromEmail)
		if err != nil {
			return err
		}
		mail = smtp
	}

	// review photos
	var uploader media.Uploader
	if cfg.cloudinaryURL != "" {
		cld, err := media.NewCloudinaryUploader(cfg.cloudinaryURL, "reviews")
		if err != nil {
			return err
		}
		uploader = cld
	}

	sim := latency.Disabled()
	if cfg.simulatedLatency {
		sim = latency.New()
	}

	m := metrics.New()

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)
	stopSweeper := make(chan struct{})
	defer close(stopSweeper)
	go rateLimiter.StartSweeper(stopSweeper)

	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.exp,
	)

	app := &application{
		config:      cfg,
		logger:      logger,
		uploader:    uploader,
		metrics:     m,
		rateLimiter: rateLimiter,
		notifier:    notifications.NewNotifier(mail, store.Users, store.Vendors, logger, cfg.frontendURL),
	}
	app.services = services.New(services.Config{
		Store:             store,
		Authenticator:     jwtAuthenticator,
		Latency:           sim,
		Logger:            logger,
		Mailer:            mail,
		Metrics:           m,
		Cooldown:          cfg.review.cooldown,
		StrictTransitions: cfg.review.strictTransitions,
		FrontendURL:       cfg.frontendURL,
		Background:        app.background,
	})

	// Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	return app.run(mux)
}
