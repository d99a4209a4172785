package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"vendorly/docs" // registers the swagger docs
	"vendorly/internal/media"
	"vendorly/internal/metrics"
	"vendorly/internal/notifications"
	"vendorly/internal/ratelimiter"
	"vendorly/internal/services"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	services    *services.Services
	uploader    media.Uploader
	metrics     *metrics.Metrics
	rateLimiter ratelimiter.Limiter
	notifier    *notifications.Notifier

	wg sync.WaitGroup
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(app.MetricsMiddleware)
	if app.config.rateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("http://%s/v1/swagger/doc.json", app.config.apiURL)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
		r.With(app.BasicAuthMiddleware()).Handle("/metrics", app.metrics.Handler())

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.Post("/login", app.loginHandler)
			r.Post("/signup", app.signupHandler)
			r.With(app.AuthTokenMiddleware).Get("/session", app.sessionHandler)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", app.listVendorsHandler)
			r.Get("/search", app.searchVendorsHandler)
			r.Route("/{vendorID}", func(r chi.Router) {
				r.Get("/", app.getVendorHandler)
				r.Get("/name", app.getVendorNameHandler)
				r.Get("/reviews", app.listVendorReviewsHandler)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Post("/", app.submitReviewHandler)
			r.Post("/photos", app.uploadReviewPhotoHandler)
			r.Get("/rate-limit", app.peekRateLimitHandler)
			r.Post("/rate-limit", app.checkRateLimitHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Use(app.RequireAdmin)

			r.Get("/vendors", app.adminListVendorsHandler)
			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", app.adminListReviewsHandler)
				r.Get("/pending", app.listPendingReviewsHandler)
				r.Get("/flagged", app.listFlaggedReviewsHandler)
				r.Post("/{reviewID}/approve", app.approveReviewHandler)
				r.Post("/{reviewID}/reject", app.rejectReviewHandler)
				r.Post("/{reviewID}/flag", app.flagReviewHandler)
			})
			r.Delete("/rate-limit/{userID}", app.resetRateLimitHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if err := srv.Shutdown(ctx); err != nil {
			shutdown <- err
			return
		}

		app.logger.Infow("completing background tasks", "addr", app.config.addr)
		app.wg.Wait()
		shutdown <- nil
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
