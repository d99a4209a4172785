package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"vendorly/internal/auth"
	"vendorly/internal/ratelimiter"
)

type config struct {
	addr             string
	env              string
	apiURL           string
	frontendURL      string
	sentryDSN        string
	cloudinaryURL    string
	simulatedLatency bool
	auth             authConfig
	mail             mailConfig
	log              logConfig
	review           reviewConfig
	rateLimiter      ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	host      string
	port      int
	user      string
	pass      string
	fromEmail string
}

type logConfig struct {
	level string
	file  string
}

type reviewConfig struct {
	cooldown          time.Duration
	strictTransitions bool
}

// loadConfig reads the process environment. Unset variables fall back to
// development defaults; malformed ones are an error.
func loadConfig() (config, error) {
	var errs []error
	intVar := func(key string, def int) int {
		v, err := envInt(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	boolVar := func(key string, def bool) bool {
		v, err := envBool(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	durationVar := func(key string, def time.Duration) time.Duration {
		v, err := envDuration(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	cfg := config{
		addr:             envString("ADDR", ":8080"),
		env:              envString("ENV", "development"),
		apiURL:           envString("EXTERNAL_URL", "localhost:8080"),
		frontendURL:      envString("FRONTEND_URL", "http://localhost:3000"),
		sentryDSN:        os.Getenv("SENTRY_DSN"),
		cloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		simulatedLatency: boolVar("SIMULATED_LATENCY", true),
		auth: authConfig{
			basic: basicConfig{
				user: envString("AUTH_BASIC_USER", "admin"),
				pass: envString("AUTH_BASIC_PASS", "admin"),
			},
			token: tokenConfig{
				secret: envString("AUTH_TOKEN_SECRET", "vendorly-dev-secret"),
				exp:    durationVar("AUTH_TOKEN_EXP", auth.DefaultTokenExp),
				iss:    "vendorly",
			},
		},
		mail: mailConfig{
			host:      os.Getenv("SMTP_HOST"),
			port:      intVar("SMTP_PORT", 587),
			user:      os.Getenv("SMTP_USER"),
			pass:      os.Getenv("SMTP_PASS"),
			fromEmail: os.Getenv("MAIL_FROM"),
		},
		log: logConfig{
			level: envString("LOG_LEVEL", "info"),
			file:  os.Getenv("LOG_FILE"),
		},
		review: reviewConfig{
			cooldown:          durationVar("REVIEW_COOLDOWN", ratelimiter.DefaultCooldown),
			strictTransitions: boolVar("REVIEW_STRICT_TRANSITIONS", false),
		},
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: intVar("RATELIMITER_REQUESTS_COUNT", 200),
			TimeFrame:            5 * time.Second,
			Enabled:              boolVar("RATE_LIMITER_ENABLED", false),
		},
	}

	if len(errs) > 0 {
		return config{}, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func envString(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

func envInt(key string, def int) (int, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
