package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr    string
	// TrustedProxies are the reverse proxies allowed to set X-Forwarded-For.
	TrustedProxies []*net.IPNet
	DatabaseURL string
	AutoMigrate bool

	JWTSecret      string
	JWTIssuer      string
	MFAJWTSecret   string
	AccessTokenTTL time.Duration
	MFATokenTTL    time.Duration
	MFAIssuer      string
	BcryptCost     int

	ResendAPIKey string
	MailFrom     string
	AppURL       string

	LogLevel logrus.Level
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("could not read .env")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a variable lookup.
func FromEnv(getenv func(string) string) (Config, error) {
	lookup := func(key, fallback string) string {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		HTTPAddr:     lookup("HTTP_ADDR", ":8080"),
		DatabaseURL:  lookup("DATABASE_URL", ""),
		JWTSecret:    lookup("JWT_SECRET", ""),
		JWTIssuer:    lookup("JWT_ISSUER", "backoffice"),
		MFAIssuer:    lookup("MFA_ISSUER", "Backoffice"),
		ResendAPIKey: lookup("RESEND_API_KEY", ""),
		MailFrom:     lookup("MAIL_FROM", ""),
		AppURL:       strings.TrimRight(lookup("APP_URL", "http://localhost:8080"), "/"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	cfg.MFAJWTSecret = lookup("MFA_JWT_SECRET", cfg.JWTSecret)

	var err error
	if cfg.AccessTokenTTL, err = time.ParseDuration(lookup("ACCESS_TOKEN_TTL", "8h")); err != nil {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_TTL: %w", err)
	}
	if cfg.MFATokenTTL, err = time.ParseDuration(lookup("MFA_TOKEN_TTL", "5m")); err != nil {
		return Config{}, fmt.Errorf("MFA_TOKEN_TTL: %w", err)
	}
	if cfg.AutoMigrate, err = strconv.ParseBool(lookup("AUTO_MIGRATE", "true")); err != nil {
		return Config{}, fmt.Errorf("AUTO_MIGRATE: %w", err)
	}
	if cfg.BcryptCost, err = strconv.Atoi(lookup("BCRYPT_COST", "0")); err != nil {
		return Config{}, fmt.Errorf("BCRYPT_COST: %w", err)
	}
	if cfg.TrustedProxies, err = parseCIDRs(lookup("TRUSTED_PROXIES", "")); err != nil {
		return Config{}, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	if cfg.LogLevel, err = logrus.ParseLevel(lookup("LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// MailEnabled reports whether transactional mail can be sent.
func (c Config) MailEnabled() bool {
	return c.ResendAPIKey != "" && c.MailFrom != ""
}

// parseCIDRs reads a comma-separated list of CIDR ranges or bare addresses.
func parseCIDRs(value string) ([]*net.IPNet, error) {
	var ranges []*net.IPNet
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !strings.Contains(item, "/") {
			ip := net.ParseIP(item)
			if ip == nil {
				return nil, fmt.Errorf("invalid address %q", item)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			ranges = append(ranges, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(item)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, ipNet)
	}
	return ranges, nil
}
