package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	DatabaseURL         string
	JWTSecret           string
	StoragePath         string
	StorageBaseURL      string
	GeoIPDBPath         string
	DefaultLocale       string
	FreeCredits         int
	SessionTTL          time.Duration
	ImageProvider       string
	GeminiAPIKey        string
	GeminiImageModel    string
	VideoProvider       string
	RunwayAPIKey        string
	RunwayBaseURL       string
	RunwayModel         string
	RunwayRatePerMinute int
	DispatchTimeout     time.Duration
	AllowedOrigins      []string
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	RateLimitPerMin     int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                port,
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		StoragePath:         getEnv("STORAGE_PATH", "./data/assets"),
		StorageBaseURL:      getEnv("STORAGE_BASE_URL", "http://localhost:"+port+"/static"),
		GeoIPDBPath:         os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:       strings.ToLower(getEnv("DEFAULT_LOCALE", "fr")),
		FreeCredits:         getEnvInt("FREE_CREDITS", 3),
		SessionTTL:          time.Minute * time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)),
		ImageProvider:       strings.ToLower(getEnv("IMAGE_PROVIDER", "auto")),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiImageModel:    getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image-preview"),
		VideoProvider:       strings.ToLower(getEnv("VIDEO_PROVIDER", "auto")),
		RunwayAPIKey:        os.Getenv("RUNWAY_API_KEY"),
		RunwayBaseURL:       getEnv("RUNWAY_BASE_URL", "https://api.dev.runwayml.com"),
		RunwayModel:         getEnv("RUNWAY_MODEL", "veo3"),
		RunwayRatePerMinute: getEnvInt("RUNWAY_RATE_PER_MINUTE", 6),
		DispatchTimeout:     time.Second * time.Duration(getEnvInt("DISPATCH_TIMEOUT_SECONDS", 180)),
		AllowedOrigins:      getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 240)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	switch cfg.DefaultLocale {
	case "fr", "en":
	default:
		return nil, fmt.Errorf("DEFAULT_LOCALE must be fr or en, got %q", cfg.DefaultLocale)
	}

	switch cfg.ImageProvider {
	case "auto", "gemini", "synthetic":
	default:
		return nil, fmt.Errorf("IMAGE_PROVIDER must be auto, gemini or synthetic, got %q", cfg.ImageProvider)
	}

	switch cfg.VideoProvider {
	case "auto", "runway", "synthetic":
	default:
		return nil, fmt.Errorf("VIDEO_PROVIDER must be auto, runway or synthetic, got %q", cfg.VideoProvider)
	}

	if cfg.FreeCredits < 0 {
		cfg.FreeCredits = 0
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
