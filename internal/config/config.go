package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone database for minimal container images

	"finhealth/internal/forecast"
	"finhealth/internal/narrative"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	defaultEnvFile = "configs/.env"
	devJWTSecret   = "default_super_secret_key"
)

// Narrative providers
const (
	NarrativeNone   = narrative.ProviderNone
	NarrativeGemini = narrative.ProviderGemini
	NarrativeHTTP   = narrative.ProviderHTTP
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Narrative NarrativeConfig
	Cache     CacheConfig
	Sentry    SentryConfig
	Log       LogConfig
	Engine    forecast.Settings
}

type ServerConfig struct {
	Port        string
	GinMode     string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// Options converts the settings for narrative.New
func (n NarrativeConfig) Options() narrative.Options {
	return narrative.Options{
		Provider:    n.Provider,
		GeminiKey:   n.GeminiKey,
		GeminiModel: n.GeminiModel,
		Endpoint:    n.Endpoint,
		Token:       n.Token,
		Timeout:     n.Timeout,
		MaxRetries:  n.MaxRetries,
	}
}

// DSN renders the PostgreSQL connection URL.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

type AuthConfig struct {
	JWTSecret string
	AdminRole string
}

type NarrativeConfig struct {
	Provider    string
	GeminiKey   string
	GeminiModel string
	Endpoint    string
	Token       string
	Timeout     time.Duration
	MaxRetries  int
}

type CacheConfig struct {
	Enabled bool
	Path    string
	// Retention is how long cached entries are kept; older entries are pruned at startup
	Retention time.Duration
}

type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	SampleRate  float64
}

type LogConfig struct {
	Level  string
	Format string // console or json
}

// Load reads configs/.env when present, then the environment, then the optional engine
// tuning file named by FINHEALTH_CONFIG.
func Load() (Config, error) {
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", defaultEnvFile, err)
	}

	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	if path := os.Getenv("FINHEALTH_CONFIG"); path != "" {
		if cfg.Engine, err = LoadEngineSettings(path, cfg.Engine); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables and documented defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "postgres"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			AdminRole: getEnv("ADMIN_ROLE", "admin"),
		},
		Narrative: NarrativeConfig{
			Provider:    strings.ToLower(os.Getenv("NARRATIVE_PROVIDER")),
			GeminiKey:   os.Getenv("GEMINI_API_KEY"),
			GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Endpoint:    os.Getenv("NARRATIVE_ENDPOINT"),
			Token:       os.Getenv("NARRATIVE_TOKEN"),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("REPORT_CACHE_ENABLED", false),
			Path:    getEnv("REPORT_CACHE_PATH", "data/reports.db"),
		},
		Sentry: SentryConfig{
			DSN:         os.Getenv("SENTRY_DSN"),
			Environment: getEnv("SENTRY_ENVIRONMENT", "development"),
			Release:     os.Getenv("SENTRY_RELEASE"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
		Engine: forecast.DefaultSettings(),
	}

	var err error
	if cfg.Database.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 20); err != nil {
		return Config{}, err
	}
	if cfg.Database.MaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return Config{}, err
	}
	if cfg.Database.ConnMaxLifetime, err = getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.Narrative.Timeout, err = getEnvDuration("NARRATIVE_TIMEOUT", 20*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Cache.Retention, err = getEnvDuration("REPORT_CACHE_RETENTION", 30*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.Narrative.MaxRetries, err = getEnvInt("NARRATIVE_MAX_RETRIES", 2); err != nil {
		return Config{}, err
	}
	if cfg.Sentry.SampleRate, err = getEnvFloat("SENTRY_SAMPLE_RATE", 1.0); err != nil {
		return Config{}, err
	}

	if tz := os.Getenv("FINHEALTH_TIMEZONE"); tz != "" {
		cfg.Engine.Timezone = tz
	}
	if ad := os.Getenv("FINHEALTH_AD_CATEGORY"); ad != "" {
		cfg.Engine.AdCategory = ad
	}
	if cfg.Engine.Location, err = time.LoadLocation(cfg.Engine.Timezone); err != nil {
		return Config{}, fmt.Errorf("FINHEALTH_TIMEZONE: %w", err)
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
		if cfg.Server.GinMode == "release" {
			cfg.Log.Format = "json"
		}
	}
	return cfg, nil
}

// LoadEngineSettings overlays the TOML file at path on base. Keys the engine does not
// know are rejected so that typos never silently fall back to defaults.
func LoadEngineSettings(path string, base forecast.Settings) (forecast.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading engine config: %w", err)
	}

	settings := base
	md, err := toml.Decode(string(data), &settings)
	if err != nil {
		return base, fmt.Errorf("parsing engine config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return base, fmt.Errorf("%w: engine config %s: %s", forecast.ErrUnknownOption, path, strings.Join(keys, ", "))
	}

	if settings.Location, err = time.LoadLocation(settings.Timezone); err != nil {
		return base, fmt.Errorf("engine config timezone: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return base, err
	}
	return settings, nil
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	if c.Auth.JWTSecret == "" && c.Server.GinMode == "release" {
		return errors.New("JWT_SECRET is required in release mode")
	}
	switch c.Narrative.Provider {
	case NarrativeNone:
	case NarrativeGemini:
		if c.Narrative.GeminiKey == "" {
			return errors.New("GEMINI_API_KEY is required when NARRATIVE_PROVIDER=gemini")
		}
	case NarrativeHTTP:
		if c.Narrative.Endpoint == "" {
			return errors.New("NARRATIVE_ENDPOINT is required when NARRATIVE_PROVIDER=http")
		}
	default:
		return fmt.Errorf("unknown NARRATIVE_PROVIDER %q", c.Narrative.Provider)
	}
	return c.Engine.Validate()
}

// JWTSecretBytes returns the signing secret, falling back to a development key outside release mode.
func (c Config) JWTSecretBytes() []byte {
	if c.Auth.JWTSecret == "" {
		return []byte(devJWTSecret)
	}
	return []byte(c.Auth.JWTSecret)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func getEnvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
