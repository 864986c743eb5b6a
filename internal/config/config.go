package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	DB          DBConfig
	S3          S3Config
	Log         LogConfig
	Generator   GeneratorConfig
	Calculation CalculationConfig
	Rules       RulesConfig
	CORS        CORSConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig holds settings for a single generative text provider.
type ProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
	// Endpoint overrides the provider's API base URL.
	Endpoint string `mapstructure:"endpoint"`
}

// GeneratorConfig holds generator settings with multi-provider support.
type GeneratorConfig struct {
	// Legacy flat fields
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	Primary   ProviderConfig `mapstructure:"primary"`
	Secondary ProviderConfig `mapstructure:"secondary"`
	Tertiary  ProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (g *GeneratorConfig) PrimaryConfig() *ProviderConfig {
	if g.Primary.Provider != "" {
		return &g.Primary
	}
	return &ProviderConfig{
		Provider:     g.Provider,
		APIKey:       g.APIKey,
		DefaultModel: g.DefaultModel,
		TimeoutSecs:  g.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (g *GeneratorConfig) SecondaryConfig() *ProviderConfig {
	if g.Secondary.Provider != "" {
		return &g.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (g *GeneratorConfig) TertiaryConfig() *ProviderConfig {
	if g.Tertiary.Provider != "" {
		return &g.Tertiary
	}
	return nil
}

// Chain returns the configured providers in fallback order.
func (g *GeneratorConfig) Chain() []*ProviderConfig {
	chain := []*ProviderConfig{g.PrimaryConfig()}
	if s := g.SecondaryConfig(); s != nil {
		chain = append(chain, s)
	}
	if t := g.TertiaryConfig(); t != nil {
		chain = append(chain, t)
	}
	return chain
}

// CalculationConfig tunes the calculation prompts.
type CalculationConfig struct {
	Temperature     float64 `mapstructure:"temperature"`
	SafetyThreshold string  `mapstructure:"safety_threshold"`
	Debug           bool    `mapstructure:"debug"`
}

// RulesConfig selects where extracted rules live and where the tariff document comes from.
type RulesConfig struct {
	Store         string `mapstructure:"store"`
	FilePath      string `mapstructure:"file_path"`
	S3Key         string `mapstructure:"s3_key"`
	DocumentPath  string `mapstructure:"document_path"`
	DocumentS3Key string `mapstructure:"document_s3_key"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Environment    string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Flags returns the standard logger flags for the configured format and
// level. "plain" drops timestamps; level "debug" adds microseconds and the
// calling file.
func (l LogConfig) Flags() int {
	flags := log.LstdFlags
	if strings.EqualFold(l.Format, "plain") {
		flags = 0
	}
	if strings.EqualFold(l.Level, "debug") {
		flags |= log.Lmicroseconds | log.Lshortfile
	}
	return flags
}

// Load reads configuration from environment variables with the TARIFF_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TARIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.request_timeout", "290s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "tariff")
	v.SetDefault("db.password", "tariff_secret")
	v.SetDefault("db.name", "tariff_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "af-south-1")
	v.SetDefault("s3.bucket", "port-tariff")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Generator defaults (legacy flat)
	v.SetDefault("generator.provider", "gemini")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.default_model", "gemini-2.5-pro")
	v.SetDefault("generator.timeout_secs", 300)

	// Generator primary/secondary/tertiary defaults
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("generator."+tier+".provider", "")
		v.SetDefault("generator."+tier+".api_key", "")
		v.SetDefault("generator."+tier+".default_model", "")
		v.SetDefault("generator."+tier+".timeout_secs", 300)
		v.SetDefault("generator."+tier+".endpoint", "")
	}

	// Calculation defaults
	v.SetDefault("calculation.temperature", 0.1)
	v.SetDefault("calculation.safety_threshold", "BLOCK_ONLY_HIGH")
	v.SetDefault("calculation.debug", false)

	// Rules defaults
	v.SetDefault("rules.store", "file")
	v.SetDefault("rules.file_path", "rubrics.md")
	v.SetDefault("rules.s3_key", "rules/rubrics.md")
	v.SetDefault("rules.document_path", "Port Tariff.pdf")
	v.SetDefault("rules.document_s3_key", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "TARIFF_SERVER_PORT",
		"server.read_timeout":               "TARIFF_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "TARIFF_SERVER_WRITE_TIMEOUT",
		"server.request_timeout":            "TARIFF_SERVER_REQUEST_TIMEOUT",
		"server.environment":                "TARIFF_SERVER_ENVIRONMENT",
		"db.host":                           "TARIFF_DB_HOST",
		"db.port":                           "TARIFF_DB_PORT",
		"db.user":                           "TARIFF_DB_USER",
		"db.password":                       "TARIFF_DB_PASSWORD",
		"db.name":                           "TARIFF_DB_NAME",
		"db.sslmode":                        "TARIFF_DB_SSLMODE",
		"db.max_open":                       "TARIFF_DB_MAX_OPEN",
		"db.max_idle":                       "TARIFF_DB_MAX_IDLE",
		"s3.region":                         "TARIFF_S3_REGION",
		"s3.bucket":                         "TARIFF_S3_BUCKET",
		"s3.endpoint":                       "TARIFF_S3_ENDPOINT",
		"s3.access_key":                     "TARIFF_S3_ACCESS_KEY",
		"s3.secret_key":                     "TARIFF_S3_SECRET_KEY",
		"log.level":                         "TARIFF_LOG_LEVEL",
		"log.format":                        "TARIFF_LOG_FORMAT",
		"cors.allowed_origins":              "TARIFF_CORS_ALLOWED_ORIGINS",
		"generator.provider":                "TARIFF_GENERATOR_PROVIDER",
		"generator.api_key":                 "TARIFF_GENERATOR_API_KEY",
		"generator.default_model":           "TARIFF_GENERATOR_DEFAULT_MODEL",
		"generator.timeout_secs":            "TARIFF_GENERATOR_TIMEOUT_SECS",
		"generator.primary.provider":        "TARIFF_GENERATOR_PRIMARY_PROVIDER",
		"generator.primary.api_key":         "TARIFF_GENERATOR_PRIMARY_API_KEY",
		"generator.primary.default_model":   "TARIFF_GENERATOR_PRIMARY_DEFAULT_MODEL",
		"generator.primary.timeout_secs":    "TARIFF_GENERATOR_PRIMARY_TIMEOUT_SECS",
		"generator.primary.endpoint":        "TARIFF_GENERATOR_PRIMARY_ENDPOINT",
		"generator.secondary.provider":      "TARIFF_GENERATOR_SECONDARY_PROVIDER",
		"generator.secondary.api_key":       "TARIFF_GENERATOR_SECONDARY_API_KEY",
		"generator.secondary.default_model": "TARIFF_GENERATOR_SECONDARY_DEFAULT_MODEL",
		"generator.secondary.timeout_secs":  "TARIFF_GENERATOR_SECONDARY_TIMEOUT_SECS",
		"generator.secondary.endpoint":      "TARIFF_GENERATOR_SECONDARY_ENDPOINT",
		"generator.tertiary.provider":       "TARIFF_GENERATOR_TERTIARY_PROVIDER",
		"generator.tertiary.api_key":        "TARIFF_GENERATOR_TERTIARY_API_KEY",
		"generator.tertiary.default_model":  "TARIFF_GENERATOR_TERTIARY_DEFAULT_MODEL",
		"generator.tertiary.timeout_secs":   "TARIFF_GENERATOR_TERTIARY_TIMEOUT_SECS",
		"generator.tertiary.endpoint":       "TARIFF_GENERATOR_TERTIARY_ENDPOINT",
		"calculation.temperature":           "TARIFF_CALCULATION_TEMPERATURE",
		"calculation.safety_threshold":      "TARIFF_CALCULATION_SAFETY_THRESHOLD",
		"calculation.debug":                 "TARIFF_CALCULATION_DEBUG",
		"rules.store":                       "TARIFF_RULES_STORE",
		"rules.file_path":                   "TARIFF_RULES_FILE_PATH",
		"rules.s3_key":                      "TARIFF_RULES_S3_KEY",
		"rules.document_path":               "TARIFF_RULES_DOCUMENT_PATH",
		"rules.document_s3_key":             "TARIFF_RULES_DOCUMENT_S3_KEY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Render/Railway set PORT. Use it unless TARIFF_SERVER_PORT is explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TARIFF_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:           serverPort,
		ReadTimeout:    v.GetDuration("server.read_timeout"),
		WriteTimeout:   v.GetDuration("server.write_timeout"),
		RequestTimeout: v.GetDuration("server.request_timeout"),
		Environment:    v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Generator = GeneratorConfig{
		Provider:     v.GetString("generator.provider"),
		APIKey:       v.GetString("generator.api_key"),
		DefaultModel: v.GetString("generator.default_model"),
		TimeoutSecs:  v.GetInt("generator.timeout_secs"),
		Primary:      providerConfig(v, "primary"),
		Secondary:    providerConfig(v, "secondary"),
		Tertiary:     providerConfig(v, "tertiary"),
	}
	// The original deployment only knew GEMINI_API_KEY.
	if cfg.Generator.APIKey == "" {
		cfg.Generator.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	cfg.Calculation = CalculationConfig{
		Temperature:     v.GetFloat64("calculation.temperature"),
		SafetyThreshold: v.GetString("calculation.safety_threshold"),
		Debug:           v.GetBool("calculation.debug"),
	}

	cfg.Rules = RulesConfig{
		Store:         v.GetString("rules.store"),
		FilePath:      v.GetString("rules.file_path"),
		S3Key:         v.GetString("rules.s3_key"),
		DocumentPath:  v.GetString("rules.document_path"),
		DocumentS3Key: v.GetString("rules.document_s3_key"),
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, tier string) ProviderConfig {
	prefix := "generator." + tier + "."
	return ProviderConfig{
		Provider:     v.GetString(prefix + "provider"),
		APIKey:       v.GetString(prefix + "api_key"),
		DefaultModel: v.GetString(prefix + "default_model"),
		TimeoutSecs:  v.GetInt(prefix + "timeout_secs"),
		Endpoint:     v.GetString(prefix + "endpoint"),
	}
}
