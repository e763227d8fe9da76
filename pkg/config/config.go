package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrNilConfig is returned when a nil config is passed to a function.
var ErrNilConfig = errors.New("nil config")

// Attachment backends.
const (
	// AttachmentsLocal stores attachment bytes on the local filesystem.
	AttachmentsLocal = "local"

	// AttachmentsInline encodes attachment bytes as data URLs in the database.
	AttachmentsInline = "inline"
)

// CORSConfig is the CORS configuration for the HTTP server.
type CORSConfig struct {
	AllowedHeaders []string `env:"ALLOWED_HEADERS" envSeparator:"," yaml:"allowed_headers"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," yaml:"allowed_origins"`
	AllowedMethods []string `env:"ALLOWED_METHODS" envSeparator:"," yaml:"allowed_methods"`
}

// HTTPConfig is the HTTP configuration for the server.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// TLSKeyPath is the path to the TLS private key.
	TLSKeyPath string `env:"TLS_KEY_PATH" yaml:"tls_key_path"`

	// TLSCertPath is the path to the TLS certificate.
	TLSCertPath string `env:"TLS_CERT_PATH" yaml:"tls_cert_path"`

	// PublicURL is the public URL of the HTTP server.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`

	// CORS is the cross-origin configuration for browser clients.
	CORS CORSConfig `envPrefix:"CORS_" yaml:"cors"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// Enabled toggles the Prometheus metrics server.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	// Valid values are "sqlite" and "postgres".
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// AuthConfig configures session tokens.
type AuthConfig struct {
	// JWTSecret is the HMAC secret used to sign and verify session tokens.
	JWTSecret string `env:"JWT_SECRET" yaml:"jwt_secret"`

	// Issuer is the expected "iss" claim.
	Issuer string `env:"ISSUER" yaml:"issuer"`

	// CookieName is the cookie checked when no Authorization header is sent.
	CookieName string `env:"COOKIE_NAME" yaml:"cookie_name"`

	// SessionTTL is the lifetime of tokens issued by the token command.
	SessionTTL time.Duration `env:"SESSION_TTL" yaml:"session_ttl"`
}

// AttachmentsConfig configures where uploaded bytes go.
type AttachmentsConfig struct {
	// Backend is either "local" or "inline".
	Backend string `env:"BACKEND" yaml:"backend"`

	// Path is the directory of the local blob store.
	Path string `env:"PATH" yaml:"path"`

	// AllowInline permits the inline data URL backend.
	AllowInline bool `env:"ALLOW_INLINE" yaml:"allow_inline"`

	// MaxUploadSize is the largest accepted upload body, in bytes.
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" yaml:"max_upload_size"`
}

// JobsConfig is the configuration for cron jobs.
type JobsConfig struct {
	// PruneBlobs is the cron spec of the orphan blob cleanup. Empty disables it.
	PruneBlobs string `env:"PRUNE_BLOBS" yaml:"prune_blobs"`
}

// Config is the configuration for taskflow.
type Config struct {
	// Name is the name of the server.
	Name string `env:"NAME" yaml:"name"`

	// HTTP is the configuration for the HTTP server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Auth is the session configuration.
	Auth AuthConfig `envPrefix:"AUTH_" yaml:"auth"`

	// Attachments is the attachment storage configuration.
	Attachments AttachmentsConfig `envPrefix:"ATTACHMENTS_" yaml:"attachments"`

	// Jobs is the configuration for cron jobs
	Jobs JobsConfig `envPrefix:"JOBS_" yaml:"jobs"`

	// DataPath is the path to the directory where taskflow will store its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	if c == nil {
		return nil
	}

	return []string{
		fmt.Sprintf("TASKFLOW_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("TASKFLOW_NAME=%s", c.Name),
		fmt.Sprintf("TASKFLOW_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("TASKFLOW_HTTP_TLS_KEY_PATH=%s", c.HTTP.TLSKeyPath),
		fmt.Sprintf("TASKFLOW_HTTP_TLS_CERT_PATH=%s", c.HTTP.TLSCertPath),
		fmt.Sprintf("TASKFLOW_HTTP_PUBLIC_URL=%s", c.HTTP.PublicURL),
		fmt.Sprintf("TASKFLOW_HTTP_CORS_ALLOWED_HEADERS=%s", strings.Join(c.HTTP.CORS.AllowedHeaders, ",")),
		fmt.Sprintf("TASKFLOW_HTTP_CORS_ALLOWED_ORIGINS=%s", strings.Join(c.HTTP.CORS.AllowedOrigins, ",")),
		fmt.Sprintf("TASKFLOW_HTTP_CORS_ALLOWED_METHODS=%s", strings.Join(c.HTTP.CORS.AllowedMethods, ",")),
		fmt.Sprintf("TASKFLOW_STATS_ENABLED=%t", c.Stats.Enabled),
		fmt.Sprintf("TASKFLOW_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("TASKFLOW_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("TASKFLOW_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("TASKFLOW_DB_DRIVER=%s", c.DB.Driver),
		fmt.Sprintf("TASKFLOW_DB_DATA_SOURCE=%s", c.DB.DataSource),
		fmt.Sprintf("TASKFLOW_AUTH_ISSUER=%s", c.Auth.Issuer),
		fmt.Sprintf("TASKFLOW_AUTH_COOKIE_NAME=%s", c.Auth.CookieName),
		fmt.Sprintf("TASKFLOW_AUTH_SESSION_TTL=%s", c.Auth.SessionTTL),
		fmt.Sprintf("TASKFLOW_ATTACHMENTS_BACKEND=%s", c.Attachments.Backend),
		fmt.Sprintf("TASKFLOW_ATTACHMENTS_PATH=%s", c.Attachments.Path),
		fmt.Sprintf("TASKFLOW_ATTACHMENTS_ALLOW_INLINE=%t", c.Attachments.AllowInline),
		fmt.Sprintf("TASKFLOW_ATTACHMENTS_MAX_UPLOAD_SIZE=%d", c.Attachments.MaxUploadSize),
		fmt.Sprintf("TASKFLOW_JOBS_PRUNE_BLOBS=%s", c.Jobs.PruneBlobs),
	}
}

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("TASKFLOW_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("TASKFLOW_VERBOSE"))
	return IsDebug() && verbose
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped. Variables already set are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if !exist(f) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	// Origins from the file are kept and extended by the environment.
	origins := append([]string{}, cfg.HTTP.CORS.AllowedOrigins...)

	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "TASKFLOW_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	if os.Getenv("TASKFLOW_HTTP_CORS_ALLOWED_ORIGINS") != "" {
		cfg.HTTP.CORS.AllowedOrigins = append(origins, cfg.HTTP.CORS.AllowedOrigins...)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o600) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the TASKFLOW_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("TASKFLOW_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file.
// TASKFLOW_CONFIG_LOCATION wins when it points at an existing file.
func (c *Config) ConfigPath() string { // nolint:revive
	if path := os.Getenv("TASKFLOW_CONFIG_LOCATION"); exist(path) {
		return path
	}
	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	cfg := &Config{
		Name:     "Taskflow",
		DataPath: DefaultDataPath(),
		HTTP: HTTPConfig{
			ListenAddr: ":8787",
			PublicURL:  "http://localhost:8787",
			CORS: CORSConfig{
				AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
				AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			},
		},
		Stats: StatsConfig{
			ListenAddr: "localhost:8788",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "taskflow.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		Auth: AuthConfig{
			Issuer:     "taskflow",
			CookieName: "taskflow_session",
			SessionTTL: 24 * time.Hour,
		},
		Attachments: AttachmentsConfig{
			Backend:       AttachmentsLocal,
			Path:          "blobs",
			MaxUploadSize: 10 << 20, // 10MB
		},
	}
	cfg.HTTP.CORS.AllowedOrigins = []string{cfg.HTTP.PublicURL}
	return cfg
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.HTTP.PublicURL = strings.TrimSuffix(c.HTTP.PublicURL, "/")

	if c.HTTP.TLSKeyPath != "" && !filepath.IsAbs(c.HTTP.TLSKeyPath) {
		c.HTTP.TLSKeyPath = filepath.Join(c.DataPath, c.HTTP.TLSKeyPath)
	}

	if c.HTTP.TLSCertPath != "" && !filepath.IsAbs(c.HTTP.TLSCertPath) {
		c.HTTP.TLSCertPath = filepath.Join(c.DataPath, c.HTTP.TLSCertPath)
	}

	if strings.HasPrefix(c.DB.Driver, "sqlite") && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	switch c.Attachments.Backend {
	case "", AttachmentsLocal:
		c.Attachments.Backend = AttachmentsLocal
		if c.Attachments.Path == "" {
			c.Attachments.Path = "blobs"
		}
		if !filepath.IsAbs(c.Attachments.Path) {
			c.Attachments.Path = filepath.Join(c.DataPath, c.Attachments.Path)
		}
	case AttachmentsInline:
		if !c.Attachments.AllowInline {
			return fmt.Errorf("attachments backend %q requires allow_inline", c.Attachments.Backend)
		}
	default:
		return fmt.Errorf("unknown attachments backend %q", c.Attachments.Backend)
	}

	if c.Attachments.MaxUploadSize < 0 {
		return fmt.Errorf("invalid attachments max_upload_size %d", c.Attachments.MaxUploadSize)
	}

	return nil
}
