package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# Taskflow server configuration

# The name of the server.
name: "{{ .Name }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# The HTTP server configuration.
http:
  # The address on which the HTTP server will listen.
  listen_addr: "{{ .HTTP.ListenAddr }}"

  # The path to the TLS private key.
  tls_key_path: "{{ .HTTP.TLSKeyPath }}"

  # The path to the TLS certificate.
  tls_cert_path: "{{ .HTTP.TLSCertPath }}"

  # The public URL of the HTTP server.
  public_url: "{{ .HTTP.PublicURL }}"

  # Cross-origin settings for browser clients.
  cors:
    allowed_headers:{{ range .HTTP.CORS.AllowedHeaders }}
      - "{{ . }}"{{ end }}
    allowed_origins:{{ range .HTTP.CORS.AllowedOrigins }}
      - "{{ . }}"{{ end }}
    allowed_methods:{{ range .HTTP.CORS.AllowedMethods }}
      - "{{ . }}"{{ end }}

# The stats server configuration.
stats:
  # Serve Prometheus metrics.
  enabled: {{ .Stats.Enabled }}

  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"

# The database configuration.
db:
  # The database driver to use.
  # Valid values are "sqlite" and "postgres".
  driver: "{{ .DB.Driver }}"
  # The database data source name.
  # This is driver specific and can be a file path or connection string.
  # Make sure foreign key support is enabled when using SQLite.
  data_source: "{{ .DB.DataSource }}"

# Session tokens.
auth:
  # HMAC secret used to verify session tokens. Prefer TASKFLOW_AUTH_JWT_SECRET.
  jwt_secret: "{{ .Auth.JWTSecret }}"
  # Expected token issuer.
  issuer: "{{ .Auth.Issuer }}"
  # Cookie consulted when no Authorization header is present.
  cookie_name: "{{ .Auth.CookieName }}"
  # Lifetime of tokens minted by "taskflow user token".
  session_ttl: "{{ .Auth.SessionTTL }}"

# Attachment storage.
attachments:
  # Where uploaded bytes go. Valid values are "local" and "inline".
  # The inline backend stores data URLs in the database and is meant for
  # development only.
  backend: "{{ .Attachments.Backend }}"
  # Directory of the local blob store.
  path: "{{ .Attachments.Path }}"
  # Must be true to use the inline backend.
  allow_inline: {{ .Attachments.AllowInline }}
  # Largest accepted upload, in bytes.
  max_upload_size: {{ .Attachments.MaxUploadSize }}

# Cron jobs configuration.
jobs:
  # Remove blobs no attachment references. Leave empty to disable.
  prune_blobs: "{{ .Jobs.PruneBlobs }}"
`))

func newConfigFile(cfg *Config) string {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
