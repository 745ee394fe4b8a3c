package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (FAU_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string `default:"0.0.0.0:8080" usage:"HTTP listen address"`
	AdminToken   string `usage:"Shared secret for the admin panel (FAU_ADMIN_TOKEN); empty disables admin" flag:"admin-token"`
	SettingsPath string `default:"settings.json" usage:"Path of the persisted remote-connection settings blob" flag:"settings-path"`
	Firestore    FirestoreConfig
	Gemini       GeminiConfig
	Session      SessionConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Graceful     GracefulConfig
}

// FirestoreConfig identifies the remote catalog store. Values saved through
// the admin settings panel override these on the next start.
type FirestoreConfig struct {
	ProjectID          string        `usage:"Google Cloud project id (FAU_FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)" flag:"firestore-project"`
	CredentialsFile    string        `usage:"Service account key file; empty uses application default credentials" flag:"firestore-credentials"`
	ProductsCollection string        `default:"products" usage:"Product collection name"`
	ContentCollection  string        `default:"content" usage:"About-us collection name"`
	ContentDoc         string        `default:"about" usage:"About-us document id"`
	StaleAfter         time.Duration `default:"5m" usage:"Feed age after which readiness fails" flag:"feed-stale-after"`
}

// GeminiConfig controls the optional auto-translate backend.
type GeminiConfig struct {
	APIKey string `usage:"Gemini API key (FAU_GEMINI_API_KEY); empty disables auto-translate" flag:"gemini-api-key"`
	Model  string `default:"gemini-2.0-flash" usage:"Gemini model id" flag:"gemini-model"`
}

// SessionConfig controls the per-browser session registry.
type SessionConfig struct {
	TTL time.Duration `default:"30m" usage:"Idle session lifetime"`
}

// RateLimitConfig controls the per-session sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"300" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"true" usage:"Allow credentials; the session rides on a cookie" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-provided defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "FAU",
		Files:     []string{"config.yaml", "/etc/faushop/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps standard environment variables (Cloud Run,
// Railway, etc.) onto the FAU_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.Firestore.ProjectID == "" {
		if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
			c.Firestore.ProjectID = v
		}
	}
	if c.Firestore.CredentialsFile == "" {
		if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
			c.Firestore.CredentialsFile = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
