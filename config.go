package predictionguard

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
	"golang.org/x/net/http/httpguts"

	"github.com/predictionguard/go-client/callback"
)

// Version is the client version reported in the User-Agent header.
const Version = "0.9.0"

// DefaultURL is the public Prediction Guard endpoint.
const DefaultURL = "https://api.predictionguard.com"

const (
	defaultConnectTimeout = 30 * time.Second
	defaultReadTimeout    = 30 * time.Second
	defaultTimeout        = 45 * time.Second
)

// HTTPClient defines the interface for HTTP clients.
// This allows injection of custom clients or mocks for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the connection settings for a Client.
//
// Values can be set directly, built with NewConfig, or loaded from the
// environment (and optionally a .env/yaml file) with LoadConfig.
type Config struct {
	// APIKey is the Prediction Guard API key. Secret: never read from yaml.
	APIKey string `yaml:"-" json:"-" env:"PREDICTIONGUARD_API_KEY" env-required:"true"`

	// URL is the base URL of the API, without a trailing path.
	URL string `yaml:"url" json:"url" env:"PREDICTIONGUARD_URL" env-default:"https://api.predictionguard.com"`

	// ConnectTimeout bounds establishing the TCP/TLS connection.
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout" env:"PREDICTIONGUARD_CONNECT_TIMEOUT" env-default:"30s"`

	// ReadTimeout bounds only the wait for response headers after the request
	// is written. It is not a deadline on reading the body: a stream that
	// stalls after its headers arrive runs until its ctx is cancelled or the
	// stream is closed.
	ReadTimeout time.Duration `yaml:"read_timeout" json:"read_timeout" env:"PREDICTIONGUARD_READ_TIMEOUT" env-default:"30s"`

	// Timeout is the overall ceiling for a non-streaming request. Streams
	// are not subject to it.
	Timeout time.Duration `yaml:"timeout" json:"timeout" env:"PREDICTIONGUARD_TIMEOUT" env-default:"45s"`
}

// NewConfig returns a Config for the given key and host with default timeouts.
// An empty host selects DefaultURL.
func NewConfig(apiKey, host string) Config {
	if host == "" {
		host = DefaultURL
	}
	return Config{
		APIKey:         apiKey,
		URL:            host,
		ConnectTimeout: defaultConnectTimeout,
		ReadTimeout:    defaultReadTimeout,
		Timeout:        defaultTimeout,
	}
}

// LoadConfig loads configuration from the environment.
//
// If paths are given, the first one that exists is read (".env", ".yaml",
// ".yml", ".json" or ".toml"). Variables in a .env file are exported to the
// process environment; for the structured formats, environment variables
// override the file. Paths that do not exist are skipped; with no readable
// file the configuration comes from the environment alone.
//
// Expected variables are PREDICTIONGUARD_API_KEY (required) and
// PREDICTIONGUARD_URL. Errors are returned as *ConfigError.
//
// Example:
//
//	cfg, err := predictionguard.LoadConfig(".env")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := predictionguard.NewClient(cfg)
func LoadConfig(paths ...string) (Config, error) {
	var cfg Config

	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Config{}, NewConfigError("", fmt.Sprintf("cannot stat %s", p), err)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return Config{}, NewConfigError("", fmt.Sprintf("failed to read %s", p), err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, NewConfigError("", "failed to read environment", err)
	}
	return cfg, nil
}

// Validate checks that the configuration can be used to build a client.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return NewConfigError("APIKey", "API key is required", nil)
	}
	if !httpguts.ValidHeaderFieldValue(c.APIKey) {
		return NewConfigError("APIKey", "API key is not a valid header value", nil)
	}
	if c.URL == "" {
		return NewConfigError("URL", "URL is required", nil)
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return NewConfigError("URL", "URL cannot be parsed", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewConfigError("URL", fmt.Sprintf("unsupported scheme %q", u.Scheme), nil)
	}
	if c.ConnectTimeout < 0 || c.ReadTimeout < 0 || c.Timeout < 0 {
		return NewConfigError("Timeout", "timeouts must not be negative", nil)
	}
	return nil
}

// withDefaults fills zero timeouts and trims the trailing slash from URL.
func (c Config) withDefaults() Config {
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaultReadTimeout
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	c.URL = strings.TrimRight(c.URL, "/")
	return c
}

// clientOptions holds settings applied through ClientOption.
type clientOptions struct {
	httpClient HTTPClient
	logger     *zap.Logger
	callbacks  *callback.Registry
	userAgent  string
}

// ClientOption is a functional option for configuring the client.
type ClientOption func(*clientOptions) error

// WithHTTPClient replaces the HTTP client used for all calls.
//
// The configured timeouts are not applied to a custom client; it is used
// as given for both plain and streaming calls.
func WithHTTPClient(c HTTPClient) ClientOption {
	return func(o *clientOptions) error {
		if c == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		o.httpClient = c
		return nil
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *zap.Logger) ClientOption {
	return func(o *clientOptions) error {
		if l == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		o.logger = l
		return nil
	}
}

// WithCallbacks sets the callback registry run around every request.
//
// Example:
//
//	registry := callback.NewRegistry()
//	registry.RegisterFailure(func(ctx context.Context, e *callback.FailureEvent) {
//	    log.Printf("%s failed: %v", e.Capability, e.Error)
//	})
//	client, err := predictionguard.NewClient(cfg, predictionguard.WithCallbacks(registry))
func WithCallbacks(r *callback.Registry) ClientOption {
	return func(o *clientOptions) error {
		o.callbacks = r
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(o *clientOptions) error {
		if ua == "" {
			return fmt.Errorf("user agent cannot be empty")
		}
		if !httpguts.ValidHeaderFieldValue(ua) {
			return fmt.Errorf("user agent is not a valid header value")
		}
		o.userAgent = ua
		return nil
	}
}
