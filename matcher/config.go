package matcher

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/viant/namematch/embedding"
	"github.com/viant/namematch/embedding/mock"
	"github.com/viant/namematch/embedding/openai"
)

// Config declares a matcher in YAML, typically loaded at application start.
type Config struct {
	// Provider selects the embedding backend: "openai" or "mock".
	Provider string `yaml:"provider"`
	// Model is the provider's model identifier; empty uses the provider
	// default.
	Model string `yaml:"model"`
	// APIKeyEnv names the environment variable holding the provider API
	// key. Defaults to OPENAI_API_KEY.
	APIKeyEnv string `yaml:"apiKeyEnv"`
	// Dimensions sets the mock provider's vector size; ignored for openai.
	Dimensions int `yaml:"dimensions"`
	// Stopwords overrides the default stopword list when present. An empty
	// list disables stopword removal.
	Stopwords *[]string `yaml:"stopwords"`
	// Clusters is the default cluster count for BuildIndex callers that
	// read it from configuration.
	Clusters int `yaml:"clusters"`
	// SaveDir is where built indexes are persisted; empty disables
	// persistence.
	SaveDir string `yaml:"saveDir"`
}

const (
	providerOpenAI = "openai"
	providerMock   = "mock"

	defaultAPIKeyEnv      = "OPENAI_API_KEY"
	defaultMockDimensions = 512
)

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("matcher: open config: %w", err)
	}
	defer f.Close()
	return LoadConfigFromReader(f)
}

// LoadConfigFromReader decodes a YAML config. Unknown fields are rejected so
// typos fail loudly instead of silently falling back to defaults.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("matcher: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config for contradictions and warns about suspicious
// but legal values.
func (c *Config) Validate() error {
	var errs []error
	switch c.Provider {
	case providerOpenAI, providerMock:
	case "":
		errs = append(errs, errors.New("matcher: config: provider is required"))
	default:
		errs = append(errs, fmt.Errorf("matcher: config: unknown provider %q", c.Provider))
	}
	if c.Clusters < 0 {
		errs = append(errs, fmt.Errorf("matcher: config: clusters must not be negative, got %d", c.Clusters))
	}
	if c.Dimensions < 0 {
		errs = append(errs, fmt.Errorf("matcher: config: dimensions must not be negative, got %d", c.Dimensions))
	}
	if c.Provider == providerOpenAI && c.Dimensions != 0 {
		slog.Warn("config: dimensions is ignored for the openai provider", "dimensions", c.Dimensions)
	}
	return errors.Join(errs...)
}

// NewMatcher builds a Matcher from the config, reading the API key from the
// environment for providers that need one.
func (c *Config) NewMatcher(opts ...Option) (*Matcher, error) {
	p, err := c.newProvider()
	if err != nil {
		return nil, err
	}
	if c.Stopwords != nil {
		opts = append([]Option{WithStopwords(*c.Stopwords)}, opts...)
	}
	return New(p, opts...), nil
}

func (c *Config) newProvider() (embedding.Provider, error) {
	switch c.Provider {
	case providerMock:
		dim := c.Dimensions
		if dim == 0 {
			dim = defaultMockDimensions
		}
		return mock.New(dim), nil
	case providerOpenAI:
		env := c.APIKeyEnv
		if env == "" {
			env = defaultAPIKeyEnv
		}
		key := os.Getenv(env)
		if key == "" {
			return nil, fmt.Errorf("matcher: config: environment variable %s is not set", env)
		}
		return openai.New(key, c.Model)
	default:
		return nil, fmt.Errorf("matcher: config: unknown provider %q", c.Provider)
	}
}
