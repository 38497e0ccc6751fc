package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Weaviate WeaviateConfig `yaml:"weaviate"`
	Vertex   VertexConfig   `yaml:"vertex"`
	Auth     AuthConfig     `yaml:"auth"`
	Upload   UploadConfig   `yaml:"upload,omitempty"`
	Search   SearchConfig   `yaml:"search,omitempty"`
	Geocode  GeocodeConfig  `yaml:"geocode,omitempty"`
}

// WeaviateConfig holds vector store connection settings
type WeaviateConfig struct {
	Host       string `yaml:"host"`             // e.g. "my-cluster.weaviate.network"
	Scheme     string `yaml:"scheme,omitempty"` // "https" | "http"
	APIKey     string `yaml:"api_key"`          // static cluster API key
	Collection string `yaml:"collection,omitempty"`
}

// VertexConfig identifies the multimodal embedding model bound to the collection
type VertexConfig struct {
	ProjectID string `yaml:"project_id"`
	Location  string `yaml:"location,omitempty"` // e.g. "us-central1"
	Model     string `yaml:"model,omitempty"`
}

// AuthConfig selects how the Vertex bearer token is obtained
type AuthConfig struct {
	Strategy        string `yaml:"strategy,omitempty"` // "gcloud" | "service_account"
	CredentialsFile string `yaml:"credentials_file,omitempty"`
}

// UploadConfig holds ingestion defaults
type UploadConfig struct {
	BaseURL   string   `yaml:"base_url,omitempty"` // prefix for stored image URLs
	BatchSize int      `yaml:"batch_size,omitempty"`
	Patterns  []string `yaml:"patterns,omitempty"` // doublestar globs relative to the upload dir
}

// SearchConfig holds query defaults
type SearchConfig struct {
	DefaultLimit    int     `yaml:"default_limit,omitempty"`
	DefaultRadiusKm float64 `yaml:"default_radius_km,omitempty"`
}

// GeocodeConfig holds geocoder settings
type GeocodeConfig struct {
	CachePath string `yaml:"cache_path,omitempty"` // sqlite cache, defaults under ~/.photoatlas/data
}

// Load loads configuration from the default config file
// Default location: ~/.photoatlas/config/photoatlas.yaml
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".photoatlas", "config", "photoatlas.yaml")
	return LoadFromFile(configPath)
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			homeDir, _ := os.UserHomeDir()
			defaultPath := filepath.Join(homeDir, ".photoatlas", "config", "photoatlas.yaml")
			return nil, &ConfigNotFoundError{
				RequestedPath: path,
				DefaultPath:   defaultPath,
			}
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ConfigNotFoundError is returned when config file is not found
type ConfigNotFoundError struct {
	RequestedPath string
	DefaultPath   string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config file not found at: %s\n\nDefault location: %s\n\nYou can:\n"+
		"  1. Create the config file at the default location\n"+
		"  2. Specify a custom path with -config flag",
		e.RequestedPath, e.DefaultPath)
}

// IsConfigNotFound checks if error is config not found
func IsConfigNotFound(err error) bool {
	_, ok := err.(*ConfigNotFoundError)
	return ok
}

// expandPath expands ~ and $HOME to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "$HOME/") || path == "$HOME" {
		homeDir := os.Getenv("HOME")
		if homeDir == "" {
			var err error
			homeDir, err = os.UserHomeDir()
			if err != nil {
				return path
			}
		}
		if path == "$HOME" {
			return homeDir
		}
		return filepath.Join(homeDir, path[6:])
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return homeDir
		}
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() error {
	if c.Weaviate.Scheme == "" {
		c.Weaviate.Scheme = "https"
	}
	if c.Weaviate.Collection == "" {
		c.Weaviate.Collection = "Photos"
	}

	if c.Vertex.Location == "" {
		c.Vertex.Location = "us-central1"
	}

	if c.Auth.Strategy == "" {
		c.Auth.Strategy = "gcloud"
	}
	if c.Auth.CredentialsFile != "" {
		c.Auth.CredentialsFile = expandPath(c.Auth.CredentialsFile)
	}

	if c.Upload.BatchSize == 0 {
		c.Upload.BatchSize = 10
	}
	if len(c.Upload.Patterns) == 0 {
		c.Upload.Patterns = []string{"**/*.{jpg,jpeg,png,gif,webp}"}
	}

	if c.Search.DefaultLimit == 0 {
		c.Search.DefaultLimit = 5
	}
	if c.Search.DefaultRadiusKm == 0 {
		c.Search.DefaultRadiusKm = 25
	}

	if c.Geocode.CachePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		c.Geocode.CachePath = filepath.Join(homeDir, ".photoatlas", "data", "geocode.db")
	} else {
		c.Geocode.CachePath = expandPath(c.Geocode.CachePath)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Weaviate.Host == "" {
		return fmt.Errorf("weaviate.host is required")
	}
	if c.Weaviate.Scheme != "http" && c.Weaviate.Scheme != "https" {
		return fmt.Errorf("weaviate.scheme must be http or https, got: %s", c.Weaviate.Scheme)
	}

	if c.Vertex.ProjectID == "" {
		return fmt.Errorf("vertex.project_id is required")
	}

	switch c.Auth.Strategy {
	case "gcloud":
		// delegated to the gcloud CLI, nothing else required
	case "service_account":
		if c.Auth.CredentialsFile == "" {
			return fmt.Errorf("service_account strategy requires auth.credentials_file")
		}
	default:
		return fmt.Errorf("unsupported auth strategy: %s", c.Auth.Strategy)
	}

	if c.Upload.BatchSize <= 0 || c.Upload.BatchSize > 100 {
		return fmt.Errorf("upload.batch_size must be between 1 and 100, got: %d", c.Upload.BatchSize)
	}

	if c.Search.DefaultRadiusKm <= 0 {
		return fmt.Errorf("search.default_radius_km must be positive, got: %g", c.Search.DefaultRadiusKm)
	}

	return nil
}

const defaultConfigTemplate = `# photoatlas configuration
#
# Copy and edit this file for your environment.
# Default location: $HOME/.photoatlas/config/photoatlas.yaml

weaviate:
  host: your-cluster.weaviate.network
  scheme: https
  api_key: your-weaviate-api-key
  collection: Photos

# Google Cloud project backing the multimodal vectorizer
vertex:
  project_id: your-gcp-project
  location: us-central1

# How the short-lived Vertex bearer token is obtained:
#   gcloud          - delegate to "gcloud auth print-access-token"
#   service_account - exchange a service account key file
auth:
  strategy: gcloud
  # credentials_file: ~/keys/photoatlas-sa.json

upload:
  batch_size: 10
  # base_url: https://photos.example.net/
  # patterns:
  #   - "**/*.{jpg,jpeg,png,gif,webp}"

search:
  default_limit: 5
  default_radius_km: 25
`

// WriteDefaultTemplate creates a default configuration file if it does not exist.
// It returns true if a file was created, false if it already existed.
func WriteDefaultTemplate(path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil {
		return false, fmt.Errorf("failed to write config template: %w", err)
	}

	return true, nil
}
