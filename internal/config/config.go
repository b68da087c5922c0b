package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pascalleclercq/google-upload-plugin/internal/artifact"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/errors"
)

const (
	// DefaultServerID is the settings-store key the upload credentials live under
	DefaultServerID = "code.google.com"

	// DefaultEnvPrefix prefixes the credential environment variables (GOOGLECODE_USERNAME, ...)
	DefaultEnvPrefix = "GOOGLECODE"

	// DefaultTimeout is the connect timeout in seconds
	DefaultTimeout = 60

	// MaxTimeout caps the connect timeout in seconds
	MaxTimeout = 3600
)

// Config holds all configuration for the application
type Config struct {
	// Destination
	ProjectName string `json:"projectName"`
	UploadURL   string `json:"uploadUrl"` // Overrides the project-derived endpoint

	// Upload content
	FileName       string              `json:"fileName"`       // Local path of the file to upload
	TargetFileName string              `json:"targetFileName"` // Name the file is given on the server
	Summary        string              `json:"summary"`
	Labels         string              `json:"labels"` // Comma separated
	Classifier     string              `json:"classifier"`
	Artifacts      []artifact.Artifact `json:"artifacts"`

	// Transport
	IgnoreSSLCertificateHostname bool  `json:"ignoreSslCertificateHostname"`
	IOLimit                      int64 `json:"ioLimit"` // Bandwidth limit in bytes/second, -1 or 0 for unlimited
	Timeout                      int   `json:"timeout"` // Connect timeout in seconds

	// Credentials
	ServerID     string `json:"serverId"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	SettingsFile string `json:"settingsFile"` // INI file with a [serverId] section
	EnvFile      string `json:"envFile"`      // .env file loaded before resolving credentials
	EnvPrefix    string `json:"envPrefix"`
	AWSSecretID  string `json:"awsSecretId"` // Secrets Manager secret holding {"username","password"}

	// Log configuration
	LogDir      string `json:"logDir"`
	LogFileName string `json:"logFileName"`

	// AI diagnosis configuration
	QwenAPIKey string `json:"qwenAPIKey"`

	// Runtime flags (not from config file)
	Quiet   bool `json:"-"`
	Verbose bool `json:"-"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("Failed to read config file "+path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewParsingError("config file", path, err)
	}
	return &cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left untouched. A missing default .env is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return errors.NewConfigError("Failed to load env file "+path, err)
	}
	return nil
}

// SetDefaults sets default values for configuration fields
func (c *Config) SetDefaults() {
	if c.ServerID == "" {
		c.ServerID = DefaultServerID
	}
	if c.EnvPrefix == "" {
		c.EnvPrefix = DefaultEnvPrefix
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	// Enforce maximum timeout: 3600 seconds (1 hour)
	if c.Timeout > MaxTimeout {
		c.Timeout = MaxTimeout
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(os.TempDir(), "googlecode-upload")
	}
}

// GetRateLimit returns the effective bandwidth limit, 0 meaning unlimited
func (c *Config) GetRateLimit() int64 {
	if c.IOLimit < 0 {
		return 0
	}
	return c.IOLimit
}
