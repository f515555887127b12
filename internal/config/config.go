package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/a8m/envsubst"
	"gopkg.in/yaml.v3"
)

// Config is the main configuration struct. It is loaded from a YAML file,
// environment variable references inside the file are substituted before parsing.
type Config struct {
	Core struct {
		// LogLevel sets the verbosity of the logger. Supported: trace, debug, info, warn, error
		LogLevel string `yaml:"log_level"`
		// LogJson enables JSON formatted log output
		LogJson bool `yaml:"log_json"`
	} `yaml:"core"`

	Provider ProviderConfig `yaml:"provider"`

	Directory DirectoryConfig `yaml:"directory"`

	Database DatabaseConfig `yaml:"database"`

	Mail MailConfig `yaml:"mail"`

	Statistics StatisticsConfig `yaml:"statistics"`

	Web WebConfig `yaml:"web"`
}

// StatisticsConfig contains the configuration for the metrics endpoint.
type StatisticsConfig struct {
	// CollectAuditData enables persisting of auth and user management events to the audit table
	CollectAuditData bool `yaml:"collect_audit_data"`
	// ListeningAddress is the address and port for the metrics server, metrics are disabled if empty
	ListeningAddress string `yaml:"listening_address"`
}

func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Core.LogLevel = "info"

	cfg.Provider = ProviderConfig{
		Timeout: defaultProviderTimeout,
	}

	cfg.Database = DatabaseConfig{
		Type: DatabaseSQLite,
		DSN:  "data/hrms.db",
	}

	cfg.Statistics.CollectAuditData = true

	cfg.Web = WebConfig{
		ListeningAddress:  ":8888",
		SessionIdentifier: "hrmsPortalSession",
		CsrfSecret:        "",
		RequestLogging:    false,
	}

	cfg.Directory.CacheTTL = defaultCacheTTL

	return cfg
}

// GetConfig returns the configuration, loaded from the config file (HRMS_PORTAL_CONFIG
// or config.yml). A missing config file is not an error, the defaults apply in that case.
// Missing provider credentials are a fatal configuration error.
func GetConfig() (*Config, error) {
	cfg := defaultConfig()

	cfgFileName := "config.yml"
	if envCfgFileName := os.Getenv("HRMS_PORTAL_CONFIG"); envCfgFileName != "" {
		cfgFileName = envCfgFileName
	}

	if err := loadConfigFile(cfg, cfgFileName); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load config from yaml: %w", err)
	}

	cfg.Provider.applyEnvironment()
	cfg.Web.Sanitize()
	if cfg.Directory.CacheTTL <= 0 {
		cfg.Directory.CacheTTL = defaultCacheTTL
	}

	if err := cfg.Provider.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadConfigFile(cfg any, filename string) error {
	data, err := envsubst.ReadFile(filename)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}
