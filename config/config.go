package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Shell   ShellConfig   `yaml:"shell"`
	Engine  EngineConfig  `yaml:"engine"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

type ShellConfig struct {
	PageSize int    `yaml:"page_size"`
	Prompt   string `yaml:"prompt"`
}

type EngineConfig struct {
	Dialect string `yaml:"dialect"`
}

type ExportConfig struct {
	Format string   `yaml:"format"`
	S3     S3Config `yaml:"s3"`
}

type S3Config struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// LoadConfig reads the YAML file at configPath, falling back to defaults
// when the path is empty or unreadable, then applies environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Shell: ShellConfig{
			PageSize: 20,
			Prompt:   "sqlcli> ",
		},
		Engine: EngineConfig{
			Dialect: "sqlite",
		},
		Export: ExportConfig{
			Format: "csv",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func loadFromEnv(config *Config) {
	if size := os.Getenv("SQLCLI_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			config.Shell.PageSize = n
		}
	}
	if prompt := os.Getenv("SQLCLI_PROMPT"); prompt != "" {
		config.Shell.Prompt = prompt
	}
	if dialect := os.Getenv("SQLCLI_DIALECT"); dialect != "" {
		config.Engine.Dialect = dialect
	}
	if format := os.Getenv("SQLCLI_EXPORT_FORMAT"); format != "" {
		config.Export.Format = format
	}

	if region := os.Getenv("SQLCLI_S3_REGION"); region != "" {
		config.Export.S3.Region = region
	}
	if endpoint := os.Getenv("SQLCLI_S3_ENDPOINT"); endpoint != "" {
		config.Export.S3.Endpoint = endpoint
	}
	if key := os.Getenv("SQLCLI_S3_ACCESS_KEY"); key != "" {
		config.Export.S3.AccessKey = key
	}
	if secret := os.Getenv("SQLCLI_S3_SECRET_KEY"); secret != "" {
		config.Export.S3.SecretKey = secret
	}

	if level := os.Getenv("SQLCLI_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if file := os.Getenv("SQLCLI_LOG_FILE"); file != "" {
		config.Logging.File = file
	}
}

func validateConfig(config *Config) error {
	if config.Shell.PageSize < 1 {
		return fmt.Errorf("shell.page_size must be at least 1")
	}
	switch config.Engine.Dialect {
	case "sqlite", "sqlite3", "duckdb":
	default:
		return fmt.Errorf("engine.dialect must be sqlite or duckdb, got %q", config.Engine.Dialect)
	}
	switch config.Export.Format {
	case "csv", "json", "txt":
	default:
		return fmt.Errorf("export.format must be csv, json, or txt, got %q", config.Export.Format)
	}
	return nil
}
