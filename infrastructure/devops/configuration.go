package devops

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	DSN            string `yaml:"dsn"`
	MaxConnections int    `yaml:"maxConnections"`
}

type AuthConfig struct {
	// SigningSecret is base64-encoded.
	SigningSecret string `yaml:"signingSecret"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

// LoadConfig reads the YAML config once. DSN, TEMPORA_SIGNING_SECRET and
// TEMPORA_ADDR env vars override the file, so containers can run without
// one.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		parsed := &Config{
			Server:   ServerConfig{Addr: "0.0.0.0:8090"},
			Database: DatabaseConfig{MaxConnections: 10},
			Log:      LogConfig{Level: "info"},
		}

		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// env-only configuration
		case err != nil:
			loadErr = fmt.Errorf("read config: %w", err)
			return
		default:
			if err := yaml.Unmarshal(data, parsed); err != nil {
				loadErr = fmt.Errorf("unmarshal yaml: %w", err)
				return
			}
		}

		if dsn := os.Getenv("DSN"); dsn != "" {
			parsed.Database.DSN = dsn
		}
		if secret := os.Getenv("TEMPORA_SIGNING_SECRET"); secret != "" {
			parsed.Auth.SigningSecret = secret
		}
		if addr := os.Getenv("TEMPORA_ADDR"); addr != "" {
			parsed.Server.Addr = addr
		}

		if parsed.Database.DSN == "" {
			loadErr = fmt.Errorf("no database DSN configured")
			return
		}

		cfg = parsed
	})

	return cfg, loadErr
}
