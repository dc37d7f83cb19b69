package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// keys lists every viper config key. Flag names are the same with
// underscores replaced by hyphens.
var keys = []string{
	"output",
	"verbose",
	"concurrency",
	"proxy",
	"nameserver",
	"rate_limit",
	"wordlist",
	"patterns",
	"mmdb",
	"max_concurrency",
	"passive",
	"addr",
	"database",
}

// validOutputs are the accepted output formats.
var validOutputs = map[string]bool{"text": true, "json": true, "plain": true}

// RegisterFlags registers all configuration flags on the given flag set.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file path")
	flags.StringP("output", "o", "text", "output format: text, json, plain")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.Int("concurrency", 10, "number of concurrent analyses for bulk input")
	flags.String("proxy", "", "SOCKS5 proxy URL for DNS traffic")
	flags.String("nameserver", "", "upstream nameserver (host or host:port)")
	flags.Float64("rate-limit", 0, "DNS queries per second, 0 disables")
	flags.String("wordlist", "", "subdomain wordlist path")
	flags.String("patterns", "", "provider pattern file path, \"none\" disables")
	flags.String("mmdb", "", "MaxMind ASN database path")
	flags.Int("max-concurrency", 20, "subdomain enumeration concurrency cap")
	flags.Bool("passive", false, "include certificate transparency subdomain candidates")
	flags.String("addr", "127.0.0.1:8200", "HTTP API listen address")
	flags.String("database", "", "report database path")
}

// DefaultConfigPath returns the OS-appropriate default config file path,
// creating the app config directory if needed.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	appConfigDir := filepath.Join(configDir, "domainanalyser")
	if err := os.MkdirAll(appConfigDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(appConfigDir, "config.yaml"), nil
}

// Load builds the configuration from the config file and the parsed flag
// set. Explicitly set flags override file values; file values override
// defaults. A missing config file is created with the defaults.
func Load(flags *pflag.FlagSet) (*Config, error) {
	configFile, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if configFile == "" {
		configFile, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	for _, key := range keys {
		flagName := strings.ReplaceAll(key, "_", "-")
		if err := v.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %q: %w", flagName, err)
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := writeDefaultConfig(configFile); err != nil {
			return nil, err
		}
	}

	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.ConfigFile = configFile

	if !validOutputs[cfg.Output] {
		return nil, fmt.Errorf("invalid output format %q: must be text, json or plain", cfg.Output)
	}
	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("invalid concurrency %d: must be at least 1", cfg.Concurrency)
	}

	return &cfg, nil
}

// writeDefaultConfig creates configFile holding the default configuration.
func writeDefaultConfig(configFile string) error {
	if err := os.MkdirAll(filepath.Dir(configFile), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(NewDefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}
	if err := os.WriteFile(configFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}
