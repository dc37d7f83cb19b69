// Package config loads the application configuration from CLI flags and the
// OS-appropriate config file, flags taking precedence.
package config

// Config represents the complete application configuration.
type Config struct {
	// ConfigFile is the path the configuration was loaded from.
	ConfigFile string `yaml:"-" mapstructure:"-"`

	// Output format: text, json, plain
	Output string `yaml:"output" mapstructure:"output"`

	// Enable debug logging
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// Number of concurrent analyses for bulk processing
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`

	// SOCKS5 proxy URL for DNS traffic
	Proxy string `yaml:"proxy" mapstructure:"proxy"`

	// Upstream nameserver, host or host:port. Empty uses /etc/resolv.conf.
	Nameserver string `yaml:"nameserver" mapstructure:"nameserver"`

	// DNS queries per second across all lookups. Zero disables rate limiting.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`

	// Subdomain wordlist path. Empty uses the embedded default list.
	Wordlist string `yaml:"wordlist" mapstructure:"wordlist"`

	// Provider pattern file path. Empty uses the user override or the
	// embedded defaults; "none" disables network fingerprinting.
	Patterns string `yaml:"patterns" mapstructure:"patterns"`

	// MaxMind ASN database path. Empty falls back to DNS-based ASN lookups.
	MMDB string `yaml:"mmdb" mapstructure:"mmdb"`

	// Subdomain enumeration concurrency cap
	MaxConcurrency int `yaml:"max_concurrency" mapstructure:"max_concurrency"`

	// Query certificate transparency logs for extra subdomain candidates
	Passive bool `yaml:"passive" mapstructure:"passive"`

	// HTTP API listen address
	Addr string `yaml:"addr" mapstructure:"addr"`

	// Report database path. Empty uses the OS-appropriate data directory.
	Database string `yaml:"database" mapstructure:"database"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Output:         "text",
		Concurrency:    10,
		MaxConcurrency: 20,
		Addr:           "127.0.0.1:8200",
	}
}
