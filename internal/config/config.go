// ===== internal/config/config.go =====
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"mikrotik-hosts/internal/hosts"
	"mikrotik-hosts/internal/mikrotik"
)

// DefaultConfigFile is read when no --config flag is given
const DefaultConfigFile = "/etc/mikrotik-hosts.ini"

// Config holds all application configuration
type Config struct {
	// Router connection
	User    string
	Host    string
	Port    int
	SSH     string
	Timeout time.Duration

	// Hosts file
	HostsFile  string
	Suffix     string
	NameSource string

	// Feature flags
	Flush    bool
	DryRun   bool
	Watch    bool
	Interval time.Duration
}

// Flags carries command-line overrides; zero values mean "not given"
type Flags struct {
	User       string
	Host       string
	Port       int
	SSH        string
	Timeout    time.Duration
	HostsFile  string
	Suffix     string
	NameSource string
	Flush      bool
	DryRun     bool
	Watch      bool
	Interval   time.Duration
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		User:       "admin",
		Host:       "192.168.88.1",
		Port:       22,
		SSH:        "ssh",
		Timeout:    30 * time.Second,
		HostsFile:  "/etc/hosts",
		Suffix:     hosts.DefaultSuffix,
		NameSource: string(mikrotik.NameSourceBoard),
		Flush:      false,
		DryRun:     false,
		Watch:      false,
		Interval:   5 * time.Minute,
	}
}

// LoadFromFile loads configuration from INI file
func (c *Config) LoadFromFile(filename string) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, filename)
	if err != nil {
		return err
	}

	section := cfg.Section("")
	c.User = section.Key("user").MustString(c.User)
	c.Host = section.Key("host").MustString(c.Host)
	c.Port = section.Key("port").MustInt(c.Port)
	c.SSH = section.Key("ssh").MustString(c.SSH)
	c.Timeout = section.Key("timeout").MustDuration(c.Timeout)
	c.HostsFile = section.Key("hostsfile").MustString(c.HostsFile)
	c.Suffix = section.Key("suffix").MustString(c.Suffix)
	c.NameSource = section.Key("namesource").MustString(c.NameSource)
	c.Flush = section.Key("flush").MustBool(c.Flush)
	c.DryRun = section.Key("dryrun").MustBool(c.DryRun)
	c.Watch = section.Key("watch").MustBool(c.Watch)
	c.Interval = section.Key("interval").MustDuration(c.Interval)

	return nil
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("MIKROTIK_USER"); v != "" {
		c.User = v
	}
	if v := os.Getenv("MIKROTIK_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("MIKROTIK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("SSH"); v != "" {
		c.SSH = v
	}
	if v := os.Getenv("TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("HOSTSFILE"); v != "" {
		c.HostsFile = v
	}
	if v := os.Getenv("SUFFIX"); v != "" {
		c.Suffix = v
	}
	if v := os.Getenv("NAME_SOURCE"); v != "" {
		c.NameSource = v
	}
	if v := os.Getenv("FLUSH"); v != "" {
		if b, err := parseBool(v); err == nil {
			c.Flush = b
		}
	}
	if v := os.Getenv("DRYRUN"); v != "" {
		if b, err := parseBool(v); err == nil {
			c.DryRun = b
		}
	}
	if v := os.Getenv("WATCH"); v != "" {
		if b, err := parseBool(v); err == nil {
			c.Watch = b
		}
	}
	if v := os.Getenv("INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Interval = d
		}
	}
}

// parseBool accepts the same spellings as the ini file: yes/no and on/off besides strconv forms
func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(v))
}

// LoadFromFlags applies command-line overrides
func (c *Config) LoadFromFlags(f Flags) {
	if f.User != "" {
		c.User = f.User
	}
	if f.Host != "" {
		c.Host = f.Host
	}
	if f.Port != 0 {
		c.Port = f.Port
	}
	if f.SSH != "" {
		c.SSH = f.SSH
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if f.HostsFile != "" {
		c.HostsFile = f.HostsFile
	}
	if f.Suffix != "" {
		c.Suffix = f.Suffix
	}
	if f.NameSource != "" {
		c.NameSource = f.NameSource
	}
	// a boolean flag can only switch a feature on
	c.Flush = c.Flush || f.Flush
	c.DryRun = c.DryRun || f.DryRun
	c.Watch = c.Watch || f.Watch
	if f.Interval != 0 {
		c.Interval = f.Interval
	}
}

// Validate checks values that would otherwise fail deep inside a run
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.User == "" || c.Host == "" {
		return fmt.Errorf("router user and host are required")
	}
	if c.HostsFile == "" {
		return fmt.Errorf("hosts file path is required")
	}
	if _, err := mikrotik.ParseNameSource(c.NameSource); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	if c.Watch && c.Interval <= 0 {
		return fmt.Errorf("invalid interval %s", c.Interval)
	}
	return nil
}

// New creates a new configuration instance
func New(configFile string, flags Flags, log logrus.FieldLogger) (*Config, error) {
	cfg := DefaultConfig()

	// Load from file first
	if err := cfg.LoadFromFile(configFile); err != nil {
		log.WithError(err).WithField("file", configFile).Info("Skipping config file")
	}

	// Override with environment variables, then flags
	cfg.LoadFromEnv()
	cfg.LoadFromFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
