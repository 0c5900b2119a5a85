package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	// ProbeTimeout bounds a single connectivity probe.
	ProbeTimeout time.Duration
	DatabasePath string
	ForceOffline bool
	Verbose      bool
	// ListWait is how long list commands wait for the merged snapshot
	// before printing what they have.
	ListWait time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.ProbeTimeout = time.Second
	c.DatabasePath = "gympro.db"
	c.ForceOffline = false
	c.Verbose = false
	c.ListWait = 300 * time.Millisecond
}

// Load builds a Config from defaults, the JSON file named in args, then the
// flags in args. args excludes the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on invalid input.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
