package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gympro/internal/flagx"
	"github.com/dmitrijs2005/gympro/internal/timex"
)

// fileConfig mirrors Config for JSON. Absent keys keep the current value.
type fileConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	ProbeTimeout        *timex.Duration `json:"probe_timeout"`
	DatabasePath        *string         `json:"database_path"`
	ForceOffline        *bool           `json:"force_offline"`
	Verbose             *bool           `json:"verbose"`
	ListWait            *timex.Duration `json:"list_wait"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *fc.ServerEndpointAddr
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.ProbeTimeout != nil {
		cfg.ProbeTimeout = fc.ProbeTimeout.Duration
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.ForceOffline != nil {
		cfg.ForceOffline = *fc.ForceOffline
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.ListWait != nil {
		cfg.ListWait = fc.ListWait.Duration
	}
	return nil
}
