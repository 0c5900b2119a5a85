package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gympro/internal/flagx"
)

func parseFlags(cfg *Config, args []string) error {
	args = flagx.Filter(args, []string{"-a", "-i", "-f"}, "-o", "-v")

	fs := flag.NewFlagSet("gympro", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "local database file")
	fs.BoolVar(&cfg.ForceOffline, "o", cfg.ForceOffline, "force offline mode")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
	return nil
}
