// Package config loads the gympro client settings.
//
// Values are applied in this order, later sources winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional JSON file given with -c or -config.
//  3. Command-line flags.
//
// Flags:
//
//	-a string   host:port of the gRPC backend
//	-i int      connectivity probe interval, seconds
//	-f string   path of the local SQLite database (":memory:" for none)
//	-o          start in forced offline mode
//	-v          debug logging
//
// JSON file (durations are "3s"-style strings or integer nanoseconds):
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "probe_timeout": "1s",
//	  "database_path": "gympro.db",
//	  "force_offline": false,
//	  "verbose": false,
//	  "list_wait": "300ms"
//	}
package config
