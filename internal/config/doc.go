// Package config loads tagview's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tagview/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Fields
//
//	api_bind       = "127.0.0.1:5000"       # tag server host:port or URL
//	discovery_path = "/api/tags/discovery"  # snapshot endpoint
//	poll_interval  = "2s"                   # Go duration, must be positive
//	log_file       = "~/.local/state/tagview/tagview.log"
//	log_level      = "info"                 # debug, info, warn, error
//	metrics_addr   = ""                     # e.g. ":9102"; empty disables /metrics
//
// Paths starting with ~ are expanded against the user's home directory.
// Malformed values are reported with the offending key ("parse poll_interval:")
// rather than silently replaced.
package config
