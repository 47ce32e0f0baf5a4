// Package remote serves the deck and live-show state to remote-control
// and stage-display clients over HTTP and WebSocket. The editor owns the
// state; this package only reads it and forwards control commands.
package remote

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is the remote server configuration, read from WP_REMOTE_* env
// vars.
type Config struct {
	Enabled bool   `envconfig:"ENABLED" default:"false"`
	Addr    string `envconfig:"ADDR" default:":7070"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("wp_remote", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
