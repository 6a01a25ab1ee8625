package mcpserver

import (
	"log/slog"

	env "github.com/caarlos0/env/v11"
)

// serverConfig holds the configurable MCP server defaults.
// Loaded once at startup from SWAGFIX_* environment variables.
type serverConfig struct {
	// ChangeLimit is the default number of changes returned by the migrate
	// tool when the caller does not request an explicit limit.
	ChangeLimit int `env:"CHANGE_LIMIT" envDefault:"100"`
	// MaxLimit caps the number of changes a single call may request.
	MaxLimit int `env:"MAX_LIMIT" envDefault:"1000"`
	// FullDefault enables the sibling relocations and version stamp by
	// default for callers that do not set the full flag.
	FullDefault bool `env:"FULL_DEFAULT" envDefault:"false"`
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SWAGFIX_* environment variables.
// Invalid values log a warning and fall back to the hardcoded defaults.
func loadConfig() *serverConfig {
	var c serverConfig
	err := env.ParseWithOptions(&c, env.Options{
		Prefix: "SWAGFIX_",
	})
	if err != nil {
		slog.Warn("invalid SWAGFIX_* environment configuration, using defaults", "error", err)
		return &serverConfig{ChangeLimit: 100, MaxLimit: 1000}
	}
	if c.ChangeLimit <= 0 {
		c.ChangeLimit = 100
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = 1000
	}
	return &c
}
