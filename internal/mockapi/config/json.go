package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/beautybook/internal/flagx"
	"github.com/dmitrijs2005/beautybook/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Pointer fields distinguish
// "absent" from a zero value.
type JsonConfig struct {
	ListenAddr      string          `json:"listen_addr"`
	Seed            *bool           `json:"seed"`
	BcryptCost      *int            `json:"bcrypt_cost"`
	LogLevel        string          `json:"log_level"`
	LogFormat       string          `json:"log_format"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays Config with the file given via -c or -config.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ListenAddr != "" {
		cfg.ListenAddr = jc.ListenAddr
	}
	if jc.Seed != nil {
		cfg.Seed = *jc.Seed
	}
	if jc.BcryptCost != nil {
		cfg.BcryptCost = *jc.BcryptCost
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
}
