package config

import (
	"strconv"
	"strings"
)

// ApplyKVOverrides applies free-form -c key=value overrides.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "title":
			cfg.Title = val
		case "placeholder":
			cfg.Placeholder = val
		case "store_raw", "store-raw":
			if b, err := strconv.ParseBool(val); err == nil {
				cfg.StoreRaw = b
			}
		case "copyable_output", "copyable-output":
			if b, err := strconv.ParseBool(val); err == nil {
				cfg.CopyableOutput = b
			}
		case "log_path", "log-path":
			cfg.LogPath = val
		case "log_level", "log-level":
			cfg.LogLevel = val
		}
	}
	return cfg
}
