package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type Config struct {
	ChainID           int64  `json:"chainId"`
	CachePath         string `json:"cachePath"`
	CacheTTLHours     int    `json:"cacheTtlHours"`
	SeverityThreshold string `json:"severityThreshold"`
}

func Default() Config {
	return Config{
		ChainID:           1,
		CachePath:         ".contractscope/analyses.db",
		CacheTTLHours:     24,
		SeverityThreshold: "medium",
	}
}

func Load(startDir string) (Config, string, error) {
	cfg := Default()
	// search upwards for .contractscope.json
	dir := startDir
	for {
		candidate := filepath.Join(dir, ".contractscope.json")
		if _, err := os.Stat(candidate); err == nil {
			b, err := os.ReadFile(candidate)
			if err != nil {
				return cfg, candidate, err
			}
			_ = json.Unmarshal(b, &cfg)
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached root
			break
		}
		dir = parent
	}
	return cfg, "", nil
}
