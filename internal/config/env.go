package config

import (
	"os"
	"strconv"
	"strings"
)

// parseEnv overlays Config with values from CIPHERVAULT_* environment
// variables. Invalid numeric values are ignored rather than treated as
// errors, keeping a stray variable from blocking startup.
func parseEnv(cfg *Config) {
	if val := os.Getenv("CIPHERVAULT_DB"); val != "" {
		cfg.DatabasePath = val
	}
	if val := os.Getenv("CIPHERVAULT_IPFS_API"); val != "" {
		cfg.IPFSAPIAddr = val
	}
	if val := os.Getenv("CIPHERVAULT_GATEWAYS"); val != "" {
		urls := []string{}
		for _, u := range strings.Split(val, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		if len(urls) > 0 {
			cfg.GatewayURLs = urls
		}
	}
	if val := os.Getenv("CIPHERVAULT_MIRROR_URL"); val != "" {
		cfg.MirrorBaseURL = val
	}
	if val := os.Getenv("CIPHERVAULT_RETENTION_DAYS"); val != "" {
		if days, err := strconv.Atoi(val); err == nil {
			cfg.RetentionDays = days
		}
	}
	if val := os.Getenv("CIPHERVAULT_TARGET_REPLICAS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.TargetReplicas = n
		}
	}
}
