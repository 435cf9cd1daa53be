package config

import (
	"encoding/json"
	"os"

	"github.com/kapish505/CipherVault/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Values are
// copied into the runtime Config only when present in the file, so a partial
// JSON file overrides just the fields it names.
type JsonConfig struct {
	DatabasePath   *string  `json:"database_path"`
	IPFSAPIAddr    *string  `json:"ipfs_api_addr"`
	GatewayURLs    []string `json:"gateway_urls"`
	MirrorBaseURL  *string  `json:"mirror_base_url"`
	RetentionDays  *int     `json:"retention_days"`
	TargetReplicas *int     `json:"target_replicas"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags via flagx.ConfigFilePath();
// when no path is given the function returns without touching cfg. Read or
// unmarshal errors panic, since a config file that was explicitly requested
// but cannot be used is not recoverable.
//
// Intended usage is: defaults -> parseJson -> parseEnv -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.IPFSAPIAddr != nil {
		cfg.IPFSAPIAddr = *jc.IPFSAPIAddr
	}
	if len(jc.GatewayURLs) > 0 {
		cfg.GatewayURLs = jc.GatewayURLs
	}
	if jc.MirrorBaseURL != nil {
		cfg.MirrorBaseURL = *jc.MirrorBaseURL
	}
	if jc.RetentionDays != nil {
		cfg.RetentionDays = *jc.RetentionDays
	}
	if jc.TargetReplicas != nil {
		cfg.TargetReplicas = *jc.TargetReplicas
	}
}
