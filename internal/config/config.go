// Package config loads CLI runtime settings from defaults, an optional JSON
// file, environment variables and command-line flags, in that order of
// precedence.
package config

// Config holds runtime settings for the CipherVault CLI.
//
// Fields:
//   - DatabasePath: path to the local SQLite index (":memory:" for ephemeral).
//   - IPFSAPIAddr: host:port of the IPFS node API.
//   - GatewayURLs: public gateway base URLs used for replica health probes.
//   - MirrorBaseURL: optional mirror service endpoint; "" disables mirroring.
//   - RetentionDays: trash retention period before purge eligibility.
//   - TargetReplicas: replica count the health monitor aims for.
type Config struct {
	DatabasePath   string
	IPFSAPIAddr    string
	GatewayURLs    []string
	MirrorBaseURL  string
	RetentionDays  int
	TargetReplicas int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "ciphervault.db"
	c.IPFSAPIAddr = "127.0.0.1:5001"
	c.GatewayURLs = []string{
		"https://ipfs.io",
		"https://dweb.link",
		"https://cloudflare-ipfs.com",
	}
	c.MirrorBaseURL = ""
	c.RetentionDays = 30
	c.TargetReplicas = 3
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
