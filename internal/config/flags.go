package config

import (
	"flag"
	"os"
	"strings"

	"github.com/kapish505/CipherVault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local index database
//	-i string   host:port of the IPFS node API
//	-g string   comma-separated gateway base URLs for health probes
//	-m string   mirror service base URL (empty disables mirroring)
//	-r int      trash retention period in days
//	-n int      target replica count
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-i", "-g", "-m", "-r", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to local index database")
	fs.StringVar(&cfg.IPFSAPIAddr, "i", cfg.IPFSAPIAddr, "address and port of the IPFS node API")
	gateways := fs.String("g", "", "comma-separated gateway base URLs")
	fs.StringVar(&cfg.MirrorBaseURL, "m", cfg.MirrorBaseURL, "mirror service base URL")
	fs.IntVar(&cfg.RetentionDays, "r", cfg.RetentionDays, "trash retention period (in days)")
	fs.IntVar(&cfg.TargetReplicas, "n", cfg.TargetReplicas, "target replica count")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *gateways != "" {
		urls := []string{}
		for _, u := range strings.Split(*gateways, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		if len(urls) > 0 {
			cfg.GatewayURLs = urls
		}
	}
}
