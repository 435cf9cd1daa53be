package main

import (
	"context"
	"log"
	"os"

	"github.com/kapish505/CipherVault/internal/buildinfo"
	"github.com/kapish505/CipherVault/internal/cli"
	"github.com/kapish505/CipherVault/internal/config"
	"github.com/kapish505/CipherVault/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
