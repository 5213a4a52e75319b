package main

import (
	"fmt"
	"os"

	"github.com/bloops-games/rps/internal/buildinfo"
	"github.com/bloops-games/rps/internal/console"
	"github.com/bloops-games/rps/internal/logging"
	"github.com/bloops-games/rps/internal/rps"
	"github.com/bloops-games/rps/internal/shutdown"
	"github.com/kelseyhightower/envconfig"
)

var version = "dev"

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(os.Stdout, buildinfo.GreetingCLI, buildinfo.ProjectName, version, buildinfo.GithubURL)

	ctx, done := shutdown.New()
	defer done()

	config := console.Config{}
	if err := envconfig.Process("", &config); err != nil {
		logging.DefaultLogger().Fatalf("processing the config: %v", err)
	}

	logger := logging.NewLogger(config.Debug).Named("rps-cli")
	ctx = logging.WithLogger(ctx, logger)

	engine := rps.NewEngine(rps.Config{Rounds: config.Rounds})
	if err := console.New(engine, os.Stdout, config.TickInterval).Run(ctx, os.Stdin); err != nil {
		logger.Fatalf("console run: %v", err)
	}
}
