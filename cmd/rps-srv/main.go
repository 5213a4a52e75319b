package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/bloops-games/rps/internal/buildinfo"
	"github.com/bloops-games/rps/internal/logging"
	"github.com/bloops-games/rps/internal/rpsbot"
	"github.com/bloops-games/rps/internal/server"
	"github.com/bloops-games/rps/internal/shutdown"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/kelseyhightower/envconfig"
)

var version = "dev"

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(os.Stdout, buildinfo.GreetingCLI, buildinfo.ProjectName, version, buildinfo.GithubURL)

	ctx, done := shutdown.New()
	defer done()

	config := rpsbot.Config{}
	if err := envconfig.Process("", &config); err != nil {
		logging.DefaultLogger().Fatalf("processing the config: %v", err)
	}

	logger := logging.NewLogger(config.Debug).Named("rps-srv")
	ctx = logging.WithLogger(ctx, logger)

	if err := realMain(ctx, config, done); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context, config rpsbot.Config, done func()) error {
	logger := logging.FromContext(ctx).Named("main.realMain")
	if config.BotToken == "" {
		return fmt.Errorf(
			"bot token not found, please visit %s to register your bot and get a token",
			buildinfo.BotFatherURL,
		)
	}

	tg, err := tgbotapi.NewBotAPI(config.BotToken)
	if err != nil {
		return fmt.Errorf("bot api: %w", err)
	}

	tg.Debug = config.Debug
	logger.Infof("authorization in telegram was successful: %s", tg.Self.UserName)

	srv, err := server.New(config.Port)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/health", server.HandleHealth(ctx))

	go func() {
		if err := srv.ServeHTTP(ctx, &http.Server{Handler: mux}); err != nil {
			logger.Errorf("srv.ServeHTTP: %v", err)
			done()
		}
	}()

	manager, err := rpsbot.NewManager(tg, &config)
	if err != nil {
		return fmt.Errorf("new manager: %w", err)
	}

	if err := manager.Run(ctx); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	return nil
}
