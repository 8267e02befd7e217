package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mandalnilabja/msgrelay/internal/app"
	"github.com/mandalnilabja/msgrelay/internal/config"
	"github.com/mandalnilabja/msgrelay/internal/provider/anthropic"
	"github.com/mandalnilabja/msgrelay/internal/transport/http/handler"
	"github.com/mandalnilabja/msgrelay/internal/transport/http/handler/relay"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default ~/.msgrelay/config.toml)")
	envPath := flag.String("env", ".env", "path to an optional .env file")
	initConfig := flag.Bool("init-config", false, "write a commented default config file and exit")
	flag.Parse()

	if *initConfig {
		path := *configPath
		if path == "" {
			path = config.ConfigPath()
		}
		if err := config.EnsureConfigFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "config written to %s\n", path)
		return
	}

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)

	prov := anthropic.New(anthropic.Options{
		URL:     cfg.UpstreamURL,
		Version: cfg.AnthropicVersion,
		Timeout: cfg.UpstreamTimeout,
	})

	repo := handler.NewRepo(prov, logger, relay.Options{
		DefaultMaxTokens: cfg.DefaultMaxTokens,
		MaxBodyBytes:     cfg.MaxBodyBytes,
	})

	router := app.NewRouter(repo, &app.RouterOptions{
		Logger:     logger,
		CORSMaxAge: cfg.CORSMaxAge,
	})

	printStartupBanner(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := app.NewServer(cfg, router, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
