package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"likestats/internal/server"
	"likestats/pkg/auth"
	"likestats/pkg/config"
	"likestats/pkg/likes"
	"likestats/pkg/logger"
)

const version = "1.0.0"

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file")
		listenAddr  = flag.String("listen-addr", "", "address to listen on")
		year        = flag.Int("year", 0, "target calendar year")
		topAuthors  = flag.Int("top-authors", 0, "number of top authors to report")
		logLevel    = flag.String("log-level", "", "log level (debug, info, warn, error)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("likestats %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath, map[string]interface{}{
		"listen-addr": *listenAddr,
		"year":        *year,
		"top-authors": *topAuthors,
		"log-level":   *logLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	if cfg.Twitter.BearerToken == "" {
		token, err := auth.Resolve(auth.NewEnvSource(), auth.NewKeyringSource())
		if err != nil {
			log.Fatal("no bearer token configured, set LIKESTATS_BEARER_TOKEN or store one in the keyring")
		}
		cfg.Twitter.BearerToken = token
	}
	log.InfoWithFields("credentials resolved", map[string]interface{}{
		"token": auth.MaskToken(cfg.Twitter.BearerToken),
	})

	engine := likes.New(cfg)
	srv := server.New(engine, cfg.Server, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.InfoWithFields("starting likestats", map[string]interface{}{
		"version":     version,
		"target_year": cfg.Query.TargetYear,
		"listen_addr": cfg.Server.ListenAddr,
	})

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server exited")
	}
	log.Info("shutdown complete")
}
