package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"modalstack/internal/config"
	"modalstack/internal/logging"
	"modalstack/internal/modal"
	"modalstack/internal/trace"
	"modalstack/internal/ui"
)

// options holds the parsed CLI flags; they override the config file.
type options struct {
	configPath string
	deferred   bool
	verbose    bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.configPath, "config", "", "path to config.yaml (default $MODALSTACK_CONFIG or the user config dir)")
	flag.BoolVar(&opts.deferred, "deferred", false, "queue payload writes until the next UI turn")
	flag.BoolVar(&opts.verbose, "verbose", false, "log every registry mutation at debug level")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: modalstack [flags]\n\n")
		fmt.Fprintf(os.Stderr, "modalstack opens, stacks and closes dialogs tracked by a modal registry,\n")
		fmt.Fprintf(os.Stderr, "and shows the payload attached to each one.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.deferred {
		cfg.CommitMode = modal.CommitDeferred.String()
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Info().
		Str("config", cfg.Path).
		Str("commit_mode", cfg.CommitMode).
		Int("base_layer", cfg.BaseLayer).
		Int("dialogs", len(cfg.Dialogs)).
		Msg("starting")

	ctx := context.Background()
	exporter, err := trace.NewOTLPExporter(ctx, cfg.Trace)
	if err != nil {
		return fmt.Errorf("trace exporter: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := exporter.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("trace exporter shutdown")
		}
	}()

	reg := modal.NewRegistry(
		modal.WithCommitMode(cfg.Mode()),
		modal.WithObserver(&logging.Observer{Logger: logger}),
		modal.WithObserver(exporter.Observer()),
	)

	model := ui.NewAppModel(reg, cfg, logger).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info().Int("registered", reg.Len()).Int("payloads", len(reg.AllData())).Msg("exiting")
	return nil
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "modalstack: %v\n", err)
		os.Exit(1)
	}
}
