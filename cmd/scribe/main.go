// cmd/scribe/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/bethropolis/scribe/internal/app"
	"github.com/bethropolis/scribe/internal/config"
	"github.com/bethropolis/scribe/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := config.NewFlags(config.AppName, os.Stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 2
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return 0
	}

	cfg, err := config.LoadConfig(flags.ConfigPath(), flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	// The logger must not be touched before Init; config collects its
	// warnings until now.
	logger.SetDebugFilter(*flags.DebugLog)
	if err := logger.Init(cfg.Logger, nil); err != nil {
		fmt.Fprintf(os.Stderr, "%s: logging disabled: %v\n", config.AppName, err)
	}
	defer logger.Close()

	logger.Infof("Starting Scribe %s", version)
	for _, w := range cfg.Warnings() {
		logger.Warnf("config: %s", w)
	}
	logger.Debugf("Storage: %s %s (key %q)", cfg.Storage.Backend, cfg.Storage.Path, cfg.Storage.Key)

	scribe, err := app.NewApp(cfg, app.Options{})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	if err := scribe.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	logger.Infof("Scribe finished.")
	return 0
}
