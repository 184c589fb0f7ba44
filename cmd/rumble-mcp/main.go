package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/rumble/internal/config"
	"github.com/peterkuimelis/rumble/internal/game"
	rumblemcp "github.com/peterkuimelis/rumble/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	decks := flag.String("decks", cfg.DecksFile, "path to decks YAML file (built-in decks if empty)")
	catalog := flag.String("catalog", cfg.CatalogFile, "path to catalog YAML file (built-in catalog if empty)")
	seed := flag.Int64("seed", cfg.Seed, "random seed for new matches (0 = clock)")
	flag.Parse()

	// stdout carries the MCP protocol; diagnostics go to stderr.
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if err := config.SetupLogging(logger, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cat := game.DefaultCatalog()
	if *catalog != "" {
		if cat, err = game.LoadCatalogFile(*catalog); err != nil {
			logger.WithError(err).Fatal("load catalog")
		}
		if err := game.ValidateCatalog(cat, game.DefaultRegistry()); err != nil {
			logger.WithError(err).Fatal("invalid catalog")
		}
	}

	host := rumblemcp.NewHost(rumblemcp.HostOptions{
		Catalog:   cat,
		DecksFile: *decks,
		Seed:      *seed,
		Logger:    logger,
	})

	s := server.NewMCPServer("rumble", "1.0.0", server.WithToolCapabilities(false))
	host.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
