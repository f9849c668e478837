// Keeper: Personal Assistant MCP Server
//
// An MCP server that gives an AI assistant a persistent task database,
// a deduplicating notebook, and a conversation history cache over the
// stdio transport.
//
// Usage:
//
//	keeper serve    # Start MCP server (stdio transport)
//	keeper update   # Update to the latest version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/keeperhq/keeper/internal/config"
	appserver "github.com/keeperhq/keeper/internal/server"
	"github.com/keeperhq/keeper/internal/updater"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("keeper v%s\n", appserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	// Best-effort: a missing .env file is not an error.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.WithFields(logrus.Fields{
		"backend": cfg.Backend,
		"db":      cfg.DBPath,
	}).Info("starting keeper")

	s, cleanup, err := appserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Background version check prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	_ = ctx // stdio server manages its own lifecycle

	return server.ServeStdio(s)
}

// configPath resolves the optional YAML config file. An explicit
// KEEPER_CONFIG wins; otherwise keeper.yaml in the working directory
// is used when present.
func configPath() string {
	if p := os.Getenv("KEEPER_CONFIG"); p != "" {
		return p
	}
	return "keeper.yaml"
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available. This runs in a goroutine during
// "serve" and is best-effort: network failures are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(appserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  📦 Update available: v%s → v%s\n"+
				"     Run: keeper update\n"+
				"     Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "🔍 Checking for updates...\n")

	result := updater.CheckVersion(appserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "✅ Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "📦 New version available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintf(os.Stderr, "⬇️  Downloading...\n")

	if err := updater.SelfUpdate(appserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\n   You can download manually from:\n   %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ Updated to v%s!\n", result.LatestVersion)
	fmt.Fprintf(os.Stderr, "   Restart keeper to use the new version.\n")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Keeper v%s: Personal Assistant MCP Server

Usage:
  keeper serve    Start the MCP server (stdio transport)
  keeper update   Update to the latest version

Configuration:
  Settings come from keeper.yaml (or KEEPER_CONFIG) and KEEPER_* env vars.

  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "keeper": {
        "command": "keeper",
        "args": ["serve"]
      }
    }
  }

Learn more: https://github.com/keeperhq/keeper
`, appserver.Version)
}
