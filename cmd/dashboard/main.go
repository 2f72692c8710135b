// Package main is the entry point of the executive risk dashboard. It serves
// the dashboard API. With -export it writes the display CSV and exits, and
// with -seed it writes a synthetic source file and exits.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/auth"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/config"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/server"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
	"github.com/yasinhessnawi1/exec-risk-dashboard/scripts"
)

// Version information is set during build time through linker flags.
var (
	// version represents the release version of the application.
	version = "dev"

	// commit is the git commit hash from which the application was built.
	commit = "none"

	// buildDate is the timestamp when the application was built.
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
func init() {
	// Not finding a .env file is a non-fatal condition, as configuration
	// might be provided by other means.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found or couldn't be loaded")
	}
}

func main() {
	var (
		configPath     string
		sourcePath     string
		exportPath     string
		seedRows       int
		showVersion    bool
		hashPassphrase bool
	)

	flag.StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	flag.StringVar(&sourcePath, "source", "", "CSV source to load (overrides source.path)")
	flag.StringVar(&exportPath, "export", "", "Write the display CSV to this file and exit")
	flag.IntVar(&seedRows, "seed", 0, "Write this many synthetic rows to the source file and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&hashPassphrase, "hash-passphrase", false, "Read an operator passphrase from stdin and print its hash and salt")
	flag.Parse()

	if showVersion {
		fmt.Printf("Executive Risk Dashboard\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		os.Exit(0)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if sourcePath != "" {
		cfg.Source.Path = filepath.Clean(sourcePath)
	}
	if version != "dev" {
		cfg.App.Version = version
	}

	if hashPassphrase {
		if err := printPassphraseHash(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to hash passphrase: %v\n", err)
			os.Exit(1)
		}
		return
	}

	utils.InitLogger(cfg)
	utils.InitValidator()

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	if seedRows > 0 {
		seeder := scripts.NewSeeder(srv.Enricher, time.Now().UnixNano())
		if err := seeder.SeedFile(cfg.Source.Path, seedRows); err != nil {
			log.Fatal().Err(err).Msg("Seeding failed")
		}
		return
	}

	if exportPath != "" {
		if err := runExport(srv, exportPath); err != nil {
			log.Fatal().Err(err).Str("file", exportPath).Msg("Export failed")
		}
		return
	}

	log.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Str("source", cfg.Source.Path).
		Msg("Starting executive risk dashboard")

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}

// runExport writes the unfiltered, masked display table to path. A failed
// export leaves no file behind.
func runExport(srv *server.Server, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	rows, err := srv.Dashboard.Export(f, models.TableFilter{})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if removeErr := os.Remove(path); removeErr != nil {
			log.Warn().Err(removeErr).Str("file", path).Msg("Failed to remove partial export")
		}
		return err
	}

	log.Info().Int("rows", rows).Str("file", path).Msg("Table exported")
	return nil
}

// printPassphraseHash reads one line from stdin and prints the config values
// that enable raw display with that passphrase.
func printPassphraseHash(cfg *config.AppConfig) error {
	fmt.Fprint(os.Stderr, "Operator passphrase: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}

	passphrase := strings.TrimRight(line, "\r\n")
	if passphrase == "" {
		return fmt.Errorf("passphrase must not be empty")
	}

	hash, salt, err := auth.HashPassword(passphrase, auth.ConfigFromAppConfig(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("OPERATOR_PASSPHRASE_HASH=%s\nOPERATOR_PASSPHRASE_SALT=%s\n", hash, salt)
	return nil
}
