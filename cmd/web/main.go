package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/de-tools/market-atlas/pkg/runtime/app"
	"github.com/de-tools/market-atlas/pkg/server"
	"github.com/de-tools/market-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	sourcesPath  string
	settingsPath string
	profile      string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Market Atlas",
		RunE:  runServer,
	}

	defaultPath := ".atlascfg"
	if home, err := os.UserHomeDir(); err == nil {
		defaultPath = filepath.Join(home, ".atlascfg")
	}

	rootCmd.Flags().StringVarP(&sourcesPath, "sources", "s", defaultPath,
		"Path to the data sources file (default is $HOME/.atlascfg)")
	rootCmd.Flags().StringVarP(&settingsPath, "config", "c", "", "Path to a settings file")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "", "Data source profile (default from settings)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}

	logger := config.NewLogger(settings.Log, os.Stdout)
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(sourcesPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	profiles, _ := registry.GetProfiles(ctx)
	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", sourcesPath)
	logger.Info().Strs("profiles", profiles).Msg("data sources found")

	atlas, err := app.Open(ctx, app.Options{
		Sources:  registry,
		Settings: settings,
		Profile:  profile,
	})
	if err != nil {
		return err
	}
	defer atlas.Close()

	atlas.WarmUp(ctx)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(settings.Server.Host, settings.Server.Port),
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Market:  atlas.Market,
			Lookup:  atlas.Lookup,
			Sources: registry,
		},
	})

	return webAPI.Start()
}
