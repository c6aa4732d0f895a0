package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/bill-forge/pkg/server"
	"github.com/de-tools/bill-forge/pkg/store/sqlite"
	batchstore "github.com/de-tools/bill-forge/pkg/store/sqlite/batch"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var dbPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the batch report server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "bill-forge.db",
		"Path to the batch record database")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("failed to open batch record database: %w", err)
	}
	defer db.Close()

	store, err := batchstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create batch store: %w", err)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			BatchStore: store,
			Logger:     logger,
		},
	})
	return api.Start()
}
