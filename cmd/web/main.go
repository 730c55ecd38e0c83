package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hoko-ai/analytics/pkg/server"
	"github.com/hoko-ai/analytics/pkg/services/analysis"
	"github.com/hoko-ai/analytics/pkg/services/registry"
	"github.com/hoko-ai/analytics/pkg/store/warehouse"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	platformCfgPath  string
	warehouseCfgPath string
	timezone         string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the analytics web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&platformCfgPath, "platforms", "p", "",
		"Path to the platform schema config (built-in defaults when omitted)")
	rootCmd.Flags().StringVarP(&warehouseCfgPath, "warehouse", "w", "warehouse.yaml",
		"Path to the warehouse connection config")
	rootCmd.Flags().StringVarP(&timezone, "timezone", "t", "America/Sao_Paulo",
		"Local timezone used to align observation dates")

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

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}

	reg, err := registry.Load(platformCfgPath)
	if err != nil {
		return fmt.Errorf("failed to build platform registry: %w", err)
	}
	logger.Info().Strs("platforms", reg.Platforms()).Msg("platform registry loaded")

	cfg, err := warehouse.LoadConfig(warehouseCfgPath)
	if err != nil {
		return fmt.Errorf("failed to load warehouse config: %w", err)
	}
	db, err := warehouse.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open warehouse connection: %w", err)
	}
	defer db.Close()

	store, err := warehouse.NewStore(db, reg, cfg.Driver)
	if err != nil {
		return fmt.Errorf("failed to create warehouse store: %w", err)
	}

	analyzer := analysis.NewAnalyzer(reg, store, analysis.NewMemoryCache(), loc)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if host == "" || port == "" {
		logger.Error().Msg("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Analyzer: analyzer,
			Registry: reg,
		},
	})

	return api.Start()
}
