package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hoko-ai/analytics/pkg/adapters"
	"github.com/hoko-ai/analytics/pkg/models/domain"
	"github.com/hoko-ai/analytics/pkg/services/analysis"
	"github.com/hoko-ai/analytics/pkg/services/registry"
	"github.com/hoko-ai/analytics/pkg/store/warehouse"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	clientID         string
	platforms        []string
	startDate        string
	endDate          string
	platformCfgPath  string
	warehouseCfgPath string
	timezone         string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "summarize",
		Short: "Run one analysis and print the summary report JSON",
		RunE:  runSummarize,
	}

	rootCmd.Flags().StringVarP(&clientID, "client", "c", "", "Client identifier")
	rootCmd.Flags().StringSliceVarP(&platforms, "platforms", "p", nil,
		"Platforms to analyze, in priority order (e.g. instagram,facebook)")
	rootCmd.Flags().StringVar(&startDate, "from", "", "Period start (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&endDate, "to", "", "Period end (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&platformCfgPath, "platform-config", "", "Platform schema config path")
	rootCmd.Flags().StringVarP(&warehouseCfgPath, "warehouse", "w", "warehouse.yaml", "Warehouse config path")
	rootCmd.Flags().StringVarP(&timezone, "timezone", "t", "America/Sao_Paulo", "Date alignment timezone")

	_ = rootCmd.MarkFlagRequired("client")
	_ = rootCmd.MarkFlagRequired("platforms")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runSummarize(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}

	reg, err := registry.Load(platformCfgPath)
	if err != nil {
		return fmt.Errorf("failed to build platform registry: %w", err)
	}

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

	req := domain.AnalysisRequest{
		ClientID:  clientID,
		Platforms: platforms,
	}
	if req.From, err = parseDate(startDate); err != nil {
		return err
	}
	if req.To, err = parseDate(endDate); err != nil {
		return err
	}

	analyzer := analysis.NewAnalyzer(reg, store, analysis.NewNoopCache(), loc)
	summary, err := analyzer.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("analysis failed for client %s (%s): %w",
			clientID, strings.Join(platforms, ", "), err)
	}

	out, err := json.MarshalIndent(adapters.Summary(summary), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return &t, nil
}
