package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appconfig "github.com/phrazzld/scry-sub004/internal/config"
	"github.com/phrazzld/scry-sub004/internal/features/generation/application"
	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
	"github.com/phrazzld/scry-sub004/internal/features/generation/infrastructure"
	"github.com/phrazzld/scry-sub004/internal/platform/logger"
)

var (
	configsPath string
	configID    string
	input       string
)

var rootCmd = &cobra.Command{
	Use:   "quizlab",
	Short: "Prompt-chain experimentation harness",
	Long: `quizlab runs arbitrary N-phase, arbitrary-provider prompt-chain
configurations against a topic and reports per-run metrics. It is a local
development tool and is intentionally not exposed over HTTP.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute configs against an input topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		log, err := logger.New(os.Getenv("APP_ENV"))
		if err != nil {
			return err
		}
		defer log.Sync()

		configs, err := loadConfigs()
		if err != nil {
			return err
		}

		clients := func(ctx context.Context, provider domain.ProviderConfig) (infrastructure.AIClient, error) {
			return infrastructure.NewAIClient(ctx, provider, log)
		}
		service := application.NewGenerationService(clients, application.NewLogRecorder(log), log)

		ctx := cmd.Context()
		for _, cfg := range configs {
			result, err := service.ExecuteConfig(ctx, cfg, input)
			if err != nil {
				return fmt.Errorf("config %q: %w", cfg.Name, err)
			}
			printResult(result)
		}
		return nil
	},
}

func loadConfigs() ([]domain.Config, error) {
	var configs []domain.Config
	if configsPath != "" {
		loaded, err := appconfig.NewFileStore(configsPath).Load()
		if err != nil {
			return nil, err
		}
		configs = loaded
	} else {
		configs = []domain.Config{application.ProductionConfig()}
	}

	if configID == "" {
		return configs, nil
	}
	for _, cfg := range configs {
		if cfg.ID == configID {
			return []domain.Config{cfg}, nil
		}
	}
	return nil, fmt.Errorf("no config with id %q in %s", configID, configsPath)
}

func printResult(r domain.ExecutionResult) {
	status := "INVALID"
	if r.Successful() {
		status = "OK"
	}
	fmt.Printf("%-8s %s (%s)\n", status, r.ConfigName, r.ConfigID)
	fmt.Printf("         questions=%d latency=%dms valid=%t\n", len(r.Questions), r.LatencyMs, r.Valid)
	if len(r.Errors) > 0 {
		fmt.Printf("         errors: %s\n", strings.Join(r.Errors, "; "))
	}
}

func init() {
	runCmd.Flags().StringVar(&configsPath, "configs", "", "path to a JSON or YAML config file (defaults to the production baseline)")
	runCmd.Flags().StringVar(&configID, "id", "", "run only the config with this id")
	runCmd.Flags().StringVar(&input, "input", "", "topic to generate questions for")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
