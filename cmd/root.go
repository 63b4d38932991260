// Package cmd holds the newsgate commands: the web front end and the
// terminal client that share one signed-in session per device.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/ghaggin/newsgate/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig  string
	flagVerbose bool
	flagNoColor bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "newsgate",
	Short: "News reader and admin front end",
	Long: `newsgate fronts the news backend for readers and administrators.

Example usage:
  newsgate serve                         # Start the web front end
  newsgate login --email ana@news.com    # Sign in on this device
  newsgate articles --categoria Esportes # List articles
  newsgate favorites add 42              # Favorite an article`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default is ./config/config.yaml or $NEWSGATE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		newPrinter(rootCmd).failure(describe(err))
		stop()
		os.Exit(1)
	}
}

func initConfig() error {
	var err error

	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
	} else {
		cfg, err = config.New()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor {
		color.NoColor = true
	}

	logger, err = newLogger(cfg.Log, flagVerbose)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}

	logger.Debug("configuration loaded",
		zap.String("backend", cfg.Backend.BaseURL),
		zap.Bool("verify_profile", cfg.Session.VerifyProfile),
	)
	return nil
}
