package cmd

import (
	"github.com/ghaggin/newsgate/internal/api"
	"github.com/ghaggin/newsgate/internal/config"
	"github.com/ghaggin/newsgate/internal/metrics"
	"github.com/ghaggin/newsgate/internal/middleware"
	"github.com/ghaggin/newsgate/internal/repository"
	"github.com/ghaggin/newsgate/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var flagPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front end",
	Long: `Serve the reader and admin screens over HTTP, backed by the news API.

Sessions live in memory unless session.store_path is set.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&flagPort, "port", "p", 0, "listen port (overrides server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if flagPort > 0 {
		cfg.Server.Port = flagPort
	}

	app := fx.New(serverOptions(cfg, logger))
	if err := app.Err(); err != nil {
		return err
	}

	app.Run()
	return nil
}

func serverOptions(cfg *config.Config, log *zap.Logger) fx.Option {
	opts := []fx.Option{
		fx.Supply(cfg, log),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Provide(
			metrics.New,
			middleware.NewSessionManager,
			api.New,
			web.New,
		),
		fx.Invoke(web.RegisterHooks),
	}

	if cfg.Session.StorePath != "" {
		opts = append(opts, fx.Provide(repository.NewJSON))
	}

	return fx.Options(opts...)
}
