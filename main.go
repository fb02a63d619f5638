package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"premium-estimator/internal/config"
	"premium-estimator/internal/engine"
	"premium-estimator/internal/handler"
	"premium-estimator/internal/logging"
	"premium-estimator/internal/notifier"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o config.Overrides

	root := &cobra.Command{
		Use:   "premium-estimator",
		Short: "Serve the household insurance and pension premium estimator",
		Long: `premium-estimator serves a page that estimates a household's annual
national health insurance and pension payments, compares them with the flat
alternative plan and issues an inquiry code for follow-up consultation.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o)
		},
	}
	root.Flags().StringVarP(&o.RatesFile, "config", "c", "", "YAML rate schedule file (overrides RATES_FILE)")
	root.Flags().IntVar(&o.Port, "port", 0, "listen port (overrides PORT)")
	root.Flags().StringVar(&o.LogLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "premium-estimator version %s\n", version)
		},
	})
	return root
}

func run(o config.Overrides) error {
	cfg, err := config.Load(o)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	n := notifier.New(cfg.Notify, logger)
	if cfg.Notify.URL == "" {
		logger.Warn("NOTIFY_URL is not set, consultation notifications are disabled")
	}

	h, err := handler.New(engine.New(*cfg, n, logger), logger)
	if err != nil {
		return fmt.Errorf("init handler: %w", err)
	}

	srv := &fasthttp.Server{
		Handler:      h.Serve,
		Name:         "premium-estimator",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("premium estimator starting", zap.String("addr", cfg.Server.Address()))
		errCh <- srv.ListenAndServe(cfg.Server.Address())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	if err := srv.Shutdown(); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	n.Wait()
	return nil
}
