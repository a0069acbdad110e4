package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/config"
	"github.com/nakshatra-tomar/civic-contact-extract/internal/export"
	"github.com/nakshatra-tomar/civic-contact-extract/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "contactextract [input]",
		Short: "Extract civic association contacts from a directory listing",
		Long: `Reads a flattened registered-associations directory (text or PDF) and
writes one row per officer and one row per organization to the configured
outputs (CSV by default).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				logrus.WithError(err).Error("Failed to load config")
				return err
			}
			if len(args) == 1 {
				cfg.Input.Path = args[0]
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			logger := setupLogging(cfg)
			logger.SetOutput(cmd.ErrOrStderr())
			return run(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: config.yaml in ., ./configs or /etc/contactextract)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Service.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Service.Timeout)
		defer cancel()
	}

	logger.WithFields(logrus.Fields{
		"service": cfg.Service.Name,
		"version": cfg.Service.Version,
		"outputs": cfg.Output.Formats,
	}).Info("Starting contact extraction")

	sinks, err := pipeline.BuildSinks(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to open outputs")
		return err
	}
	defer func() {
		if err := export.CloseAll(sinks); err != nil {
			logger.WithError(err).Warn("Failed to close outputs")
		}
	}()

	res, err := pipeline.New(sinks, cfg.Input.FileType, logger).Run(ctx, cfg.Input.Path)
	if err != nil {
		logger.WithError(err).Error("Contact extraction failed")
		return err
	}
	logger.WithFields(logrus.Fields{
		"run_id":        res.RunID,
		"people":        len(res.People),
		"organizations": len(res.Organizations),
	}).Info("Contact extraction completed")
	return nil
}

// setupLogging configures Logrus according to config.
func setupLogging(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
		logger.WithError(err).Warn("Invalid log level, using info")
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}
	return logger
}

