package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sepur/finance/internal/bootstrap"
	"github.com/sepur/finance/internal/infrastructure/config"
	"github.com/sepur/finance/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "finance-export",
		Short: "Generate finance reports and invoice documents",
		Long: `finance-export renders the same documents as the finance API from the
command line: report exports (pdf, excel, csv), single invoice documents
(pdf, csv, html) and the reports overview.

Configuration is read from config.toml and SEPUR_* environment variables.
A .env file in the working directory is loaded first when present.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./config.toml)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before configuration")
	flags.StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(
		newReportCommand(opts),
		newInvoiceCommand(opts),
		newOverviewCommand(opts),
		newTokenCommand(opts),
	)
	return cmd
}

func (o *rootOptions) load() error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	// stdout carries command output
	cfg.Log.Output = "stderr"

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return err
	}
	o.cfg, o.log = cfg, log
	return nil
}

// container wires the pipeline and returns a release func for the caller to defer
func (o *rootOptions) container(ctx context.Context, opts ...bootstrap.Option) (*bootstrap.Container, func(), error) {
	c, err := bootstrap.New(ctx, o.cfg, o.log, opts...)
	if err != nil {
		return nil, nil, err
	}
	return c, func() {
		if err := c.Close(context.Background()); err != nil {
			o.log.Warn("Error releasing resources", zap.Error(err))
		}
	}, nil
}

// outputDir returns dir, creating it when missing
func outputDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	return dir, os.MkdirAll(dir, 0o755)
}
