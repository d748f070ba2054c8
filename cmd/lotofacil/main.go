package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fystack/lotofacil-generator/pkg/common/config"
	"github.com/fystack/lotofacil-generator/pkg/common/logger"
)

const (
	defaultConfigPath = "configs/config.yaml"
	exampleConfigPath = "configs/config.example.yaml"
)

type rootOptions struct {
	configPath string
	debug      bool

	cfg *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error("Command failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "lotofacil",
		Short:         "Lotofácil game generator driven by historical column statistics.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("config %s not found: copy %s or pass --config: %w", opts.configPath, exampleConfigPath, err)
			}
			if err != nil {
				return err
			}
			opts.cfg = cfg

			level := logger.ParseLevel(cfg.Log.Level)
			if opts.debug {
				level = logger.ParseLevel("debug")
			}
			logger.Init(&logger.Options{
				Level:      level,
				Writer:     cmd.ErrOrStderr(),
				TimeFormat: time.RFC3339,
			})
			logger.Debug("Config loaded", "path", opts.configPath, "env", cfg.Environment)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "Path to config file.")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logs.")

	cmd.AddCommand(
		newImportCmd(opts),
		newGenerateCmd(opts),
		newProfileCmd(opts),
		newStatsCmd(opts),
		newCheckCmd(opts),
	)
	return cmd
}
