package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/vhpi/sim"
	"github.com/wippyai/vhpi/vhpi"
)

const defaultLogLevel = "warn"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &rootOptions{}
	root := newRootCommand(opts)
	err := root.ExecuteContext(ctx)
	if opts.logger != nil {
		_ = opts.logger.Sync()
	}
	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	logLevel string
	logger   *zap.Logger
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "vhpirun",
		Short:         "Run and inspect VHDL designs on the reference VHPI simulator",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", defaultLogLevel, "Set log verbosity (debug, info, warn, error)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(opts.logLevel)
		if err != nil {
			return err
		}
		opts.logger = logger
		vhpi.SetLogger(logger.Named("vhpi"))
		sim.SetLogger(logger.Named("sim"))
		return nil
	}

	root.AddCommand(
		newRunCommand(opts),
		newBrowseCommand(opts),
	)
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// load elaborates a design file into a fresh simulator and wraps it.
func load(path string, opts *rootOptions, cfg sim.Config) (*sim.Simulator, *vhpi.Runtime, error) {
	d, err := sim.LoadDesignFile(path)
	if err != nil {
		return nil, nil, err
	}
	cfg.Design = d
	cfg.Logger = opts.logger.Named("sim")
	s, err := sim.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	rt := vhpi.New(s, vhpi.WithLogger(opts.logger.Named("vhpi")))
	return s, rt, nil
}
