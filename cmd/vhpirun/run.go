package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/term"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/sim"
	"github.com/wippyai/vhpi/simtime"
	"github.com/wippyai/vhpi/vhpi"
)

type runOptions struct {
	until   string
	format  string
	signals []string
	color   bool
	summary bool
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <design.yaml>",
		Short: "Simulate a design and trace its signals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if f, ok := out.(*os.File); ok && !cmd.Flags().Changed("color") {
				opts.color = term.IsTerminal(int(f.Fd()))
			}

			var limit *simtime.Time
			if opts.until != "" {
				t, err := simtime.Parse(opts.until)
				if err != nil {
					return err
				}
				limit = &t
			}
			format, err := parseFormat(opts.format)
			if err != nil {
				return err
			}

			s, rt, err := load(args[0], root, sim.Config{Output: out})
			if err != nil {
				return err
			}
			return runDesign(cmd, s, rt, out, format, limit, opts)
		},
	}

	cmd.Flags().StringVar(&opts.until, "until", "", "Stop after this simulation time (e.g. \"100 ns\")")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "native", "Value format: native, bin, oct, hex, dec, str")
	cmd.Flags().StringSliceVarP(&opts.signals, "signal", "s", nil, "Trace only these signals (repeatable)")
	cmd.Flags().BoolVar(&opts.color, "color", false, "Colorize output (default: when stdout is a terminal)")
	cmd.Flags().BoolVar(&opts.summary, "summary", true, "Print a summary when the run ends")
	return cmd
}

func runDesign(cmd *cobra.Command, s *sim.Simulator, rt *vhpi.Runtime, out io.Writer, format abi.Format, limit *simtime.Time, opts *runOptions) (err error) {
	defer func() {
		err = multierr.Append(err, rt.Close())
	}()

	styles := plainStyles()
	if opts.color {
		styles = colorStyles()
	}
	tr := newTracer(rt, out, format, styles, opts.signals)
	defer func() {
		err = multierr.Append(err, tr.Detach())
	}()
	if err := tr.Attach(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if limit != nil {
		err = s.RunUntil(ctx, *limit)
	} else {
		err = s.Run(ctx)
	}
	if err != nil {
		return err
	}

	if opts.summary {
		st := s.Stats()
		fmt.Fprintf(cmd.ErrOrStderr(), "stopped at %s after %d cycles (finished=%t, callbacks fired=%d)\n",
			rt.Time(), rt.Cycles(), s.Finished(), st.Fired)
	}
	return nil
}
