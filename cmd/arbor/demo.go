package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/arbor/internal/config"
	"github.com/vango-dev/arbor/internal/demo"
	"github.com/vango-dev/arbor/pkg/arbor"
)

func demoCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a bundled component tree",
	}
	cmd.AddCommand(demoCounterCmd(flags), demoListCmd(flags))
	return cmd
}

func demoCounterCmd(flags *globalFlags) *cobra.Command {
	var (
		clicks int
		mode   string
	)

	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Click a counter and print the surface",
		Long: `Mount a counter, click its button and print the widget surface
after every click.

In poll mode the clicks only queue updates; the surface is printed
before and after the queue is flushed.

Examples:
  arbor demo counter --clicks 3
  arbor demo counter --mode poll`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if mode != "" {
				cfg.Mode = mode
			}
			m, err := newModel(cfg)
			if err != nil {
				return err
			}
			return runCounter(cmd.OutOrStdout(), m, clicks)
		},
	}

	cmd.Flags().IntVarP(&clicks, "clicks", "n", 3, "Number of clicks")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Update mode: instant or poll (default from config)")

	return cmd
}

func runCounter(out io.Writer, m *arbor.Model, clicks int) error {
	surface, err := demo.Mount(m, demo.Counter.New(demo.CounterParams{}))
	if err != nil {
		return err
	}
	fmt.Fprint(out, surface)

	button := surface.Root().FindButton("+")
	for i := 0; i < clicks; i++ {
		button.Click()
		if m.Mode() == arbor.Instant {
			fmt.Fprintf(out, "click %d\n", i+1)
			fmt.Fprint(out, surface)
		}
	}

	if m.Mode() == arbor.Poll {
		fmt.Fprintf(out, "%d updates pending\n", m.Pending())
		fmt.Fprint(out, surface)
		if err := m.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out, "flushed")
		fmt.Fprint(out, surface)
	}
	printStats(out, m.Stats())
	return nil
}

func demoListCmd(flags *globalFlags) *cobra.Command {
	var order, then string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Reorder a keyed list and print what was reused",
		Long: `Mount a keyed list, render it again in a second order and print
the surface and counters after each render. Rows whose key survives are
moved, not recreated.

Examples:
  arbor demo list --order a,b,c --then c,a,d`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			m, err := newModel(cfg)
			if err != nil {
				return err
			}
			first := splitList(order)
			second := splitList(then)
			if then == "" {
				second = demo.Rotate(first)
			}
			return runList(cmd.OutOrStdout(), m, first, second)
		},
	}

	cmd.Flags().StringVar(&order, "order", "a,b,c", "Comma-separated keys of the first render")
	cmd.Flags().StringVar(&then, "then", "", "Comma-separated keys of the second render (default: first rotated)")

	return cmd
}

func runList(out io.Writer, m *arbor.Model, first, second []string) error {
	for i, items := range [][]string{first, second} {
		surface, err := demo.Mount(m, demo.List.New(demo.ListParams{Items: items}))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "render %d: %s\n", i+1, strings.Join(items, ","))
		fmt.Fprint(out, surface)
		printStats(out, m.Stats())
	}
	return nil
}

// newModel builds a model from cfg, logging to stderr.
func newModel(cfg *config.Config, extra ...arbor.Option) (*arbor.Model, error) {
	logger := cfg.NewLogger(os.Stderr)
	opts, err := cfg.ModelOptions(logger)
	if err != nil {
		return nil, err
	}
	return arbor.New(append(opts, extra...)...), nil
}

func printStats(out io.Writer, s arbor.Stats) {
	fmt.Fprintf(out, "processed=%d created=%d updated=%d destroyed=%d stale=%d failed=%d\n",
		s.Processed, s.Created, s.Updated, s.Destroyed, s.Stale, s.Failed)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
