package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/vango-dev/arbor/internal/config"
	"github.com/vango-dev/arbor/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	configPath  string
	debug       bool
	logLevel    string
	color       string
	errorFormat string
}

func main() {
	flags := &globalFlags{color: "auto"}
	flags.applyColor(os.Stderr)
	if err := newRootCmd(flags).Execute(); err != nil {
		printError(os.Stderr, err, flags.errorFormat)
		os.Exit(1)
	}
}

func newRootCmd(flags *globalFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "Drive and inspect arbor component trees",
		Long: `Arbor keeps a tree of component scopes and re-renders the ones whose
state changed, in the order the changes were requested.

This tool runs the bundled demo trees and serves the inspector:

  • demo counter   click a counter and print the widget surface
  • demo list      reorder a keyed list and print what was reused
  • inspect        serve scope snapshots, stats and metrics over HTTP
  • config         print or write the resolved configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch flags.errorFormat {
			case "", "text", "compact", "json":
			default:
				return fmt.Errorf("--error-format must be text, compact or json, got %q", flags.errorFormat)
			}
			switch flags.color {
			case "auto", "always", "never":
			default:
				return fmt.Errorf("--color must be auto, always or never, got %q", flags.color)
			}
			flags.applyColor(os.Stderr)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to arbor.yaml or arbor.json")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable hook order checks")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (default from config)")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto", "Colored errors: auto, always or never")
	rootCmd.PersistentFlags().StringVar(&flags.errorFormat, "error-format", "text", "Error output: text, compact or json")

	rootCmd.AddCommand(
		demoCmd(flags),
		inspectCmd(flags),
		configCmd(flags),
		explainCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig resolves the configuration: the --config file when given,
// otherwise the nearest arbor.yaml or arbor.json above the working
// directory, otherwise the defaults. Flags override file values.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = loadNearest()
	}
	if err != nil {
		return nil, err
	}

	if f.debug {
		cfg.Debug = true
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadNearest() (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := config.FindProjectRoot(wd)
	if err != nil {
		return config.New(), nil
	}
	return config.Load(root)
}

// applyColor turns error colors on or off. In auto mode colors are used
// only when w is a terminal and NO_COLOR is unset.
func (f *globalFlags) applyColor(w *os.File) {
	switch f.color {
	case "always":
		errors.EnableColors()
	case "never":
		errors.DisableColors()
	default:
		fd := w.Fd()
		if os.Getenv("NO_COLOR") == "" && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
			errors.EnableColors()
		} else {
			errors.DisableColors()
		}
	}
}

// printError writes err to w in the requested format. Errors that are not
// already an *errors.ArborError are reported as X001.
func printError(w io.Writer, err error, format string) {
	ae := errors.FromError(err, "X001")
	switch format {
	case "json":
		fmt.Fprintln(w, ae.FormatJSON())
	case "compact":
		fmt.Fprintln(w, ae.FormatCompact())
	default:
		errors.Fprint(w, ae)
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
