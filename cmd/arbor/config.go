package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vango-dev/arbor/internal/config"
	"github.com/vango-dev/arbor/internal/errors"
)

func configCmd(flags *globalFlags) *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration arbor would run with, after applying
defaults and flags, as YAML.

With --init, write the defaults to arbor.yaml in the working directory.

Examples:
  arbor config
  arbor config --config ./arbor.json
  arbor config --init`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if initFile {
				return runConfigInit()
			}
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write arbor.yaml with the defaults")

	return cmd
}

func runConfigInit() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if config.Exists(wd) {
		return errors.Newf(errors.CategoryConfig, "a configuration file already exists in %s", wd)
	}
	path := filepath.Join(wd, config.YAMLFileName)
	if err := config.New().SaveTo(path); err != nil {
		return err
	}
	success("Wrote %s", path)
	return nil
}
