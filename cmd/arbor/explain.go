package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/arbor/internal/errors"
)

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain [code]",
		Short: "Explain an error code",
		Long: `Print the explanation of an arbor error code, or list every code
when none is given.

Examples:
  arbor explain
  arbor explain A003`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, code := range errors.GetAllCodes() {
					tmpl, _ := errors.GetTemplate(code)
					fmt.Fprintf(out, "%s  %-8s %s\n", code, tmpl.Category, tmpl.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			tmpl, ok := errors.GetTemplate(code)
			if !ok {
				return errors.New("X001").
					WithDetailf("Unknown error code %q", args[0]).
					WithSuggestion("Run 'arbor explain' to list the known codes")
			}
			fmt.Fprintf(out, "%s: %s (%s)\n\n%s\n", code, tmpl.Message, tmpl.Category, tmpl.Explanation)
			return nil
		},
	}
}
