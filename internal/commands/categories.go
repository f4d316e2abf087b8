package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/timmit98/parse-and-track-spending/internal/categorize"
)

func newCategoriesCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the configured spending categories and their keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tKEYWORDS")
			for _, rule := range cfg.Categories {
				fmt.Fprintf(w, "%s\t%d\n", rule.Name, len(rule.Keywords))
			}
			fmt.Fprintf(w, "%s\t%s\n", categorize.Other, "(fallback)")
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "rules file (defaults to the built-in rules)")

	return cmd
}
