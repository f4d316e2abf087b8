package commands

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/timmit98/parse-and-track-spending/internal/ingest"
	"github.com/timmit98/parse-and-track-spending/internal/ledger"
	"github.com/timmit98/parse-and-track-spending/internal/model"
)

type importOptions struct {
	configPath string
	from       string
	to         string
	category   string
	summary    bool
}

func newImportCommand() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <files...>",
		Short: "Import statement files (.csv, .pdf) into the spending ledger",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "rules file (defaults to the built-in rules)")
	cmd.Flags().StringVar(&opts.from, "from", "", "only show transactions on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "only show transactions on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.category, "category", ledger.AllCategories, "only show this category")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print per-category totals")

	return cmd
}

func runImport(cmd *cobra.Command, paths []string, opts importOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	start, err := ledger.DayStart(opts.from)
	if err != nil {
		return fmt.Errorf("parsing --from: %w", err)
	}
	end, err := ledger.DayEnd(opts.to)
	if err != nil {
		return fmt.Errorf("parsing --to: %w", err)
	}

	svc := ingest.NewService(cfg, newLogger())
	svc.Start()
	defer svc.Stop()

	store := ledger.NewStore()
	report := svc.ImportFiles(cmd.Context(), store, paths)

	out := cmd.OutOrStdout()
	for _, msg := range report.Messages() {
		fmt.Fprintln(out, msg)
	}
	if store.Len() == 0 {
		return errors.New("no transactions imported")
	}

	fmt.Fprintln(out)
	printTransactions(out, store.Filtered(start, end, opts.category))

	if opts.summary {
		fmt.Fprintln(out)
		printSummary(out, store.Summarize(start, end))
	}
	return nil
}

func printTransactions(out io.Writer, txs []model.Transaction) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tAMOUNT\tCATEGORY\tSOURCE\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tx.Timestamp.Format("2006-01-02"), tx.Amount.StringFixed(2),
			tx.Category, tx.Source, tx.DisplayTitle())
	}
	w.Flush()
}

func printSummary(out io.Writer, sum ledger.Summary) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tTOTAL\tCOUNT")
	for _, cs := range sum.Categories {
		fmt.Fprintf(w, "%s\t%s\t%d\n", cs.Category, cs.Total.StringFixed(2), cs.Count)
	}
	w.Flush()
	fmt.Fprintf(out, "\nCharges: %s  Credits: %s  Net spending: %s\n",
		sum.TotalCharges.StringFixed(2), sum.TotalCredits.StringFixed(2), sum.NetSpending.StringFixed(2))
}
