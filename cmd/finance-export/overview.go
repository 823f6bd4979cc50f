package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/domain/shared/format"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Overview output formats
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func newOverviewCommand(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Print the reports overview",
		Long: `Print the collection rate, outstanding balance, monthly revenue series and
top clients shown on the reports page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			deps, release, err := root.container(ctx)
			if err != nil {
				return err
			}
			defer release()

			overview, err := deps.Reports.Overview(ctx)
			if err != nil {
				return err
			}
			return writeOverview(cmd.OutOrStdout(), overview, output, root.cfg.Export.DefaultCurrency)
		},
	}

	cmd.Flags().StringVar(&output, "output", outputTable, "table, json or yaml")
	return cmd
}

func writeOverview(w io.Writer, o *report.Overview, output, currency string) error {
	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(o)

	case outputYAML:
		// keys and decimal strings follow the JSON form
		raw, err := json.Marshal(o)
		if err != nil {
			return err
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(fields); err != nil {
			return err
		}
		return enc.Close()

	case outputTable:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Total revenue\t%s\n", format.Currency(o.Metrics.TotalRevenue, currency))
		fmt.Fprintf(tw, "Paid revenue\t%s\n", format.Currency(o.Metrics.PaidRevenue, currency))
		fmt.Fprintf(tw, "Outstanding\t%s\n", format.Currency(o.Outstanding, currency))
		fmt.Fprintf(tw, "Collection rate\t%d%%\n", o.CollectionRate)
		fmt.Fprintf(tw, "Pending invoices\t%d\n", o.PendingInvoices)
		fmt.Fprintf(tw, "Overdue\t%s\n", o.OverdueHint)

		fmt.Fprintln(tw, "\nMonth\tRevenue\tPayments")
		for _, m := range o.Monthly {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.MonthYear, format.Currency(m.Revenue, currency), format.Currency(m.Payments, currency))
		}

		fmt.Fprintln(tw, "\nClient\tRevenue\tInvoices")
		for _, c := range o.TopClients {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", c.ClientName, format.Currency(c.TotalRevenue, currency), c.InvoiceCount)
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown output %q, want table, json or yaml", output)
}
