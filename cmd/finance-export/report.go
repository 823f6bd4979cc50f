package main

import (
	"time"

	exportapp "github.com/sepur/finance/internal/application/export"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReportCommand(root *rootOptions) *cobra.Command {
	var (
		formatName string
		from, to   string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "report <type>",
		Short: "Export a report",
		Long: `Export one report as pdf, excel or csv.

Report types: financial_summary, invoice_report, payment_report,
client_report, monthly_analysis. The date range applies to invoice_report
(creation date) and payment_report (payment date).`,
		Example: `  finance-export report invoice_report --format csv --from 2024-01-01 --to 2024-01-31
  finance-export report financial_summary --out ./exports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := exportapp.ReportExportRequest{ReportType: args[0], Format: formatName}
			if _, err := req.Parse(); err != nil {
				return err
			}
			rng, err := report.ParseDateRange(from, to, time.Now())
			if err != nil {
				return err
			}
			req.Range = rng
			dir, err := outputDir(outDir)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			deps, release, err := root.container(ctx)
			if err != nil {
				return err
			}
			defer release()

			artifact, err := deps.Reports.Export(ctx, req)
			if err != nil {
				return err
			}

			result, err := exportapp.NewDownloadDelivery(fileSink{dir: dir, out: cmd.OutOrStdout()}).Deliver(ctx, artifact)
			if err != nil {
				return err
			}
			logger.WithLogger(ctx, root.log).Debug("Report written", zap.String("file", result.FileName))
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", string(report.FormatPDF), "pdf, excel or csv")
	cmd.Flags().StringVar(&from, "from", "", "range start date (default unbounded)")
	cmd.Flags().StringVar(&to, "to", "", "range end date (default now)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}
