package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	exportapp "github.com/sepur/finance/internal/application/export"
	"github.com/sepur/finance/internal/bootstrap"
	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInvoiceCommand(root *rootOptions) *cobra.Command {
	var (
		formatName   string
		snapshotPath string
		outDir       string
		upload       bool
	)

	cmd := &cobra.Command{
		Use:   "invoice [invoice-id]",
		Short: "Generate or upload one invoice document",
		Long: `Generate the document of one stored invoice, or of an invoice snapshot
read from a JSON or YAML file. With --upload the PDF is stored in object
storage and its public URL printed.`,
		Example: `  finance-export invoice 3f1c2a9e-6b0d-4a53-9a47-1a2b3c4d5e6f --format pdf
  finance-export invoice --snapshot draft.yaml --format html
  finance-export invoice 3f1c2a9e-6b0d-4a53-9a47-1a2b3c4d5e6f --upload`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (snapshotPath == "") {
				return errors.New("pass either an invoice id or --snapshot")
			}
			if upload && snapshotPath != "" {
				return errors.New("--upload needs a stored invoice id")
			}
			f, err := report.ParseDocumentFormat(formatName)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var opts []bootstrap.Option
			if !upload {
				opts = append(opts, bootstrap.WithoutStorage())
			}
			deps, release, err := root.container(ctx, opts...)
			if err != nil {
				return err
			}
			defer release()

			if upload {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid invoice id %q", args[0])
				}
				result, err := deps.Documents.Upload(ctx, id)
				if err != nil {
					return err
				}
				if !result.MetadataRecorded {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: file metadata was not saved")
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), result.URL)
				return err
			}

			var artifact *exportapp.Artifact
			if snapshotPath != "" {
				snap, err := readSnapshot(snapshotPath)
				if err != nil {
					return err
				}
				artifact, err = deps.Documents.GenerateFromSnapshot(ctx, snap, f)
				if err != nil {
					return err
				}
			} else {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid invoice id %q", args[0])
				}
				artifact, err = deps.Documents.Generate(ctx, id, f)
				if err != nil {
					return err
				}
			}

			dir, err := outputDir(outDir)
			if err != nil {
				return err
			}
			_, err = exportapp.NewDownloadDelivery(fileSink{dir: dir, out: cmd.OutOrStdout()}).Deliver(ctx, artifact)
			return err
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", string(report.FormatPDF), "pdf, csv or html")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "render an invoice snapshot file (.json, .yaml or .yml)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&upload, "upload", false, "upload the PDF to object storage instead of writing a file")
	return cmd
}

// readSnapshot decodes an invoice snapshot. YAML keys follow the JSON field names.
func readSnapshot(path string) (document.InvoiceSnapshot, error) {
	var snap document.InvoiceSnapshot

	raw, err := os.ReadFile(path)
	if err != nil {
		return snap, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var fields map[string]any
		if err := yaml.Unmarshal(raw, &fields); err != nil {
			return snap, fmt.Errorf("invalid snapshot %s: %w", path, err)
		}
		if raw, err = json.Marshal(fields); err != nil {
			return snap, err
		}
	}

	if err := json.Unmarshal(raw, &snap); err != nil {
		return snap, fmt.Errorf("invalid snapshot %s: %w", path, err)
	}
	return snap, nil
}
