package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/store"
	"github.com/jonathan/cv-builder/internal/subscription"
	"github.com/jonathan/cv-builder/internal/wizard"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export <cv-id>",
	Aliases: []string{"render"},
	Short:   "Export a stored CV as PDF",
	Long:    `Load a CV from the document store, render it against its template, and write the PDF to disk.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runExportCmd,
}

var (
	exportStoreURL string
	exportOutput   string
	exportName     string
	exportPlan     string
)

func init() {
	exportCmd.Flags().StringVar(&exportStoreURL, "store-url", "", "Document-store base URL (defaults to CV_BUILDER_STORE_URL env var)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "PDF output path (defaults to the download filename in the current directory)")
	exportCmd.Flags().StringVarP(&exportName, "name", "n", "", "Display name used for the download filename")
	exportCmd.Flags().StringVar(&exportPlan, "plan", subscription.PlanPro, "Subscription plan (free, pro)")
	rootCmd.AddCommand(exportCmd)
}

func runExportCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid CV id %q: %w", args[0], err)
	}

	storeURL := exportStoreURL
	if storeURL == "" {
		storeURL = os.Getenv("CV_BUILDER_STORE_URL")
	}
	if storeURL == "" {
		return fmt.Errorf("document-store URL is required (--store-url or CV_BUILDER_STORE_URL)")
	}

	client := store.New(storeURL, os.Getenv("CV_BUILDER_TOKEN"))
	w, err := wizard.Open(ctx, wizard.Config{
		DisplayName: exportName,
		Snapshot:    subscription.ForPlan(exportPlan, 0),
		Store:       client,
		Exporter:    export.NewExporter(),
	}, id)
	if err != nil {
		return err
	}

	filename, pdf, err := w.Export(ctx)
	if err != nil {
		return err
	}

	outPath := exportOutput
	if outPath == "" {
		outPath = filename
	}
	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Printf("Exported %s (%d bytes)\n", outPath, len(pdf))
	return nil
}
