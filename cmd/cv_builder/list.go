package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jonathan/cv-builder/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored CVs",
	Long:  `List all CVs in the document store for the authenticated user.`,
	RunE:  runListCmd,
}

var listStoreURL string

func init() {
	listCmd.Flags().StringVar(&listStoreURL, "store-url", "", "Document-store base URL (defaults to CV_BUILDER_STORE_URL env var)")
	rootCmd.AddCommand(listCmd)
}

func runListCmd(_ *cobra.Command, _ []string) error {
	storeURL := listStoreURL
	if storeURL == "" {
		storeURL = os.Getenv("CV_BUILDER_STORE_URL")
	}
	if storeURL == "" {
		return fmt.Errorf("document-store URL is required (--store-url or CV_BUILDER_STORE_URL)")
	}

	client := store.New(storeURL, os.Getenv("CV_BUILDER_TOKEN"))
	docs, err := client.List(context.Background())
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Println("No CVs found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTEMPLATE\tUPDATED")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Title, d.TemplateID, d.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
