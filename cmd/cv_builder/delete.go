package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/store"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <cv-id>",
	Short: "Delete a stored CV",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteCmd,
}

var deleteStoreURL string

func init() {
	deleteCmd.Flags().StringVar(&deleteStoreURL, "store-url", "", "Document-store base URL (defaults to CV_BUILDER_STORE_URL env var)")
	rootCmd.AddCommand(deleteCmd)
}

func runDeleteCmd(_ *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid CV id %q: %w", args[0], err)
	}

	storeURL := deleteStoreURL
	if storeURL == "" {
		storeURL = os.Getenv("CV_BUILDER_STORE_URL")
	}
	if storeURL == "" {
		return fmt.Errorf("document-store URL is required (--store-url or CV_BUILDER_STORE_URL)")
	}

	client := store.New(storeURL, os.Getenv("CV_BUILDER_TOKEN"))
	if err := client.Delete(context.Background(), id); err != nil {
		return err
	}

	fmt.Printf("Deleted CV %s\n", id)
	return nil
}
