package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAttachmentsCommand creates the attachments command
func NewAttachmentsCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "attachments DATASET_ID",
		Short: "Download dataset attachments",
		Long:  "Download every attachment of a dataset into DIR/DATASET_ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			paths, err := client.DownloadAttachments(cmd.Context(), args[0], dir)
			if err != nil {
				return fmt.Errorf("failed to download attachments of dataset '%s': %w", args[0], err)
			}

			return renderPaths(cmd.OutOrStdout(), paths)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "download directory (default ~/sodapy_downloads)")

	return cmd
}
