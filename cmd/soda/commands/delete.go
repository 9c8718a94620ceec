package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete DATASET_ID [ROW_ID]",
		Short: "Delete a dataset or a row",
		Long:  "Delete a whole dataset, or a single row of it when ROW_ID is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			datasetID := args[0]

			var rowID string
			if len(args) == 2 {
				rowID = args[1]
			}

			target := fmt.Sprintf("dataset '%s'", datasetID)
			if rowID != "" {
				target = fmt.Sprintf("row '%s' of dataset '%s'", rowID, datasetID)
			}

			if !force {
				fmt.Fprintf(cmd.OutOrStdout(), "Really delete %s? (y/N): ", target)

				var response string
				_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)

				if response != "y" && response != "Y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")

					return nil
				}
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if _, err := client.Delete(cmd.Context(), datasetID, rowID); err != nil {
				return fmt.Errorf("failed to delete %s: %w", target, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", target)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}
