package commands

import (
	"fmt"

	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/spf13/cobra"
)

// NewPublishCommand creates the publish command
func NewPublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publish DATASET_ID",
		Short: "Publish a working copy",
		Long:  "Publish a dataset working copy so it becomes the live version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			result, err := client.Publish(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to publish dataset '%s': %w", args[0], err)
			}

			return renderResult(cmd.OutOrStdout(), result)
		},
	}
}

// NewPermissionCommand creates the permission command
func NewPermissionCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "permission DATASET_ID public|private",
		Short:     "Set dataset visibility",
		Long:      "Make a dataset public or private",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(soda.PermissionPublic), string(soda.PermissionPrivate)},
		RunE: func(cmd *cobra.Command, args []string) error {
			permission := soda.Permission(args[1])
			if permission != soda.PermissionPublic && permission != soda.PermissionPrivate {
				return fmt.Errorf("%w: got '%s'", ErrInvalidPermission, args[1])
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if _, err := client.SetPermission(cmd.Context(), args[0], permission); err != nil {
				return fmt.Errorf("failed to set permission of dataset '%s': %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Dataset '%s' is now %s\n", args[0], permission)

			return nil
		},
	}
}
