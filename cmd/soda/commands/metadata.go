package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// NewMetadataCommand creates the metadata command
func NewMetadataCommand() *cobra.Command {
	var set []string

	cmd := &cobra.Command{
		Use:   "metadata DATASET_ID",
		Short: "Show or update dataset metadata",
		Long: `Show the metadata of a dataset. With --set, replace the given top-level keys
and show the updated metadata. Values are parsed as JSON when possible.`,
		Example: `  soda metadata -d data.example.org abcd-1234
  soda metadata -d data.example.org abcd-1234 --set name="New name" --set tags='["a","b"]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := parseKeyValues(set)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if len(pairs) == 0 {
				result, err := client.GetMetadata(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return renderResult(cmd.OutOrStdout(), result)
			}

			fields := make(map[string]any, len(pairs))
			for key, value := range pairs {
				fields[key] = metadataValue(value)
			}

			result, err := client.UpdateMetadata(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}

			return renderResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringArrayVar(&set, "set", nil, "metadata key to replace as key=value (repeatable)")

	return cmd
}

// metadataValue decodes value as JSON, falling back to the plain string.
func metadataValue(value string) any {
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		return value
	}

	return decoded
}
