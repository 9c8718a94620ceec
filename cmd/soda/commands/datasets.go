package commands

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewDatasetsCommand creates the datasets command
func NewDatasetsCommand() *cobra.Command {
	var (
		limit   int
		offset  int
		order   string
		filters []string
	)

	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"catalog", "ls"},
		Short:   "List datasets of the domain",
		Long:    "List the datasets of the configured domain through the discovery API",
		Example: `  soda datasets -d data.cityofchicago.org --limit 10
  soda datasets -d data.cityofchicago.org --filter tags=crime --filter only=dataset --order "name ASC"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := soda.NewDatasetsQuery().WithLimit(limit).WithOffset(offset).WithOrder(order)

			for _, filter := range filters {
				name, value, ok := strings.Cut(filter, "=")
				if !ok || name == "" {
					return fmt.Errorf("%w: %q", ErrInvalidKeyValue, filter)
				}

				query.WithFilter(name, value)
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			results, err := client.Datasets(cmd.Context(), query)
			if err != nil {
				return err
			}

			return renderValue(cmd.OutOrStdout(), results, func(table *tablewriter.Table) {
				table.Header("ID", "Name", "Type", "Updated")

				for _, result := range results {
					resource, _ := result["resource"].(map[string]any)
					_ = table.Append(
						formatCell(resource["id"]),
						formatCell(resource["name"]),
						formatCell(resource["type"]),
						formatCell(resource["updatedAt"]),
					)
				}
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of datasets (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "offset of the first dataset")
	cmd.Flags().StringVar(&order, "order", "", `sort field, optionally suffixed with " ASC" or " DESC"`)
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "discovery filter as name=value (repeatable; multi-valued filters accept repeats)")

	return cmd
}
