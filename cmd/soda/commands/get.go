package commands

import (
	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command
func NewGetCommand() *cobra.Command {
	var (
		selectClause  string
		where         string
		order         string
		group         string
		limit         int
		offset        int
		search        string
		soql          string
		filters       []string
		format        string
		accept        string
		includeSystem bool
	)

	cmd := &cobra.Command{
		Use:   "get DATASET_ID",
		Short: "Read rows from a dataset",
		Long:  "Read rows from a dataset with the resource API, filtered with SoQL clauses or column filters",
		Example: `  soda get -d data.cityofchicago.org ijzp-q8t2 --where "year > 2020" --limit 5
  soda get -d data.cityofchicago.org ijzp-q8t2 --filter primary_type=THEFT --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			columnFilters, err := parseKeyValues(filters)
			if err != nil {
				return err
			}

			query := soda.NewQuery().WithFormat(soda.Format(format)).WithAccept(accept)
			for column, value := range columnFilters {
				query.WithFilter(column, value)
			}

			flags := cmd.Flags()
			if flags.Changed("select") {
				query.WithSelect(selectClause)
			}

			if flags.Changed("where") {
				query.WithWhere(where)
			}

			if flags.Changed("order") {
				query.WithOrder(order)
			}

			if flags.Changed("group") {
				query.WithGroup(group)
			}

			if flags.Changed("limit") {
				query.WithLimit(limit)
			}

			if flags.Changed("offset") {
				query.WithOffset(offset)
			}

			if flags.Changed("q") {
				query.WithSearch(search)
			}

			if flags.Changed("query") {
				query.WithSoQL(soql)
			}

			if flags.Changed("include-system-fields") {
				query.WithExcludeSystemFields(!includeSystem)
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			result, err := client.Get(cmd.Context(), args[0], query)
			if err != nil {
				return err
			}

			return renderResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&selectClause, "select", "", "columns to return ($select)")
	cmd.Flags().StringVar(&where, "where", "", "row filter ($where)")
	cmd.Flags().StringVar(&order, "order", "", "sort order ($order)")
	cmd.Flags().StringVar(&group, "group", "", "aggregation columns ($group)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of rows ($limit)")
	cmd.Flags().IntVar(&offset, "offset", 0, "offset of the first row ($offset)")
	cmd.Flags().StringVar(&search, "q", "", "full text search ($q)")
	cmd.Flags().StringVar(&soql, "query", "", "complete SoQL query ($query)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "column equality filter as column=value (repeatable)")
	cmd.Flags().StringVar(&format, "format", string(soda.FormatJSON), "resource format (json, csv, xml, txt)")
	cmd.Flags().StringVar(&accept, "accept", "", "override the Accept header")
	cmd.Flags().BoolVar(&includeSystem, "include-system-fields", false, "include :id, :created_at and :updated_at")

	return cmd
}

// NewGetAllCommand creates the get-all command
func NewGetAllCommand() *cobra.Command {
	var (
		where    string
		order    string
		pageSize int
		maxRows  int
	)

	cmd := &cobra.Command{
		Use:   "get-all DATASET_ID",
		Short: "Read every row of a dataset",
		Long:  "Page through every row of a dataset with the resource API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := soda.NewQuery().WithLimit(pageSize)

			if cmd.Flags().Changed("where") {
				query.WithWhere(where)
			}

			if cmd.Flags().Changed("order") {
				query.WithOrder(order)
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			rows := []any{}

			iterator := client.GetAll(cmd.Context(), args[0], query)
			for iterator.HasNext() {
				if maxRows > 0 && len(rows) >= maxRows {
					break
				}

				row, err := iterator.Next()
				if err != nil {
					return err
				}

				rows = append(rows, row)
			}

			return renderRecords(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "row filter ($where)")
	cmd.Flags().StringVar(&order, "order", "", "sort order ($order)")
	cmd.Flags().IntVar(&pageSize, "page-size", 1000, "rows fetched per request")
	cmd.Flags().IntVar(&maxRows, "max", 0, "stop after this many rows (0 for no limit)")

	return cmd
}
