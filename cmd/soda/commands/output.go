package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// renderValue writes value in the format selected by --output. For table output,
// fill receives an empty table and adds the header and rows.
func renderValue(w io.Writer, value any, fill func(table *tablewriter.Table)) error {
	switch viper.GetString("output") {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(value)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	default:
		table := tablewriter.NewWriter(w)
		fill(table)

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// renderResult writes a decoded response. Text and RDF bodies are written
// verbatim whatever the output format.
func renderResult(w io.Writer, result *soda.Result) error {
	switch result.Kind {
	case soda.KindEmpty:
		return nil
	case soda.KindText:
		_, err := io.WriteString(w, result.Text)

		return err
	case soda.KindRDF:
		_, err := w.Write(result.Raw)

		return err
	case soda.KindCSV:
		return renderValue(w, result.Rows, func(table *tablewriter.Table) {
			fillRows(table, result.Rows)
		})
	}

	switch value := result.JSON.(type) {
	case []any:
		return renderRecords(w, value)
	case map[string]any:
		return renderObject(w, value)
	default:
		return renderValue(w, value, func(table *tablewriter.Table) {
			table.Header("Value")
			_ = table.Append(formatCell(value))
		})
	}
}

// renderRecords writes a list of rows. Table columns are the union of the row
// keys, sorted.
func renderRecords(w io.Writer, items []any) error {
	return renderValue(w, items, func(table *tablewriter.Table) {
		columns := recordColumns(items)

		header := make([]any, 0, len(columns))
		for _, column := range columns {
			header = append(header, columnTitle(column))
		}

		table.Header(header...)

		for _, item := range items {
			record, ok := item.(map[string]any)
			if !ok {
				record = map[string]any{}
			}

			row := make([]string, 0, len(columns))
			for _, column := range columns {
				row = append(row, formatCell(record[column]))
			}

			_ = table.Append(row)
		}
	})
}

func renderObject(w io.Writer, object map[string]any) error {
	return renderValue(w, object, func(table *tablewriter.Table) {
		table.Header("Property", "Value")

		for _, key := range sortedKeys(object) {
			_ = table.Append(key, formatCell(object[key]))
		}
	})
}

// renderPaths writes a list of local file paths.
func renderPaths(w io.Writer, paths []string) error {
	return renderValue(w, paths, func(table *tablewriter.Table) {
		table.Header("Path")

		for _, path := range paths {
			_ = table.Append(path)
		}
	})
}

func fillRows(table *tablewriter.Table, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	header := make([]any, 0, len(rows[0]))
	for _, column := range rows[0] {
		header = append(header, column)
	}

	table.Header(header...)

	for _, row := range rows[1:] {
		_ = table.Append(row)
	}
}

func recordColumns(items []any) []string {
	seen := map[string]bool{}

	var columns []string

	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}

		for key := range record {
			if !seen[key] {
				seen[key] = true

				columns = append(columns, key)
			}
		}
	}

	sort.Strings(columns)

	return columns
}

func sortedKeys(object map[string]any) []string {
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// columnTitle turns a field name such as "primary_type" into "Primary Type".
func columnTitle(field string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(field, "_", " "))
}

// formatCell renders a JSON value for a table cell. Nested values are written
// as compact JSON.
func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(data)
	default:
		return fmt.Sprint(v)
	}
}

// parseKeyValues parses "key=value" flag values.
func parseKeyValues(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeyValue, pair)
		}

		result[key] = value
	}

	return result, nil
}
