package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"labor-dashboard/internal/config"
	"labor-dashboard/internal/dashboard"
	"labor-dashboard/internal/model"
	"labor-dashboard/internal/source"
	"labor-dashboard/internal/viz"
)

// newCommand renders one widget spec over a local CSV or JSON file and
// writes the result as JSON to out.
func newCommand(out io.Writer) *cobra.Command {
	var input, specPath string
	var filters map[string]string
	var q model.TableQuery

	cmd := &cobra.Command{
		Use:          "widget --input data.csv --spec widget.yaml",
		Short:        "render a widget offline",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := source.ReadFile(cmd.Context(), input)
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(specPath)
			if err != nil {
				return fmt.Errorf("failed to read spec %s: %w", specPath, err)
			}
			var w model.WidgetSpec
			if err := yaml.Unmarshal(raw, &w); err != nil {
				return fmt.Errorf("failed to parse spec %s: %w", specPath, err)
			}

			records = source.Filters(filters).Active().Apply(source.Normalize(records))
			res := viz.Render(records, dashboard.WithCaps(w, config.Default().Caps), q)

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(model.WidgetResult{ID: w.ID, Title: w.Title, Kind: w.Kind, Result: res}); err != nil {
				return err
			}
			if res.IsError() {
				return res.Err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "CSV or JSON data file")
	cmd.Flags().StringVar(&specPath, "spec", "", "YAML widget spec")
	cmd.Flags().StringToStringVar(&filters, "filter", nil, "field=value filters")
	cmd.Flags().StringVar(&q.SortBy, "sort", "", "table sort field")
	cmd.Flags().BoolVar(&q.Desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&q.Page, "page", 1, "table page")
	for _, f := range []string{"input", "spec"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(err)
		}
	}
	return cmd
}
