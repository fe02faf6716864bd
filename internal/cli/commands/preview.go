package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablekit/internal/cli/output"
	"github.com/leapstack-labs/tablekit/pkg/schema"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview the rendering projections of a schema",
		Long: `Show the table column definitions and filter controls a rendering
layer would derive from a schema document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			s, _, err := loadSchemaFile(cmdCtx.Cfg, path)
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return previewJSON(s, r)
			}

			r.Header(1, "Columns")
			t := table.NewWriter()
			t.SetOutputMirror(r.Writer())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Key", "Header", "Cell", "Filter Fn", "Sortable"})
			for _, def := range s.ColumnDefs() {
				t.AppendRow(table.Row{def.Key, def.Header, string(def.Cell.Type), def.FilterFn, def.Sortable})
			}
			t.Render()

			filters := s.FilterFields()
			if len(filters) > 0 {
				r.Println("")
				r.Header(1, "Filters")
				ft := table.NewWriter()
				ft.SetOutputMirror(r.Writer())
				ft.SetStyle(table.StyleLight)
				ft.AppendHeader(table.Row{"Key", "Label", "Kind", "Options / Bounds"})
				for _, f := range filters {
					ft.AppendRow(table.Row{f.Key, f.Label, string(f.Kind), filterDetail(f)})
				}
				ft.Render()
			}

			if hidden := s.DefaultVisibility(); len(hidden) > 0 {
				keys := make([]string, 0, len(hidden))
				for _, key := range s.Keys() {
					if _, ok := hidden[key]; ok {
						keys = append(keys, key)
					}
				}
				r.Println("")
				r.Printf("Hidden by default: %s\n", strings.Join(keys, ", "))
			}

			return nil
		},
	}
}

func previewJSON(s *schema.Schema, r *output.Renderer) error {
	type columnOutput struct {
		Key      string `json:"key"`
		Header   string `json:"header"`
		Cell     string `json:"cell"`
		FilterFn string `json:"filterFn,omitempty"`
		Sortable bool   `json:"sortable"`
	}
	type filterOutput struct {
		Key     string   `json:"key"`
		Label   string   `json:"label"`
		Kind    string   `json:"kind"`
		Options []string `json:"options,omitempty"`
		Min     *float64 `json:"min,omitempty"`
		Max     *float64 `json:"max,omitempty"`
	}
	type previewOutput struct {
		Columns    []columnOutput  `json:"columns"`
		Filters    []filterOutput  `json:"filters"`
		Visibility map[string]bool `json:"visibility"`
	}

	out := previewOutput{Visibility: s.DefaultVisibility()}
	for _, def := range s.ColumnDefs() {
		out.Columns = append(out.Columns, columnOutput{
			Key:      def.Key,
			Header:   def.Header,
			Cell:     string(def.Cell.Type),
			FilterFn: def.FilterFn,
			Sortable: def.Sortable,
		})
	}
	for _, f := range s.FilterFields() {
		out.Filters = append(out.Filters, filterOutput{
			Key:     f.Key,
			Label:   f.Label,
			Kind:    string(f.Kind),
			Options: f.Options,
			Min:     f.Min,
			Max:     f.Max,
		})
	}
	return r.JSON(out)
}

func filterDetail(f schema.FilterField) string {
	switch f.Kind {
	case schema.FilterSlider:
		if f.Min != nil && f.Max != nil {
			return formatBound(*f.Min) + ".." + formatBound(*f.Max)
		}
		return ""
	default:
		return strings.Join(f.Options, ", ")
	}
}
