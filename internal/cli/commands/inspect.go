package commands

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablekit/internal/cli/output"
	"github.com/leapstack-labs/tablekit/pkg/schema"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the columns of a schema document",
		Long: `Show every column of a schema document with its data type, display,
filter, and flags.

Output adapts to environment:
  - Terminal: Styled table output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
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

			switch cmdCtx.Renderer.EffectiveMode() {
			case output.ModeJSON:
				return cmdCtx.Renderer.JSON(s.Document())
			case output.ModeMarkdown:
				return inspectMarkdown(s, cmdCtx.Renderer)
			default:
				return inspectText(s, cmdCtx.Renderer)
			}
		},
	}
}

func inspectText(s *schema.Schema, r *output.Renderer) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Label", "Type", "Display", "Filter", "Flags"})

	for _, key := range s.Keys() {
		col, _ := s.Column(key)
		t.AppendRow(table.Row{
			key, col.Label, columnType(col), col.Display.Type, filterSummary(col), columnFlags(col),
		})
	}
	t.Render()
	return nil
}

func inspectMarkdown(s *schema.Schema, r *output.Renderer) error {
	r.Println(output.FormatHeader(1, "Schema columns"))
	r.Println("")
	for _, key := range s.Keys() {
		col, _ := s.Column(key)
		r.Println(output.FormatHeader(2, key))
		r.Println(output.FormatKeyValue("Label", col.Label))
		r.Println(output.FormatKeyValue("Type", columnType(col)))
		r.Println(output.FormatKeyValue("Display", string(col.Display.Type)))
		r.Println(output.FormatKeyValue("Filter", filterSummary(col)))
		if flags := columnFlags(col); flags != "" {
			r.Println(output.FormatKeyValue("Flags", flags))
		}
		r.Println("")
	}
	return nil
}

func columnType(col schema.Column) string {
	switch col.Kind {
	case schema.KindEnum:
		return "enum(" + strings.Join(col.EnumValues, ", ") + ")"
	case schema.KindArray:
		if col.ArrayItem != nil {
			return "array of " + string(col.ArrayItem.Kind)
		}
		return "array"
	default:
		return string(col.Kind)
	}
}

func filterSummary(col schema.Column) string {
	f := col.Filter
	if f == nil {
		return "-"
	}
	switch f.Kind {
	case schema.FilterSlider:
		if f.Min != nil && f.Max != nil {
			return "slider " + formatBound(*f.Min) + ".." + formatBound(*f.Max)
		}
		return "slider"
	case schema.FilterCheckbox:
		if len(f.Options) > 0 {
			return "checkbox (" + strconv.Itoa(len(f.Options)) + " options)"
		}
		return "checkbox"
	default:
		return string(f.Kind)
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func columnFlags(col schema.Column) string {
	var flags []string
	if col.Hidden {
		flags = append(flags, "hidden")
	}
	if !col.Sortable {
		flags = append(flags, "unsortable")
	}
	if col.Optional {
		flags = append(flags, "optional")
	}
	return strings.Join(flags, ", ")
}
