package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablekit/internal/cli/output"
	"github.com/leapstack-labs/tablekit/pkg/filterql"
	"github.com/leapstack-labs/tablekit/pkg/schema"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var encode bool

	cmd := &cobra.Command{
		Use:   "query <query-string|values-json>",
		Short: "Parse or serialize a filter query against a schema",
		Long: `Parse a filter query string against a schema document and print the
typed values it resolves to, or (with --encode) serialize a JSON object
of filter values back into the query syntax.

The query syntax is space-separated name:value tokens; checkbox values
join with ";", slider bounds with "~", time range endpoints with "_".
Malformed tokens are dropped; only type validation can fail.`,
		Example: `  # Parse a query against the default schema file
  tablekit query "level:error;warn latency:0~500"

  # Serialize filter values into the query syntax
  tablekit query --encode '{"level": ["error", "warn"], "latency": [0, 500]}'

  # Against a specific document
  tablekit query --schema schemas/requests.json "created_at:2024-01-01_2024-01-31"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			s, _, err := loadSchemaFile(cmdCtx.Cfg, "")
			if err != nil {
				return err
			}

			if encode {
				return runEncode(cmdCtx, s, args[0])
			}
			return runParse(cmdCtx, s, args[0])
		},
	}

	cmd.Flags().BoolVarP(&encode, "encode", "e", false, "Serialize a JSON object of values into the query syntax")
	return cmd
}

func runParse(cmdCtx *CommandContext, s *schema.Schema, input string) error {
	result := filterql.Parse(input, s.QuerySpec())
	if !result.Ok() {
		return result.Err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(result.Values)
	}
	for _, key := range s.Keys() {
		if v, ok := result.Values[key]; ok {
			r.Printf("%s: %v\n", key, v)
		}
	}
	return nil
}

func runEncode(cmdCtx *CommandContext, s *schema.Schema, input string) error {
	var values map[string]any
	if err := json.Unmarshal([]byte(input), &values); err != nil {
		return fmt.Errorf("failed to decode filter values: %w", err)
	}

	// Schema key order keeps the output stable.
	entries := make([]filterql.Entry, 0, len(values))
	for _, key := range s.Keys() {
		if v, ok := values[key]; ok {
			entries = append(entries, filterql.Entry{Key: key, Value: v})
		}
	}

	cmdCtx.Renderer.Println(filterql.Serialize(entries, s.QueryFields()))
	return nil
}
