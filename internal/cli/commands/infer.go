package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablekit/pkg/schema"
)

// NewInferCommand creates the infer command.
func NewInferCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "infer <records.json>",
		Short: "Infer a schema from sample records",
		Long: `Infer a schema document from a JSON array of sample records.

Column types are classified from the observed values: ISO dates and Unix
millisecond numbers become timestamps, low-cardinality strings become
enums, numeric spreads get a slider filter with the sampled bounds.`,
		Example: `  # Print the inferred document
  tablekit infer samples.json

  # Write it to a file
  tablekit infer samples.json --write schema.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read sample records: %w", err)
			}

			s, err := schema.InferFromJSON(data)
			if err != nil {
				return err
			}

			doc, err := s.JSON()
			if err != nil {
				return err
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, append(doc, '\n'), 0o644); err != nil {
					return fmt.Errorf("failed to write schema file: %w", err)
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("Inferred %d columns -> %s", s.Len(), outFile))
				return nil
			}

			cmdCtx.Renderer.Println(string(doc))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "write", "w", "", "Write the inferred document to a file")
	return cmd
}
