package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a schema document",
		Long: `Validate a schema document against the column rules: every column
needs a label, slider filters need consistent bounds, and filter kinds
must be legal for their column's data type.`,
		Example: `  # Validate the default schema file
  tablekit validate

  # Validate a specific document
  tablekit validate schemas/requests.json`,
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

			cmdCtx.Renderer.Success(fmt.Sprintf("Schema is valid (%d columns)", s.Len()))
			return nil
		},
	}
}
