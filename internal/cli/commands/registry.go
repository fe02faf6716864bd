package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablekit/internal/cli/output"
	"github.com/leapstack-labs/tablekit/pkg/schema"
)

// NewPushCommand creates the push command.
func NewPushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push <name> [file]",
		Short: "Store a schema document in the registry",
		Long: `Validate a schema document and store it in the registry under a name,
replacing any previous version.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			path := ""
			if len(args) > 1 {
				path = args[1]
			}
			_, doc, err := loadSchemaFile(cmdCtx.Cfg, path)
			if err != nil {
				return err
			}

			store, cleanup, err := openRegistry(cmdCtx.Cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			entry, err := store.Save(args[0], doc)
			if err != nil {
				return err
			}

			cmdCtx.Renderer.Success(fmt.Sprintf("Pushed %s (updated %s)",
				entry.Name, entry.UpdatedAt.Format(time.RFC3339)))
			return nil
		},
	}
}

// NewPullCommand creates the pull command.
func NewPullCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "pull <name>",
		Short: "Fetch a schema document from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			store, cleanup, err := openRegistry(cmdCtx.Cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			entry, err := store.Get(args[0])
			if err != nil {
				return err
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, entry.Document, 0o644); err != nil {
					return fmt.Errorf("failed to write schema file: %w", err)
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("Pulled %s -> %s", entry.Name, outFile))
				return nil
			}

			cmdCtx.Renderer.Println(string(entry.Document))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "write", "w", "", "Write the document to a file")
	return cmd
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schemas stored in the registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)

			store, cleanup, err := openRegistry(cmdCtx.Cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := store.List()
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				type listEntry struct {
					Name      string    `json:"name"`
					Columns   int       `json:"columns"`
					UpdatedAt time.Time `json:"updatedAt"`
				}
				out := make([]listEntry, 0, len(entries))
				for _, e := range entries {
					out = append(out, listEntry{
						Name:      e.Name,
						Columns:   countColumns(e.Document),
						UpdatedAt: e.UpdatedAt,
					})
				}
				return r.JSON(out)
			}

			if len(entries) == 0 {
				r.Println("No schemas stored")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(r.Writer())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Columns", "Updated"})
			for _, e := range entries {
				t.AppendRow(table.Row{e.Name, countColumns(e.Document), e.UpdatedAt.Format(time.RFC3339)})
			}
			t.Render()
			return nil
		},
	}
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a schema from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			store, cleanup, err := openRegistry(cmdCtx.Cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.Delete(args[0]); err != nil {
				return err
			}

			cmdCtx.Renderer.Success(fmt.Sprintf("Removed %s", args[0]))
			return nil
		},
	}
}

func countColumns(document []byte) int {
	s, err := schema.FromJSON(document)
	if err != nil {
		return 0
	}
	return s.Len()
}
