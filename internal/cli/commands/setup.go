package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablekit/internal/cli/config"
	"github.com/leapstack-labs/tablekit/internal/cli/output"
	"github.com/leapstack-labs/tablekit/internal/registry"
	"github.com/leapstack-labs/tablekit/pkg/schema"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's
// configuration and context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, falling back to defaults
// when no config was loaded (e.g. in tests driving a bare command).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		SchemaPath:   config.DefaultSchemaPath,
		RegistryPath: config.DefaultRegistryPath,
		OutputFormat: config.DefaultOutput,
		ServerPort:   config.DefaultServerPort,
	}
}

// openRegistry opens the registry store, creating the database directory
// and schema on first use. The returned cleanup must be called.
func openRegistry(cfg *config.Config) (*registry.Store, func(), error) {
	dir := filepath.Dir(cfg.RegistryPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create registry directory: %w", err)
		}
	}

	store := registry.NewStore()
	if err := store.Open(cfg.RegistryPath); err != nil {
		return nil, nil, err
	}
	if err := store.Init(); err != nil {
		store.Close()
		return nil, nil, err
	}

	return store, func() { _ = store.Close() }, nil
}

// loadSchemaFile reads and rebuilds a schema document from disk. An
// empty path falls back to the configured default.
func loadSchemaFile(cfg *config.Config, path string) (*schema.Schema, []byte, error) {
	if path == "" {
		path = cfg.SchemaPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	s, err := schema.FromJSON(data)
	if err != nil {
		return nil, nil, err
	}
	return s, data, nil
}
