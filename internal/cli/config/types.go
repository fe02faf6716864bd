package config

// Config holds the resolved CLI configuration.
type Config struct {
	// SchemaPath is the default schema document operated on by commands
	// that take no explicit file argument.
	SchemaPath string `koanf:"schema_path"`

	// RegistryPath is the SQLite database the registry commands use.
	RegistryPath string `koanf:"registry_path"`

	// OutputFormat selects the renderer mode (auto|text|markdown|json).
	OutputFormat string `koanf:"output"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// ServerPort is the port the serve command listens on.
	ServerPort int `koanf:"port"`
}

// Defaults.
const (
	DefaultSchemaPath   = "schema.json"
	DefaultRegistryPath = ".tablekit/registry.db"
	DefaultOutput       = "auto"
	DefaultServerPort   = 8765
)
