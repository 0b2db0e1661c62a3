package store

// Config selects and configures the item store backend.
type Config struct {
	// Driver is the backend (file, object, sql).
	Driver string `mapstructure:"driver" default:"file"`
	// Path is the JSON file used by the file backend.
	Path string `mapstructure:"path" default:"data/items.json"`
	// ObjectName is the object key used by the object backend.
	ObjectName string `mapstructure:"object_name" default:"items.json"`
	// AutoMigrate lets the sql backend create the items table.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"true"`
}

const (
	DriverFile   = "file"
	DriverObject = "object"
	DriverSQL    = "sql"
)

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverFile, DriverObject, DriverSQL:
		return true
	default:
		return false
	}
}
