package driven

// ConfigStore is the persisted key/value configuration.
// Keys are dotted paths such as "control.zoom_level".
type ConfigStore interface {
	// Get returns the raw value for key and whether it is set.
	Get(key string) (any, bool)

	// GetString returns the string value for key, or "".
	GetString(key string) string

	// GetInt returns the integer value for key, or 0.
	GetInt(key string) int

	// GetBool returns the boolean value for key, or false.
	GetBool(key string) bool

	// Set stores and persists a value.
	Set(key string, value any) error

	// Save writes the configuration to storage.
	Save() error

	// Load re-reads the configuration from storage.
	Load() error

	// Path returns the configuration file path, or "" for in-memory stores.
	Path() string
}
