package driven

// Well-known configuration keys.
const (
	ConfigKeyCatalogBaseURL = "catalog.base_url"
	ConfigKeyCatalogToken   = "catalog.token"
	ConfigKeyDebounceMillis = "search.debounce_ms"
	ConfigKeySearchLimit    = "search.limit"
	ConfigKeyDataDir        = "storage.data_dir"
	ConfigKeySessionUserID  = "session.user_id"
	ConfigKeySessionEmail   = "session.email"
)

// ConfigStore persists user configuration and the local session.
type ConfigStore interface {
	// GetString retrieves a string value, empty when unset.
	GetString(key string) string

	// GetInt retrieves an integer value, zero when unset.
	GetInt(key string) int

	// Set stores a value in memory.
	Set(key string, value any)

	// Delete removes a key.
	Delete(key string)

	// Save persists the current values.
	Save() error
}
