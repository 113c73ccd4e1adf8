package sqlite

// Config holds SQLite connection settings
type Config struct {
	// Path is the database file; ":memory:" keeps everything in process
	Path string

	// BusyTimeoutMillis is how long a writer waits on a locked database
	BusyTimeoutMillis int
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:              "data/trampoline.db",
		BusyTimeoutMillis: 5000,
	}
}
