package cli

import "os"

// Config holds CLI configuration
type Config struct {
	ServerURL      string
	Output         string
	Verbose        bool
	DictionaryPath string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:      getEnvOrDefault("TRAMPOLINE_SERVER", "http://localhost:8080"),
		Output:         getEnvOrDefault("TRAMPOLINE_OUTPUT", "text"),
		Verbose:        false,
		DictionaryPath: getEnvOrDefault("TRAMPOLINE_DICTIONARY", "data/words.txt"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
