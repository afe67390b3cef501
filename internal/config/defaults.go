package config

// Default configuration values.
const (
	DefaultDialect  = "postgres"
	DefaultBindMode = "parameterized"
	DefaultMaxDepth = 5
)

// ApplyTargetDefaults applies default values to a TargetConfig based on the
// target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}
	if t.Type == "postgres" {
		if t.Port == 0 {
			t.Port = 5432
		}
		if t.Host == "" {
			t.Host = "localhost"
		}
	}
}
