package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that everything a running service needs is present.
// Secrets are only mandatory in production; local development runs with the
// defaults.
func ValidateConfig(cfg *Config) error {
	var missing []string

	required := map[string]string{
		"SERVER_PORT":       cfg.ServerPort,
		"DB_HOST":           cfg.DBHost,
		"DB_NAME":           cfg.DBName,
		"EMBEDDING_API_URL": cfg.EmbeddingAPIURL,
		"DETECTION_API_URL": cfg.DetectionAPIURL,
	}
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			missing = append(missing, "DB_PASSWORD")
		}
		if cfg.JWTSecret == "" {
			missing = append(missing, "JWT_SECRET")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}
