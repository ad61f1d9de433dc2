package config

import "strings"

// parseEnv reads the variables the service has always honoured on hosted
// platforms. PORT may be a bare port number or a full address.
func parseEnv(config *Config, lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv("PORT"); ok && v != "" {
		if strings.Contains(v, ":") {
			config.HTTPAddr = v
		} else {
			config.HTTPAddr = ":" + v
		}
	}
	if v, ok := lookupEnv("SECRET_KEY"); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := lookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
}
