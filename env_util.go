package studio

import "os"

// EnvBaseURL is the environment variable the client reads its backend base
// address from.
const EnvBaseURL = "STUDIO_API_URL"

// DefaultBaseURL is used when EnvBaseURL is unset, matching the platform's
// local development backend.
const DefaultBaseURL = "http://localhost:8080/api"

func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

// BaseURLFromEnv resolves the backend base URL from the environment,
// falling back to DefaultBaseURL.
func BaseURLFromEnv() string {
	return GetEnvOrDefault(EnvBaseURL, DefaultBaseURL)
}
