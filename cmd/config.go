package cmd

import (
	"os"
	"strings"

	"storefront/internal/pkg/config"
)

// publicNamespacePrefixes are environment-variable prefixes that build
// tooling exposes to clients. A secret under any of them has leaked.
var publicNamespacePrefixes = []string{"PUBLIC_", "NEXT_PUBLIC_", "VITE_", "REACT_APP_"}

// secretTokens mark a variable name as credential-bearing.
var secretTokens = []string{"SECRET", "KEY", "TOKEN", "PASSWORD", "CREDENTIAL"}

// LoadConfig reads the service configuration from the environment.
func LoadConfig() config.Config {
	return config.Config{
		HTTPPort: os.Getenv("HTTP_PORT"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),

		MailerAPIKey:      os.Getenv("MAILER_API_KEY"),
		MailerFrom:        os.Getenv("MAILER_FROM"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		RecipientOverride: os.Getenv("NOTIFICATION_RECIPIENT_OVERRIDE"),
		Tier:              os.Getenv("RUNTIME_TIER"),

		ExposedSecretVars: detectExposedSecrets(os.Environ()),
	}
}

// detectExposedSecrets returns the names of environment variables that carry
// a credential under a public/client-visible namespace.
func detectExposedSecrets(environ []string) []string {
	var exposed []string
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || value == "" {
			continue
		}
		if !hasAnyPrefix(name, publicNamespacePrefixes) {
			continue
		}
		upper := strings.ToUpper(name)
		for _, token := range secretTokens {
			if strings.Contains(upper, token) {
				exposed = append(exposed, name)
				break
			}
		}
	}
	return exposed
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
