// Package config holds the process-wide configuration for the order
// notification and access-control service, loaded once at startup and treated
// as read-only for the process lifetime.
package config

import "regexp"

// Runtime tiers. Tier gates the recipient-override safety check: an override
// in production would silently redirect all customer email.
const (
	TierProduction  = "production"
	TierStaging     = "staging"
	TierDevelopment = "development"
)

const (
	// MailerKeyPrefix is the key-format prefix the mail provider issues.
	// Any credential without it is a placeholder or a paste error.
	MailerKeyPrefix = "sf_"

	// MinWebhookSecretLength is the shortest shared secret accepted without a warning.
	MinWebhookSecretLength = 16

	// DefaultMailerFrom is used when no sender address is configured.
	DefaultMailerFrom = "orders@notifications.storefront.example"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Config is the operating configuration of the service.
//
// ExposedSecretVars lists the names of any environment variables that leak a
// credential into a public/client-visible namespace (PUBLIC_* and similar).
// The loader populates it; validation treats a non-empty list as a hard
// security error.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	MailerAPIKey      string
	MailerFrom        string
	WebhookSecret     string
	RecipientOverride string
	Tier              string

	ExposedSecretVars []string
}
