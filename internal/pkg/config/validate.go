package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"storefront/internal/pkg/errs"
)

// Severity grades a validation finding.
type Severity string

const (
	// SeverityWarning marks a finding that is surfaced but never aborts startup.
	SeverityWarning Severity = "warning"

	// SeverityError marks a finding that aborts startup in strict mode.
	SeverityError Severity = "error"
)

// Finding is one configuration defect discovered during validation.
// Message never contains the configured secret or credential value.
type Finding struct {
	Severity Severity
	Param    string
	Message  string
}

// knownPlaceholders are values that ship in example env files and must never
// reach a running process.
var knownPlaceholders = map[string]bool{
	"changeme":             true,
	"change-me":            true,
	"placeholder":          true,
	"your-api-key":         true,
	"your-webhook-secret":  true,
	"sf_your_api_key_here": true,
	"secret":               true,
}

func isPlaceholder(value string) bool {
	return knownPlaceholders[strings.ToLower(value)]
}

// Validate checks the notification subsystem's operating configuration and
// returns every finding. With throwOnError true, any error-severity finding
// aborts startup by returning a joined error; with false the findings are
// only logged, supporting advisory-only call sites.
//
// Validate also applies the sender-address default when none is configured,
// so it must run before the configuration is handed to the mail transport.
func (c *Config) Validate(ctx context.Context, logger *slog.Logger, throwOnError bool) ([]Finding, error) {
	findings := make([]Finding, 0)

	findings = append(findings, c.checkMailerAPIKey()...)
	findings = append(findings, c.checkMailerFrom()...)
	findings = append(findings, c.checkWebhookSecret()...)
	findings = append(findings, c.checkRecipientOverride()...)
	findings = append(findings, c.checkExposedSecrets()...)

	hard := make([]error, 0)
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			logger.ErrorContext(ctx, "configuration error", "param", f.Param, "message", f.Message)
			hard = append(hard, errs.NewConfigurationInvalidErrorWithCause(f.Param, errors.New(f.Message)))
		case SeverityWarning:
			logger.WarnContext(ctx, "configuration warning", "param", f.Param, "message", f.Message)
		}
	}

	if throwOnError && len(hard) > 0 {
		return findings, errors.Join(hard...)
	}
	return findings, nil
}

func (c *Config) checkMailerAPIKey() []Finding {
	if c.MailerAPIKey == "" {
		return []Finding{{
			Severity: SeverityError,
			Param:    "MAILER_API_KEY",
			Message:  "transport credential is missing",
		}}
	}
	if isPlaceholder(c.MailerAPIKey) {
		return []Finding{{
			Severity: SeverityError,
			Param:    "MAILER_API_KEY",
			Message:  "transport credential is a placeholder value",
		}}
	}
	if !strings.HasPrefix(c.MailerAPIKey, MailerKeyPrefix) {
		return []Finding{{
			Severity: SeverityError,
			Param:    "MAILER_API_KEY",
			Message:  fmt.Sprintf("transport credential does not start with the provider prefix %q", MailerKeyPrefix),
		}}
	}
	return nil
}

func (c *Config) checkMailerFrom() []Finding {
	if c.MailerFrom == "" {
		c.MailerFrom = DefaultMailerFrom
		return []Finding{{
			Severity: SeverityWarning,
			Param:    "MAILER_FROM",
			Message:  fmt.Sprintf("sender address is missing, defaulting to %s", DefaultMailerFrom),
		}}
	}
	if !emailPattern.MatchString(c.MailerFrom) {
		return []Finding{{
			Severity: SeverityError,
			Param:    "MAILER_FROM",
			Message:  "sender address is not a valid email address",
		}}
	}
	return nil
}

func (c *Config) checkWebhookSecret() []Finding {
	if c.WebhookSecret == "" {
		return []Finding{{
			Severity: SeverityError,
			Param:    "WEBHOOK_SECRET",
			Message:  "shared webhook secret is missing",
		}}
	}
	if isPlaceholder(c.WebhookSecret) {
		return []Finding{{
			Severity: SeverityError,
			Param:    "WEBHOOK_SECRET",
			Message:  "shared webhook secret is a placeholder value",
		}}
	}
	if len(c.WebhookSecret) < MinWebhookSecretLength {
		return []Finding{{
			Severity: SeverityWarning,
			Param:    "WEBHOOK_SECRET",
			Message:  fmt.Sprintf("shared webhook secret is shorter than %d characters", MinWebhookSecretLength),
		}}
	}
	return nil
}

func (c *Config) checkRecipientOverride() []Finding {
	if c.RecipientOverride == "" {
		return nil
	}

	findings := make([]Finding, 0, 2)
	if !emailPattern.MatchString(c.RecipientOverride) {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Param:    "NOTIFICATION_RECIPIENT_OVERRIDE",
			Message:  "recipient override is not a valid email address",
		})
	}

	// A production override silently redirects every customer email.
	// Surfaced loudly but deliberately not blocked.
	if c.Tier == TierProduction {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Param:    "NOTIFICATION_RECIPIENT_OVERRIDE",
			Message:  "recipient override is set in PRODUCTION: all customer email will be redirected",
		})
	}
	return findings
}

func (c *Config) checkExposedSecrets() []Finding {
	findings := make([]Finding, 0, len(c.ExposedSecretVars))
	for _, name := range c.ExposedSecretVars {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Param:    name,
			Message:  "credential is exposed in a public/client-visible configuration namespace",
		})
	}
	return findings
}
