// Package identityrepo resolves bearer tokens against the api_tokens table.
package identityrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// TokenDTO maps one issued API token row.
type TokenDTO struct {
	Token     string `gorm:"primaryKey"`
	UserID    int64
	ExpiresAt *time.Time
}

// TableName overrides GORM's default naming to use "api_tokens".
func (TokenDTO) TableName() string {
	return "api_tokens"
}

// GormIdentityResolver implements ports.IdentityResolver using GORM.
type GormIdentityResolver struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormIdentityResolver creates a new GORM identity resolver.
func NewGormIdentityResolver(db *gorm.DB) *GormIdentityResolver {
	return &GormIdentityResolver{db: db, now: time.Now}
}

// ResolveBearer looks the token up and returns the owning user. Unknown and
// expired tokens fail with errs.ErrAuthenticationFailed; storage failures
// surface as wrapped errors so the caller can distinguish an outage from a
// bad credential.
func (r *GormIdentityResolver) ResolveBearer(ctx context.Context, token string) (kernel.UserID, error) {
	var dto TokenDTO

	err := r.db.WithContext(ctx).First(&dto, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UserID(0), errs.NewAuthenticationFailedError("unknown token")
		}
		return kernel.UserID(0), fmt.Errorf("token lookup: %w", err)
	}

	if dto.ExpiresAt != nil && dto.ExpiresAt.Before(r.now()) {
		return kernel.UserID(0), errs.NewAuthenticationFailedError("token expired")
	}

	return kernel.NewUserID(dto.UserID), nil
}
