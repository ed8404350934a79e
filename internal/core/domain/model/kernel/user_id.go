package kernel

import "strconv"

// UserID is a value object that represents a customer account identifier.
// Unlike OrderID, every int64 is a representable user id: the surrounding
// identity system issues negative and zero ids in some legacy tiers, so no
// range restriction is applied here. Equality is strict numeric equality.
type UserID int64

// NewUserID wraps a raw identifier from the identity system.
func NewUserID(raw int64) UserID {
	return UserID(raw)
}

// Int64 returns the raw numeric identifier.
func (id UserID) Int64() int64 {
	return int64(id)
}

// String returns the decimal representation, used in audit records and logs.
func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsEqual compares two user identifiers with strict numeric equality.
func (id UserID) IsEqual(other UserID) bool {
	return id == other
}
