// Package kernel contains shared value objects used across the domain model:
// order identifiers and user identifiers. These types are immutable, validate
// themselves on construction, and are safe for concurrent use.
package kernel
