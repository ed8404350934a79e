// Package services provides domain services for the order lifecycle core:
// pure logic that spans the order aggregate without belonging to it.
//
// The package includes:
//   - OwnershipValidator: decides whether a requesting user may view an order
//     and emits the access-audit trail
//   - Timeline classification: derives completed/current/pending flags for the
//     canonical status progression
//   - Estimator: turns shipment timestamps into a delivery-date estimate
package services
