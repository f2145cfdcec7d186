// Package domain contains the core domain model for the marketplace.
//
// This package defines:
//   - Entities: Core business objects with identity (e.g., Shed, Product, Preorder)
//   - The domain registry: the fixed set of shed categories and their capacities
//   - The access policy: pure role-based permission checks
//   - Domain Errors: Business rule violation errors
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Entities should validate their own invariants
package domain
