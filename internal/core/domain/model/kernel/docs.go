// Package kernel contains shared value objects used across the domain model:
// UUID identifiers, geographic coordinates, and decimal-as-string prices.
// All types in this package are immutable and constructed through factory
// functions that enforce their invariants.
package kernel
