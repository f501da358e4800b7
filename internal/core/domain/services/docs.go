// Package services contains stateless domain services that coordinate
// behavior across aggregates, such as matching a new shipment to an eligible
// relay point.
package services
