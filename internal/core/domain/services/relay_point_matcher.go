package services

import (
	"errors"
	"math"

	"docurgent/internal/core/domain/model/relaypoint"
)

// ErrNoRelayPointAvailable is returned when no eligible relay point can be
// matched to a new shipment. This occurs when either no relay points are
// provided or none of the provided relay points is both active and verified.
var ErrNoRelayPointAvailable = errors.New("no relay point available")

// RelayPointMatcher is a domain service responsible for selecting the relay
// point that will custody a new shipment's envelope.
//
// Business rules:
//   - Only active and verified relay points are eligible
//   - Selection must be deterministic for a given candidate set
//   - A shipment is matched to exactly one relay point at creation
//
// Implementations differ only in their ranking of eligible candidates.
type RelayPointMatcher interface {
	// Match selects a relay point for the shipment dropped off at the given
	// origin. Returns ErrNoRelayPointAvailable when no candidate is eligible.
	Match(origin *relaypoint.RelayPoint, candidates []*relaypoint.RelayPoint) (*relaypoint.RelayPoint, error)
}

// FirstActiveMatcher selects the first eligible relay point in candidate
// order. Candidate order is the repository's registration order, which keeps
// the selection stable across retries.
type FirstActiveMatcher struct{}

// NewFirstActiveMatcher creates a new FirstActiveMatcher instance.
func NewFirstActiveMatcher() FirstActiveMatcher {
	return FirstActiveMatcher{}
}

// Match returns the first active and verified candidate. The origin is
// ignored; this matcher does not rank by proximity.
func (m FirstActiveMatcher) Match(_ *relaypoint.RelayPoint, candidates []*relaypoint.RelayPoint) (*relaypoint.RelayPoint, error) {
	for _, rp := range candidates {
		if err := rp.Validate(); err != nil {
			return nil, err
		}

		if rp.IsEligible() {
			return rp, nil
		}
	}

	return nil, ErrNoRelayPointAvailable
}

// NearestMatcher selects the eligible relay point closest to the origin by
// great-circle distance. Candidates without coordinates are skipped; when the
// origin itself has no coordinates the matcher falls back to first-active
// selection.
type NearestMatcher struct{}

// NewNearestMatcher creates a new NearestMatcher instance.
func NewNearestMatcher() NearestMatcher {
	return NearestMatcher{}
}

// Match returns the eligible candidate with minimum distance to the origin.
// Ties resolve to the first candidate in order.
func (m NearestMatcher) Match(origin *relaypoint.RelayPoint, candidates []*relaypoint.RelayPoint) (*relaypoint.RelayPoint, error) {
	if origin == nil || origin.Geo() == nil {
		return NewFirstActiveMatcher().Match(origin, candidates)
	}

	var (
		best     *relaypoint.RelayPoint
		bestDist = math.MaxFloat64
	)

	for _, rp := range candidates {
		if err := rp.Validate(); err != nil {
			return nil, err
		}

		if !rp.IsEligible() || rp.Geo() == nil {
			continue
		}

		dist := origin.Geo().DistanceKmTo(*rp.Geo())
		if dist < bestDist {
			bestDist = dist
			best = rp
		}
	}

	if best == nil {
		return nil, ErrNoRelayPointAvailable
	}

	return best, nil
}
