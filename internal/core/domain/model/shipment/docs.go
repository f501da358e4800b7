// Package shipment contains the courier workflow aggregate: the Shipment
// root, its append-only DeliveryStep timeline, the Status state machine, and
// the three-slot verification code scheme (unique, delivery, traveler).
//
// All workflow mutations flow through Shipment operation methods, which check
// the presented verification code and the status precondition before touching
// any state, and append exactly one timeline entry per mutation.
package shipment
