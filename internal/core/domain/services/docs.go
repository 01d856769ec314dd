// Package services provides domain services that coordinate several aggregates
// of the brokerage domain.
//
// The package includes:
//   - ResourceMatcher: filters drivers and vehicles for an accepted request and
//     creates the Assignment for a chosen pair
//
// Domain services hold no state and perform no I/O; the command handlers load
// the aggregates, call the service and persist the result.
package services
