// Package kernel provides the shared value objects of the brokerage domain.
//
// The package includes:
//   - UUID: identifiers for every entity and aggregate
//   - Country and Address: geography used by the resource matcher
//   - Money: non-negative decimal amounts for cost offers and the primary cost
//
// Value objects are immutable and validated at construction; their zero values
// fail Validate so that a struct literal cannot slip past the constructors.
package kernel
