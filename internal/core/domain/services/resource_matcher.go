package services

import (
	"fmt"
	"time"

	"brokerage/internal/core/domain/model/assignment"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
)

// ResourceMatcher decides which drivers and vehicles may serve an accepted
// request and builds the Assignment for the pair a dispatcher picked.
//
// Matching is human-in-the-loop: candidates are filtered, never ranked.
//
// Business rules:
//   - Candidate drivers have at least one address in the source country
//   - Candidate vehicles are Available and registered in the source country
//   - The vehicle's rules, when present, must admit every item of the request
//
// Example usage:
//
//	matcher := services.NewResourceMatcher()
//	drivers := matcher.CandidateDrivers(req, allDrivers)
//	a, err := matcher.Bind(req, drivers[0], vehicle, kernel.NewUUID(), time.Now())
//	if errors.Is(err, resource.ErrCapacityExceeded) {
//	    // pick another vehicle
//	}
type ResourceMatcher struct{}

func NewResourceMatcher() ResourceMatcher {
	return ResourceMatcher{}
}

// CandidateDrivers keeps the drivers with an address in the request's source country.
func (m ResourceMatcher) CandidateDrivers(req *request.ShipmentRequest, drivers []*resource.Driver) []*resource.Driver {
	country := req.Source().Address().Country()
	out := make([]*resource.Driver, 0, len(drivers))
	for _, d := range drivers {
		if d.Validate() == nil && d.HasAddressIn(country) {
			out = append(out, d)
		}
	}
	return out
}

// CandidateVehicles keeps the Available vehicles registered in the source country.
func (m ResourceMatcher) CandidateVehicles(req *request.ShipmentRequest, vehicles []*resource.Vehicle) []*resource.Vehicle {
	country := req.Source().Address().Country()
	out := make([]*resource.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Validate() == nil && v.IsAvailable() && v.OperatesIn(country) {
			out = append(out, v)
		}
	}
	return out
}

// ValidateBinding checks every rule a driver/vehicle pair must satisfy for req.
// The vehicle's availability is read from the loaded value; the repository
// compare-and-swap remains the final arbiter under concurrency.
func (m ResourceMatcher) ValidateBinding(req *request.ShipmentRequest, driver *resource.Driver, vehicle *resource.Vehicle) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := driver.Validate(); err != nil {
		return err
	}
	if err := vehicle.Validate(); err != nil {
		return err
	}

	if req.CommercialStatus() != request.CommercialAccepted {
		return fmt.Errorf("%w: commercial status is %s", request.ErrRequestNotAccepted, req.CommercialStatus())
	}
	if req.AssignmentID() != nil {
		return fmt.Errorf("%w: %s", request.ErrAssignmentExists, req.AssignmentID())
	}

	country := req.Source().Address().Country()
	if !driver.HasAddressIn(country) {
		return fmt.Errorf("%w: driver %s, source country %s", resource.ErrNoEligibleDriver, driver.ID(), country)
	}
	if !vehicle.IsAvailable() {
		return fmt.Errorf("%w: vehicle %s is %s", resource.ErrVehicleUnavailable, vehicle.ID(), vehicle.Status())
	}
	if !vehicle.OperatesIn(country) {
		return fmt.Errorf("%w: vehicle %s is registered in %s, source country %s",
			request.ErrCountryMismatch, vehicle.ID(), vehicle.Country(), country)
	}
	if rules := vehicle.Rules(); rules != nil {
		if err := rules.Check(req.Items()); err != nil {
			return err
		}
	}
	return nil
}

// Bind validates the pair, creates the Assignment and records it on the request.
func (m ResourceMatcher) Bind(
	req *request.ShipmentRequest,
	driver *resource.Driver,
	vehicle *resource.Vehicle,
	assignmentID kernel.UUID,
	at time.Time,
) (*assignment.Assignment, error) {
	if err := m.ValidateBinding(req, driver, vehicle); err != nil {
		return nil, err
	}

	a, err := assignment.NewAssignment(assignmentID, req.ID(), driver.ID(), vehicle.ID(), at)
	if err != nil {
		return nil, err
	}
	if err = req.BindAssignment(a.ID(), at); err != nil {
		return nil, err
	}
	return a, nil
}
