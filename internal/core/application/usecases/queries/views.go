package queries

import (
	"time"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
)

// RequestView is the read representation of a shipment request.
type RequestView struct {
	ID                  string            `json:"id"`
	ClientID            string            `json:"clientId"`
	Source              EndpointView      `json:"source"`
	Destination         EndpointView      `json:"destination"`
	Items               []ItemView        `json:"items"`
	DeliveryKind        string            `json:"deliveryKind"`
	CommercialStatus    string            `json:"commercialStatus"`
	DeliveryStatus      string            `json:"deliveryStatus"`
	PrimaryCost         *string           `json:"primaryCost,omitempty"`
	AssignedCompanyID   *string           `json:"assignedCompanyId,omitempty"`
	AssignedWarehouseID *string           `json:"assignedWarehouseId,omitempty"`
	AssignmentID        *string           `json:"assignmentId,omitempty"`
	CostOffers          []OfferView       `json:"costOffers"`
	CommercialHistory   []StatusEventView `json:"commercialStatusHistory"`
	DeliveryHistory     []StatusEventView `json:"deliveryStatusHistory"`
	ExcludedCompanies   []string          `json:"excludedCompanies"`
	Version             int64             `json:"version"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

type EndpointView struct {
	Country             string     `json:"country"`
	City                string     `json:"city"`
	Line                string     `json:"line,omitempty"`
	PostalCode          string     `json:"postalCode,omitempty"`
	PickupMode          string     `json:"pickupMode"`
	WarehouseID         *string    `json:"warehouseId,omitempty"`
	WarehouseAssignedAt *time.Time `json:"warehouseAssignedAt,omitempty"`
}

type ItemView struct {
	WeightKg string `json:"weightKg"`
	LengthCm string `json:"lengthCm"`
	WidthCm  string `json:"widthCm"`
	HeightCm string `json:"heightCm"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type OfferView struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Cost      string    `json:"cost"`
	Comment   string    `json:"comment,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type StatusEventView struct {
	Status  string    `json:"status"`
	ActorID string    `json:"actorId"`
	At      time.Time `json:"at"`
}

type DriverView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Countries []string `json:"countries"`
}

type VehicleView struct {
	ID      string `json:"id"`
	Plate   string `json:"plate"`
	Country string `json:"country"`
	Status  string `json:"status"`
}

type AuditEntryView struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	ActorID      string         `json:"actorId"`
	ActorRole    string         `json:"actorRole"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resourceType"`
	ResourceID   string         `json:"resourceId"`
	Changes      map[string]any `json:"changes,omitempty"`
}

func newRequestView(r *request.ShipmentRequest) RequestView {
	v := RequestView{
		ID:                r.ID().String(),
		ClientID:          r.ClientID().String(),
		Source:            newEndpointView(r.Source()),
		Destination:       newEndpointView(r.Destination()),
		DeliveryKind:      r.DeliveryKind().String(),
		CommercialStatus:  r.CommercialStatus().String(),
		DeliveryStatus:    r.DeliveryStatus().String(),
		Version:           r.Version(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
		Items:             make([]ItemView, 0),
		CostOffers:        make([]OfferView, 0),
		CommercialHistory: make([]StatusEventView, 0),
		DeliveryHistory:   make([]StatusEventView, 0),
		ExcludedCompanies: make([]string, 0),
	}
	if c := r.PrimaryCost(); c != nil {
		s := c.String()
		v.PrimaryCost = &s
	}
	if id := r.AssignedCompanyID(); id != nil {
		s := id.String()
		v.AssignedCompanyID = &s
	}
	if id := r.AssignedWarehouseID(); id != nil {
		s := id.String()
		v.AssignedWarehouseID = &s
	}
	if id := r.AssignmentID(); id != nil {
		s := id.String()
		v.AssignmentID = &s
	}

	for _, it := range r.Items() {
		d := it.Dimensions()
		v.Items = append(v.Items, ItemView{
			WeightKg: it.WeightKg().String(),
			LengthCm: d.Length().String(),
			WidthCm:  d.Width().String(),
			HeightCm: d.Height().String(),
			Category: it.Category(),
			Quantity: it.Quantity(),
		})
	}
	for _, o := range r.CostOffers() {
		v.CostOffers = append(v.CostOffers, OfferView{
			ID:        o.ID().String(),
			CompanyID: o.CompanyID().String(),
			Cost:      o.Cost().String(),
			Comment:   o.Comment(),
			Status:    o.Status().String(),
			CreatedAt: o.CreatedAt(),
		})
	}
	for _, ev := range r.CommercialHistory() {
		v.CommercialHistory = append(v.CommercialHistory, StatusEventView{ev.Status.String(), ev.ActorID.String(), ev.At})
	}
	for _, ev := range r.DeliveryHistory() {
		v.DeliveryHistory = append(v.DeliveryHistory, StatusEventView{ev.Status.String(), ev.ActorID.String(), ev.At})
	}
	for _, id := range r.ExcludedCompanies() {
		v.ExcludedCompanies = append(v.ExcludedCompanies, id.String())
	}
	return v
}

func newEndpointView(e request.Endpoint) EndpointView {
	a := e.Address()
	v := EndpointView{
		Country:             a.Country().Name(),
		City:                a.City(),
		Line:                a.Line(),
		PostalCode:          a.PostalCode(),
		PickupMode:          e.PickupMode().String(),
		WarehouseAssignedAt: e.WarehouseAssignedAt(),
	}
	if id := e.WarehouseID(); id != nil {
		s := id.String()
		v.WarehouseID = &s
	}
	return v
}

func newDriverView(d *resource.Driver) DriverView {
	countries := make([]string, 0)
	for _, c := range d.Countries() {
		countries = append(countries, c.Name())
	}
	return DriverView{ID: d.ID().String(), Name: d.Name(), Countries: countries}
}

func newVehicleView(v *resource.Vehicle) VehicleView {
	return VehicleView{
		ID:      v.ID().String(),
		Plate:   v.Plate(),
		Country: v.Country().Name(),
		Status:  v.Status().String(),
	}
}

func newAuditEntryView(e *audit.Entry) AuditEntryView {
	return AuditEntryView{
		ID:           e.ID().String(),
		Timestamp:    e.Timestamp(),
		ActorID:      e.Actor().ID.String(),
		ActorRole:    string(e.Actor().Role),
		Action:       e.Action().String(),
		ResourceType: string(e.ResourceType()),
		ResourceID:   e.ResourceID().String(),
		Changes:      e.Changes(),
	}
}
