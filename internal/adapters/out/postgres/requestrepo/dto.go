// Package requestrepo provides data transfer objects and mapping functions for
// shipment request persistence. A request is stored as one row in
// shipment_requests plus child rows for items, cost offers, status history
// and company exclusions.
package requestrepo

import (
	"time"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	trackCommercial = "commercial"
	trackDelivery   = "delivery"
)

// ShipmentRequestDTO is the root row of a request. Indexed by commercial
// status and assigned company for the company queue.
type ShipmentRequestDTO struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ClientID            uuid.UUID        `gorm:"type:uuid;not null;index"`
	Source              EndpointDTO      `gorm:"embedded;embeddedPrefix:source_"`
	Destination         EndpointDTO      `gorm:"embedded;embeddedPrefix:destination_"`
	DeliveryKind        int              `gorm:"type:smallint;not null"`
	CommercialStatus    int              `gorm:"type:smallint;not null;index"`
	DeliveryStatus      int              `gorm:"type:smallint;not null"`
	PrimaryCost         *decimal.Decimal `gorm:"type:numeric(14,2)"`
	AssignedCompanyID   *uuid.UUID       `gorm:"type:uuid;index"`
	AssignedWarehouseID *uuid.UUID       `gorm:"type:uuid"`
	AssignmentID        *uuid.UUID       `gorm:"type:uuid"`
	Version             int64            `gorm:"not null"`
	CreatedAt           time.Time        `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt           time.Time        `gorm:"not null;autoUpdateTime:false"`

	Items        []ItemDTO        `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	CostOffers   []CostOfferDTO   `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	StatusEvents []StatusEventDTO `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	Exclusions   []ExclusionDTO   `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

func (ShipmentRequestDTO) TableName() string {
	return "shipment_requests"
}

// EndpointDTO is embedded twice in the request row, once per side.
type EndpointDTO struct {
	Country             string     `gorm:"type:varchar(64);not null"`
	City                string     `gorm:"type:varchar(255);not null"`
	Line                string     `gorm:"type:varchar(255)"`
	PostalCode          string     `gorm:"type:varchar(32)"`
	PickupMode          int        `gorm:"type:smallint;not null"`
	WarehouseID         *uuid.UUID `gorm:"type:uuid"`
	WarehouseAssignedAt *time.Time
}

type ItemDTO struct {
	RequestID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	WeightKg  decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Length    decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Width     decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Height    decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Category  string          `gorm:"type:varchar(128);not null"`
	Quantity  int             `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "request_items"
}

type CostOfferDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RequestID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cost      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Comment   string          `gorm:"type:text"`
	Status    int             `gorm:"type:smallint;not null"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime:false"`
}

func (CostOfferDTO) TableName() string {
	return "cost_offers"
}

// StatusEventDTO is one entry of either history track. Rows are only ever
// inserted.
type StatusEventDTO struct {
	RequestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Track     string    `gorm:"type:varchar(16);primaryKey"`
	Seq       int       `gorm:"primaryKey;autoIncrement:false"`
	Status    int       `gorm:"type:smallint;not null"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null"`
	At        time.Time `gorm:"not null"`
}

func (StatusEventDTO) TableName() string {
	return "request_status_events"
}

type ExclusionDTO struct {
	RequestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ExclusionDTO) TableName() string {
	return "request_exclusions"
}

// fromDomain converts a request aggregate to its database representation
// including every child row.
func fromDomain(r *request.ShipmentRequest) ShipmentRequestDTO {
	s := r.Snapshot()
	id := s.ID.Bytes()

	dto := ShipmentRequestDTO{
		ID:                  id,
		ClientID:            s.ClientID.Bytes(),
		Source:              endpointFromDomain(s.Source),
		Destination:         endpointFromDomain(s.Destination),
		DeliveryKind:        int(s.DeliveryKind),
		CommercialStatus:    int(s.CommercialStatus),
		DeliveryStatus:      int(s.DeliveryStatus),
		AssignedCompanyID:   rawUUID(s.AssignedCompanyID),
		AssignedWarehouseID: rawUUID(s.AssignedWarehouseID),
		AssignmentID:        rawUUID(s.AssignmentID),
		Version:             s.Version,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	if s.PrimaryCost != nil {
		cost := s.PrimaryCost.Amount()
		dto.PrimaryCost = &cost
	}

	dto.Items = make([]ItemDTO, 0, len(s.Items))
	for pos, it := range s.Items {
		dto.Items = append(dto.Items, ItemDTO{
			RequestID: id,
			Position:  pos,
			WeightKg:  it.WeightKg(),
			Length:    it.Dimensions().Length(),
			Width:     it.Dimensions().Width(),
			Height:    it.Dimensions().Height(),
			Category:  it.Category(),
			Quantity:  it.Quantity(),
		})
	}

	dto.CostOffers = make([]CostOfferDTO, 0, len(s.CostOffers))
	for pos, o := range s.CostOffers {
		dto.CostOffers = append(dto.CostOffers, CostOfferDTO{
			ID:        o.ID().Bytes(),
			RequestID: id,
			Position:  pos,
			CompanyID: o.CompanyID().Bytes(),
			Cost:      o.Cost().Amount(),
			Comment:   o.Comment(),
			Status:    int(o.Status()),
			CreatedAt: o.CreatedAt(),
		})
	}

	dto.StatusEvents = make([]StatusEventDTO, 0, len(s.CommercialHistory)+len(s.DeliveryHistory))
	for seq, ev := range s.CommercialHistory {
		dto.StatusEvents = append(dto.StatusEvents, StatusEventDTO{
			RequestID: id, Track: trackCommercial, Seq: seq,
			Status: int(ev.Status), ActorID: ev.ActorID.Bytes(), At: ev.At,
		})
	}
	for seq, ev := range s.DeliveryHistory {
		dto.StatusEvents = append(dto.StatusEvents, StatusEventDTO{
			RequestID: id, Track: trackDelivery, Seq: seq,
			Status: int(ev.Status), ActorID: ev.ActorID.Bytes(), At: ev.At,
		})
	}

	dto.Exclusions = make([]ExclusionDTO, 0, len(s.ExcludedCompanies))
	for _, c := range s.ExcludedCompanies {
		dto.Exclusions = append(dto.Exclusions, ExclusionDTO{RequestID: id, CompanyID: c.Bytes()})
	}
	return dto
}

func endpointFromDomain(e request.Endpoint) EndpointDTO {
	a := e.Address()
	return EndpointDTO{
		Country:             a.Country().Name(),
		City:                a.City(),
		Line:                a.Line(),
		PostalCode:          a.PostalCode(),
		PickupMode:          int(e.PickupMode()),
		WarehouseID:         rawUUID(e.WarehouseID()),
		WarehouseAssignedAt: e.WarehouseAssignedAt(),
	}
}

// toDomain rebuilds the aggregate. Child rows must be ordered by position
// and sequence.
func toDomain(dto ShipmentRequestDTO) (*request.ShipmentRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	source, err := endpointToDomain(dto.Source)
	if err != nil {
		return nil, err
	}
	destination, err := endpointToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}

	s := request.Snapshot{
		ID:                  id,
		ClientID:            clientID,
		Source:              source,
		Destination:         destination,
		DeliveryKind:        request.DeliveryKind(dto.DeliveryKind),
		CommercialStatus:    request.CommercialStatus(dto.CommercialStatus),
		DeliveryStatus:      request.DeliveryStatus(dto.DeliveryStatus),
		AssignedCompanyID:   domainUUID(dto.AssignedCompanyID),
		AssignedWarehouseID: domainUUID(dto.AssignedWarehouseID),
		AssignmentID:        domainUUID(dto.AssignmentID),
		Version:             dto.Version,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
	}
	if dto.PrimaryCost != nil {
		cost, costErr := kernel.NewMoney(*dto.PrimaryCost)
		if costErr != nil {
			return nil, costErr
		}
		s.PrimaryCost = &cost
	}

	s.Items = make([]request.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		dims, dimsErr := request.NewDimensions(it.Length, it.Width, it.Height)
		if dimsErr != nil {
			return nil, dimsErr
		}
		item, itemErr := request.NewItem(it.WeightKg, dims, it.Category, it.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		s.Items = append(s.Items, item)
	}

	s.CostOffers = make([]request.CostOffer, 0, len(dto.CostOffers))
	for _, o := range dto.CostOffers {
		offer, offerErr := offerToDomain(o)
		if offerErr != nil {
			return nil, offerErr
		}
		s.CostOffers = append(s.CostOffers, *offer)
	}

	for _, ev := range dto.StatusEvents {
		actorID, actorErr := kernel.UUIDFromBytes(ev.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}
		switch ev.Track {
		case trackCommercial:
			s.CommercialHistory = append(s.CommercialHistory, request.StatusEvent[request.CommercialStatus]{
				Status: request.CommercialStatus(ev.Status), ActorID: actorID, At: ev.At.UTC(),
			})
		case trackDelivery:
			s.DeliveryHistory = append(s.DeliveryHistory, request.StatusEvent[request.DeliveryStatus]{
				Status: request.DeliveryStatus(ev.Status), ActorID: actorID, At: ev.At.UTC(),
			})
		}
	}

	s.ExcludedCompanies = make([]kernel.UUID, 0, len(dto.Exclusions))
	for _, ex := range dto.Exclusions {
		companyID, exErr := kernel.UUIDFromBytes(ex.CompanyID[:])
		if exErr != nil {
			return nil, exErr
		}
		s.ExcludedCompanies = append(s.ExcludedCompanies, companyID)
	}

	return request.RestoreShipmentRequest(s)
}

func endpointToDomain(dto EndpointDTO) (request.Endpoint, error) {
	country, err := kernel.NewCountry(dto.Country)
	if err != nil {
		return request.Endpoint{}, err
	}
	address, err := kernel.NewAddress(country, dto.City, dto.Line, dto.PostalCode)
	if err != nil {
		return request.Endpoint{}, err
	}
	var assignedAt *time.Time
	if dto.WarehouseAssignedAt != nil {
		at := dto.WarehouseAssignedAt.UTC()
		assignedAt = &at
	}
	return request.RestoreEndpoint(address, request.PickupMode(dto.PickupMode), domainUUID(dto.WarehouseID), assignedAt)
}

func offerToDomain(dto CostOfferDTO) (*request.CostOffer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	cost, err := kernel.NewMoney(dto.Cost)
	if err != nil {
		return nil, err
	}
	return request.RestoreCostOffer(id, companyID, cost, dto.Comment, request.OfferStatus(dto.Status), dto.CreatedAt.UTC())
}

func rawUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainUUID(raw *uuid.UUID) *kernel.UUID {
	if raw == nil {
		return nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil
	}
	return &id
}
