// Package request holds the ShipmentRequest aggregate: the dual state machine
// (commercial and delivery status), cost offer negotiation and the warehouse
// bindings of both endpoints.
//
// The package includes:
//   - ShipmentRequest: the aggregate root and its Snapshot for persistence
//   - CommercialStatus and DeliveryStatus: tagged enums with pure transition validators
//   - CostOffer: a bid by a shipping company, Pending until accepted or rejected
//   - Endpoint, Item and Dimensions: what is shipped and between which addresses
//   - ReplayCommercial and ReplayDelivery: re-derive status from history
//
// Key business rules:
//   - Commercial: Pending -> Accepted -> ActionNeeded -> InProgress -> Completed,
//     Rejected from Pending or Accepted
//   - Delivery moves one step at a time, Failed and Cancelled from any non-terminal status,
//     and only after the commercial status reached Accepted
//   - A company holds at most MaxOpenOffersPerCompany non-rejected offers per request
//   - Self pickup sides need a warehouse before delivery leaves Pending
package request
