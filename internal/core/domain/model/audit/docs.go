// Package audit defines the append-only audit trail: who (Actor) did what
// (Action) to which resource, and the fields that changed.
//
// Commercial transitions are recorded as ORDER_<TARGET> and delivery
// transitions as DELIVERY_<TARGET>; other mutations use the Action constants.
// Entries are never updated or deleted.
package audit
