// Package resource models the drivers, vehicles and warehouses that the
// resource matcher binds to accepted shipment requests. Resources are owned
// independently of requests and referenced by id.
package resource
