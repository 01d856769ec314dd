package http

import (
	"net/http"

	"brokerage/internal/core/application/usecases/commands"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/resource"

	"github.com/labstack/echo/v4"
)

// AddDriver handles POST /drivers.
func (s *Server) AddDriver(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body AddDriverBody
	if err = c.Bind(&body); err != nil {
		return s.badRequest(c, "Invalid driver body")
	}
	addresses, err := joinAddresses(body.Addresses)
	if err != nil {
		return s.fail(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewAddDriverCommand(id, body.Name, addresses, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Resources.AddDriver(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// AddVehicle handles POST /vehicles. Rules are optional.
func (s *Server) AddVehicle(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body AddVehicleBody
	if err = c.Bind(&body); err != nil {
		return s.badRequest(c, "Invalid vehicle body")
	}
	country, err := kernel.NewCountry(body.Country)
	if err != nil {
		return s.fail(c, err)
	}
	rules, err := body.Rules.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewAddVehicleCommand(id, body.Plate, country, rules, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Resources.AddVehicle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// AddWarehouse handles POST /warehouses.
func (s *Server) AddWarehouse(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body AddWarehouseBody
	if err = c.Bind(&body); err != nil {
		return s.badRequest(c, "Invalid warehouse body")
	}
	companyID, err := parseID("company id", body.CompanyID)
	if err != nil {
		return s.fail(c, err)
	}
	address, err := body.Address.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewAddWarehouseCommand(id, companyID, body.Name, address, body.Capacity, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Resources.AddWarehouse(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// ChangeVehicleStatus handles POST /vehicles/:id/status.
func (s *Server) ChangeVehicleStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var body StatusBody
	if err = c.Bind(&body); err != nil {
		return s.badRequest(c, "Invalid status body")
	}
	target, err := resource.ParseVehicleStatus(body.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewChangeVehicleStatusCommand(id, target, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Resources.ChangeVehicleStatus(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeWarehouseStatus handles POST /warehouses/:id/status.
func (s *Server) ChangeWarehouseStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var body StatusBody
	if err = c.Bind(&body); err != nil {
		return s.badRequest(c, "Invalid status body")
	}
	target, err := resource.ParseWarehouseStatus(body.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewChangeWarehouseStatusCommand(id, target, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Resources.ChangeWarehouseStatus(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AdjustWarehouseStock handles POST /warehouses/:id/stock.
func (s *Server) AdjustWarehouseStock(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var body StockBody
	if err = c.Bind(&body); err != nil {
		return s.badRequest(c, "Invalid stock body")
	}

	cmd, err := commands.NewAdjustWarehouseStockCommand(id, body.Delta, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Resources.AdjustWarehouseStock(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
