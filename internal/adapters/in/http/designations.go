package http

import (
	"net/http"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// DesignatePackage handles POST /api/v1/packages/:id/designate. Without a quantity the
// whole received quantity is designated, moving it away from any other order.
func (s *Server) DesignatePackage(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	packageID, err := pathID(c)
	if err != nil {
		return err
	}
	var req designateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return err
	}
	ordersPackageID, err := kernel.OptionalUUIDFromString(req.OrdersPackageID)
	if err != nil {
		return err
	}

	quantity := services.FullReceived()
	if req.Quantity != nil {
		quantity = services.Exactly(*req.Quantity)
	}

	cmd, err := commands.NewDesignatePackageCommand(packageID, orderID, quantity, ordersPackageID, actor, s.now())
	if err != nil {
		return err
	}
	result, err := s.h.DesignatePackage.Handle(c.Request().Context(), cmd)
	return s.designationReply(c, result, err)
}

// UndesignatePackage handles POST /api/v1/packages/:id/undesignate.
func (s *Server) UndesignatePackage(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	packageID, err := pathID(c)
	if err != nil {
		return err
	}
	var req undesignateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ordersPackageID, err := kernel.UUIDFromString(req.OrdersPackageID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUndesignatePackageCommand(
		packageID, ordersPackageID, req.Quantity, req.ReturnToRequested, actor, s.now(),
	)
	if err != nil {
		return err
	}
	result, err := s.h.UndesignatePackage.Handle(c.Request().Context(), cmd)
	return s.designationReply(c, result, err)
}

// AddPartiallyDesignatedItem handles POST /api/v1/packages/:id/partial_designations.
func (s *Server) AddPartiallyDesignatedItem(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	packageID, err := pathID(c)
	if err != nil {
		return err
	}
	var req partialDesignationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddPartiallyDesignatedItemCommand(packageID, orderID, req.Quantity, actor)
	if err != nil {
		return err
	}
	result, err := s.h.AddPartiallyDesignatedItem.Handle(c.Request().Context(), cmd)
	return s.designationReply(c, result, err)
}

// DesignateStockitItem handles POST /api/v1/packages/:id/stockit_designation and replays
// the current designation to Stockit.
func (s *Server) DesignateStockitItem(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	packageID, err := pathID(c)
	if err != nil {
		return err
	}
	var req stockitDesignationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDesignateStockitItemCommand(packageID, orderID, s.now())
	if err != nil {
		return err
	}
	if err := s.h.DesignateStockitItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DispatchOrdersPackage handles POST /api/v1/orders_packages/:id/dispatch.
func (s *Server) DispatchOrdersPackage(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDispatchOrdersPackageCommand(id, actor, s.now())
	if err != nil {
		return err
	}
	result, err := s.h.DispatchOrdersPackage.Handle(c.Request().Context(), cmd)
	return s.designationReply(c, result, err)
}

// UndispatchOrdersPackage handles POST /api/v1/orders_packages/:id/undispatch.
func (s *Server) UndispatchOrdersPackage(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUndispatchOrdersPackageCommand(id, actor)
	if err != nil {
		return err
	}
	result, err := s.h.UndispatchOrdersPackage.Handle(c.Request().Context(), cmd)
	return s.designationReply(c, result, err)
}

// RejectOrdersPackage handles POST /api/v1/orders_packages/:id/reject.
func (s *Server) RejectOrdersPackage(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRejectOrdersPackageCommand(id, actor)
	if err != nil {
		return err
	}
	result, err := s.h.RejectOrdersPackage.Handle(c.Request().Context(), cmd)
	return s.designationReply(c, result, err)
}

// UpdateQuantity handles PUT /api/v1/orders_packages/:id/quantity. The entry takes the
// package's current quantity.
func (s *Server) UpdateQuantity(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateOrdersPackageQuantityCommand(id, actor)
	if err != nil {
		return err
	}
	result, err := s.h.UpdateQuantity.Handle(c.Request().Context(), cmd)
	return s.designationReply(c, result, err)
}

// UpdateDesignation handles PUT /api/v1/orders_packages/:id/designation.
func (s *Server) UpdateDesignation(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	var req updateDesignationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateDesignationCommand(id, orderID, actor)
	if err != nil {
		return err
	}
	result, err := s.h.UpdateDesignation.Handle(c.Request().Context(), cmd)
	return s.designationReply(c, result, err)
}

func actorAndID(c echo.Context) (kernel.UUID, kernel.UUID, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	id, err := pathID(c)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return actor, id, nil
}

// designationReply writes the result. A mirror failure still carries the committed
// result in the 502 body.
func (s *Server) designationReply(c echo.Context, result commands.DesignationResult, err error) error {
	if err != nil {
		if result.OrdersPackageID.Validate() == nil {
			return withResult(err, toDesignationResponse(result))
		}
		return err
	}
	return c.JSON(http.StatusOK, toDesignationResponse(result))
}
