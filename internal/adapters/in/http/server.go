package http

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"
	"donations/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const actorHeader = "X-Actor-ID"

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder                commands.CreateOrderCommandHandler
	FireOrderEvent             commands.FireOrderEventCommandHandler
	DestroyOrder               commands.DestroyOrderCommandHandler
	ScheduleOrderTransport     commands.ScheduleOrderTransportCommandHandler
	PruneCancelledEntries      commands.PruneCancelledOrdersPackagesCommandHandler
	DesignatePackage           commands.DesignatePackageCommandHandler
	UndesignatePackage         commands.UndesignatePackageCommandHandler
	AddPartiallyDesignatedItem commands.AddPartiallyDesignatedItemCommandHandler
	DesignateStockitItem       commands.DesignateStockitItemCommandHandler
	DispatchOrdersPackage      commands.DispatchOrdersPackageCommandHandler
	UndispatchOrdersPackage    commands.UndispatchOrdersPackageCommandHandler
	RejectOrdersPackage        commands.RejectOrdersPackageCommandHandler
	UpdateQuantity             commands.UpdateOrdersPackageQuantityCommandHandler
	UpdateDesignation          commands.UpdateDesignationCommandHandler
	ResolveSyncIssue           commands.ResolveSyncIssueCommandHandler

	ListOrders             queries.ListOrdersQueryHandler
	GetOrdersSummary       queries.GetOrdersSummaryQueryHandler
	GetDesignationStatus   queries.GetOrderDesignationStatusQueryHandler
	ListOpenSyncIssues     queries.ListOpenSyncIssuesQueryHandler
}

// Server adapts HTTP requests to command and query handlers.
type Server struct {
	h        Handlers
	log      *logger.Logger
	gatherer prometheus.Gatherer
	now      func() time.Time
}

func NewServer(h Handlers, log *logger.Logger, gatherer prometheus.Gatherer) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{h: h, log: log, gatherer: gatherer, now: time.Now}
}

// NewEcho builds an echo instance with the server's middleware and routes.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.requestLogger)

	s.Register(e)
	return e
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1")

	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/summary", s.GetOrdersSummary)
	api.GET("/orders/:id/designation", s.GetDesignationStatus)
	api.POST("/orders/:id/transitions", s.FireOrderEvent)
	api.DELETE("/orders/:id", s.DestroyOrder)
	api.PUT("/orders/:id/transport", s.ScheduleTransport)
	api.POST("/orders/:id/prune", s.PruneCancelledEntries)

	api.POST("/packages/:id/designate", s.DesignatePackage)
	api.POST("/packages/:id/undesignate", s.UndesignatePackage)
	api.POST("/packages/:id/partial_designations", s.AddPartiallyDesignatedItem)
	api.POST("/packages/:id/stockit_designation", s.DesignateStockitItem)

	api.POST("/orders_packages/:id/dispatch", s.DispatchOrdersPackage)
	api.POST("/orders_packages/:id/undispatch", s.UndispatchOrdersPackage)
	api.POST("/orders_packages/:id/reject", s.RejectOrdersPackage)
	api.PUT("/orders_packages/:id/quantity", s.UpdateQuantity)
	api.PUT("/orders_packages/:id/designation", s.UpdateDesignation)

	api.GET("/sync_issues", s.ListOpenSyncIssues)
	api.POST("/sync_issues/:id/resolve", s.ResolveSyncIssue)
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := s.log.WithRequestID(req.Context(), c.Response().Header().Get(echo.HeaderXRequestID))
		if actor := req.Header.Get(actorHeader); actor != "" {
			ctx = s.log.WithActorID(ctx, actor)
		}
		c.SetRequest(req.WithContext(ctx))

		start := time.Now()
		err := next(c)
		ctx = s.log.WithFields(ctx, map[string]any{
			"method":      req.Method,
			"path":        c.Path(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		s.log.Debug(ctx, "request served")
		return err
	}
}

type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return &requestValidator{v: v}
}

func (r *requestValidator) Validate(i any) error {
	return r.v.Struct(i)
}
