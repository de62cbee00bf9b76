package http

import (
	"errors"
	"fmt"
	"net/http"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
	Result  any                 `json:"result,omitempty"`
}

var (
	errActorMissing = echo.NewHTTPError(http.StatusBadRequest, actorHeader+" header is required")
	errActorInvalid = echo.NewHTTPError(http.StatusBadRequest, actorHeader+" header must be a UUID")
)

// handleError maps use case errors to status codes: validation 422, not found 404,
// inventory mirror drift 502, anything else 500.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, body := s.errorBody(c, err)
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.log.Error(c.Request().Context(), "write error response", err)
	}
}

func (s *Server) errorBody(c echo.Context, err error) (int, errorResponse) {
	var (
		httpErr       *echo.HTTPError
		validation    *errs.ValidationError
		fieldErrs     validator.ValidationErrors
		syncErr       *errs.ExternalSyncError
		withResultErr *resultError
	)

	var result any
	if errors.As(err, &withResultErr) {
		result = withResultErr.result
	}

	switch {
	case errors.As(err, &syncErr):
		return http.StatusBadGateway, errorResponse{
			Code:    http.StatusBadGateway,
			Message: syncErr.Error(),
			Result:  result,
		}
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, errorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "validation failed",
			Details: validation.Messages(),
		}
	case errors.As(err, &fieldErrs):
		details := make(map[string][]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = append(details[fe.Field()], validationMessage(fe))
		}
		return http.StatusUnprocessableEntity, errorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "validation failed",
			Details: details,
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, errorResponse{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		return http.StatusUnprocessableEntity, errorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		}
	case errors.As(err, &httpErr):
		return httpErr.Code, errorResponse{Code: httpErr.Code, Message: fmt.Sprint(httpErr.Message)}
	default:
		s.log.Error(c.Request().Context(), "request failed", err)
		return http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}
}

// resultError carries a committed result alongside a mirror failure.
type resultError struct {
	err    error
	result any
}

func (e *resultError) Error() string { return e.err.Error() }
func (e *resultError) Unwrap() error { return e.err }

func withResult(err error, result any) error {
	if err == nil {
		return nil
	}
	return &resultError{err: err, result: result}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "uuid":
		return "must be a UUID"
	}
	return "is invalid"
}

func actorFrom(c echo.Context) (kernel.UUID, error) {
	raw := c.Request().Header.Get(actorHeader)
	if raw == "" {
		return kernel.UUID{}, errActorMissing
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errActorInvalid
	}
	return id, nil
}

func pathID(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "id must be a UUID")
	}
	return id, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}
