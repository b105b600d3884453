package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler registers the console error handler on e.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
// request_failed is absent on purpose: it keeps the status the backend answered with.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	var errorCodeToStatusCodeMaps = make(map[string]int)
	errorCodeToStatusCodeMaps[ErrBadParameter] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[ErrSessionExpired] = http.StatusUnauthorized
	errorCodeToStatusCodeMaps[ErrNotLoggedIn] = http.StatusUnauthorized
	errorCodeToStatusCodeMaps[ErrValidationFailed] = http.StatusUnprocessableEntity
	errorCodeToStatusCodeMaps[ErrBadResponse] = http.StatusBadGateway
	errorCodeToStatusCodeMaps[ErrNotFound] = http.StatusNotFound
	errorCodeToStatusCodeMaps[ErrMethodNotAllowed] = http.StatusMethodNotAllowed
	errorCodeToStatusCodeMaps[ErrInternalServerError] = http.StatusInternalServerError

	return errorCodeToStatusCodeMaps
}

// HTTPErrorHandler is an error handler.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       logger,
	}
}

func (h *HTTPErrorHandler) getStatusCode(apiErr *APIError) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[apiErr.Code]
	if ok {
		return status
	}
	if apiErr.Code == ErrRequestFailed && apiErr.Status >= 400 && apiErr.Status <= 599 {
		return apiErr.Status
	}

	return http.StatusInternalServerError
}

// Handler handles error returned by echo Handlers.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	apiErr := ToAPIError(err)
	if apiErr == nil {
		apiErr = NewAPIError(ErrInternalServerError, InternalServerErrorMessage, 0, err)
	}

	var statusCode int
	var he *echo.HTTPError
	if errors.As(err, &he) {
		codeStr := ErrInternalServerError
		switch he.Code {
		case http.StatusBadRequest:
			codeStr = ErrBadParameter
		case http.StatusNotFound:
			codeStr = ErrNotFound
		case http.StatusMethodNotAllowed:
			codeStr = ErrMethodNotAllowed
		}
		if he.Internal != nil {
			if herr, ok := he.Internal.(*echo.HTTPError); ok {
				he = herr
			}
			var requestError *openapi3filter.RequestError
			if errors.As(he.Internal, &requestError) {
				codeStr = ErrBadParameter
			}
		}

		m, ok := he.Message.(string)
		if !ok {
			m = http.StatusText(he.Code)
		}
		apiErr = NewAPIError(codeStr, m, he.Code, err)
		statusCode = he.Code
	} else {
		statusCode = h.getStatusCode(apiErr)
	}

	level.Error(h.logger).Log(
		"msg", "HTTP request error",
		"err", err,
	)

	// Send response
	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead && he != nil {
			_ = c.NoContent(he.Code)
		} else {
			_ = c.JSON(statusCode, ErrResponse{Error: apiErr})
		}
	}
}

// ErrResponse from server.
type ErrResponse struct {
	Error *APIError `json:"error,omitempty"`
}
