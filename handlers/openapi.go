package handlers

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

//go:embed console.openapi.yaml
var consoleSpec []byte

// GetSwagger loads and validates the embedded console OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(consoleSpec)
	if err != nil {
		return nil, fmt.Errorf("load console openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate console openapi document: %w", err)
	}
	return doc, nil
}

// OpenAPIValidator returns middleware that validates requests against doc. Requests for routes the document
// does not describe are passed through, so echo answers them with its own 404/405.
// Validation failures become 400 errors carrying the *openapi3filter.RequestError.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ectx echo.Context) error {
			req := ectx.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(ectx)
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
			}
			return next(ectx)
		}
	}, nil
}
