package apiclienttest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	apicontract "github.com/tuanvumaihuynh/inventory-console/api-contract"
)

// contract validates incoming requests against the embedded OpenAPI document.
type contract struct {
	router routers.Router
}

func newContract() (*contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(apicontract.GetSpecBytes())
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return &contract{router: router}, nil
}

// validate checks r, whose path still carries the /api prefix. r.Body is
// restored so the handler can read it again.
func (c *contract) validate(r *http.Request) error {
	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	routed := r.Clone(r.Context())
	routed.URL.Path = strings.TrimPrefix(r.URL.Path, apiPrefix)
	routed.RequestURI = ""
	routed.Body = io.NopCloser(bytes.NewReader(body))

	route, pathParams, err := c.router.FindRoute(routed)
	if err != nil {
		return fmt.Errorf("find route %s %s: %w", r.Method, routed.URL.Path, err)
	}

	if err := openapi3filter.ValidateRequest(r.Context(), &openapi3filter.RequestValidationInput{
		Request:    routed,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}); err != nil {
		return fmt.Errorf("validate %s %s: %w", r.Method, routed.URL.Path, err)
	}

	return nil
}
