// Package swagger serves the contract of the inventory backend the console
// talks to, so operators can browse it next to the running console.
package swagger

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	apicontract "github.com/tuanvumaihuynh/inventory-console/api-contract"
)

const (
	DocsPath = "/docs"
	SpecPath = "/docs/openapi.yml"

	swaggerUIVersion = "5.29.3"
)

// Register mounts the Swagger UI and the raw contract on r.
func Register(r chi.Router) {
	page := []byte(uiPage(SpecPath))
	spec := apicontract.GetSpecBytes()

	r.Get(DocsPath, serveBytes("text/html; charset=utf-8", page))
	r.Get(SpecPath, serveBytes("application/yaml", spec))
}

func serveBytes(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(body)
	}
}

func uiPage(specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Inventory backend API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@%[1]s/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@%[1]s/swagger-ui-bundle.js" crossorigin></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '%[2]s',
      dom_id: '#swagger-ui',
      deepLinking: true,
      supportedSubmitMethods: [],
    });
  };
</script>
</body>
</html>
`, swaggerUIVersion, specPath)
}
