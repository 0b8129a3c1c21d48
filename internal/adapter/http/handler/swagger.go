package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// apiDoc is the OpenAPI document loaded at startup, kept in both encodings.
var apiDoc struct {
	sync.RWMutex
	yaml []byte
	json []byte
}

// SetSwaggerSpec parses the OpenAPI YAML and serves it under /swagger/spec.
// A nil spec unloads the document.
func SetSwaggerSpec(spec []byte) error {
	var rendered []byte
	if spec != nil {
		var doc map[string]interface{}
		if err := yaml.Unmarshal(spec, &doc); err != nil {
			return fmt.Errorf("parsing openapi document: %w", err)
		}
		if _, ok := doc["openapi"]; !ok {
			return errors.New("openapi document has no openapi version field")
		}
		var err error
		if rendered, err = json.Marshal(doc); err != nil {
			return fmt.Errorf("rendering openapi document: %w", err)
		}
	}

	apiDoc.Lock()
	apiDoc.yaml, apiDoc.json = spec, rendered
	apiDoc.Unlock()
	return nil
}

// SwaggerSpec serves the OpenAPI document, as JSON with ?format=json.
func SwaggerSpec(c *gin.Context) {
	apiDoc.RLock()
	defer apiDoc.RUnlock()

	if apiDoc.yaml == nil {
		c.String(http.StatusNotFound, "OpenAPI document not loaded")
		return
	}
	if c.Query("format") == "json" {
		c.Data(http.StatusOK, "application/json", apiDoc.json)
		return
	}
	c.Data(http.StatusOK, "application/x-yaml", apiDoc.yaml)
}

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>DLT Orchestrator - API Docs</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '/swagger/spec?format=json',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`

func SwaggerUI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerPage))
}
