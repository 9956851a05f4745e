package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the content API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>deenhub-backend — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document. The four resources share the same operation
// shapes; /api/products is listed with its full filter parameter set.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "deenhub-backend", "version": "v0.1.0" },
  "paths": {
    "/api/inspire": {
      "get": { "summary": "List inspiring quotes", "parameters": [ { "name": "q", "in": "query", "schema": {"type":"string"} } ], "responses": { "200": { "description": "quotes with count" } } },
      "post": { "summary": "Add a quote", "responses": { "201": { "description": "created" }, "400": { "description": "missing fields or duplicate id" } } }
    },
    "/api/inspire/{id}": {
      "get": { "summary": "Get a quote by id", "responses": { "200": { "description": "quote" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update a quote (partial)", "responses": { "200": { "description": "updated" }, "400": { "description": "no updatable field" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a quote", "responses": { "200": { "description": "deleted snapshot" }, "404": { "description": "not found" } } }
    },
    "/api/prophets": { "get": { "summary": "List prophets", "responses": { "200": { "description": "prophets with count" } } }, "post": { "summary": "Add a prophet", "responses": { "201": { "description": "created" } } } },
    "/api/prophets/{id}": { "get": { "summary": "Get a prophet" , "responses": { "200": { "description": "prophet" } } }, "put": { "summary": "Update a prophet (open partial update)", "responses": { "200": { "description": "updated" } } }, "delete": { "summary": "Delete a prophet", "responses": { "200": { "description": "deleted snapshot" } } } },
    "/api/sahabas": { "get": { "summary": "List sahabas", "responses": { "200": { "description": "sahabas with count" } } }, "post": { "summary": "Add a sahaba", "responses": { "201": { "description": "created" } } } },
    "/api/sahabas/{id}": { "get": { "summary": "Get a sahaba", "responses": { "200": { "description": "sahaba" } } }, "put": { "summary": "Update a sahaba (open partial update)", "responses": { "200": { "description": "updated" } } }, "delete": { "summary": "Delete a sahaba", "responses": { "200": { "description": "deleted snapshot" } } } },
    "/api/products": {
      "get": { "summary": "List products", "parameters": [
        { "name": "q", "in": "query", "schema": {"type":"string"} },
        { "name": "category", "in": "query", "schema": {"type":"string"} },
        { "name": "minPrice", "in": "query", "schema": {"type":"number"} },
        { "name": "maxPrice", "in": "query", "schema": {"type":"number"} },
        { "name": "inStock", "in": "query", "schema": {"type":"string", "enum":["true","false"]} },
        { "name": "sortBy", "in": "query", "schema": {"type":"string", "enum":["price_asc","price_desc","name_asc","name_desc","newest","oldest"]} }
      ], "responses": { "200": { "description": "products with count" }, "400": { "description": "malformed price bound" } } },
      "post": { "summary": "Add a product", "responses": { "201": { "description": "created" }, "400": { "description": "missing fields" } } }
    },
    "/api/products/{id}": {
      "get": { "summary": "Get a product by native id", "responses": { "200": { "description": "product" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update a product (allow-listed partial)", "responses": { "200": { "description": "updated" }, "400": { "description": "no valid field" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a product", "responses": { "200": { "description": "deleted snapshot" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
