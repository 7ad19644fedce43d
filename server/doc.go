// Package server serves the documentation page of an OpenAPI or Swagger
// document over HTTP.
//
// Routes:
//
//	GET {base_path}         the page; ?endpoint= or ?component= selects a sidebar entry
//	GET {base_path}openapi  the raw document
//	GET /healthz            liveness and load status as JSON
//	GET /metrics            Prometheus metrics
//
// A document that fails to load is served as the error page with status 200,
// like any other page. With watching enabled the document is reloaded when its
// file changes; requests in flight keep the snapshot they started with.
//
// Configuration comes from a TOML file merged over NewDefaultConfig, then
// OASDOCS_* environment variables (see LoadConfig).
package server
