// Package schemas embeds the JSON Schemas used to validate API requests and
// configuration files.
package schemas

import _ "embed"

//go:embed dashboard.schema.json
var DashboardSchemaJSON string

//go:embed query.schema.json
var QuerySchemaJSON string

//go:embed config.schema.json
var ConfigSchemaJSON string
