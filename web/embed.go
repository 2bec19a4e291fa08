// Package web embeds the dashboard page served by the HTTP server.
package web

import "embed"

// Assets holds the built page under dist/.
//
//go:embed dist
var Assets embed.FS
