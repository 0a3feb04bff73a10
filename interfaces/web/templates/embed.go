// Package templates holds the web components and the static assets they load.
package templates

import "embed"

// FS contains the static assets served under /assets/.
//
//go:embed assets
var FS embed.FS
