// Package migrations embeds the goose SQL migrations applied by the api service and sevactl.
package migrations

import "embed"

// Files holds every .sql file in this directory; goose orders them by numeric prefix.
//
//go:embed *.sql
var Files embed.FS
