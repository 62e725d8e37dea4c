// Package migrations embeds the SQL schema files.
// They are applied in lexical order at process startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
