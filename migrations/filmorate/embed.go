// Package migrations содержит SQL-миграции схемы каталога.
package migrations

import "embed"

// FS - встроенные файлы миграций golang-migrate.
//
//go:embed *.sql
var FS embed.FS

// Dir - каталог миграций внутри FS.
const Dir = "."
