package migrations

import "embed"

// FS - goose-миграции схемы заявок, встраиваются в бинарь.
//
//go:embed *.sql
var FS embed.FS
