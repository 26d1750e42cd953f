package migrations

import "embed"

// FS SQL миграции схемы, встраиваются в бинарник
//
//go:embed *.sql
var FS embed.FS
