// Package repository holds the write-side persistence adapters. Every
// repository is bound to a db.DBTX, so the unit of work hands out
// transaction-scoped instances while auth lookups run on the pool.
package repository

import sq "github.com/Masterminds/squirrel"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
