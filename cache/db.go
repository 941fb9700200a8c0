// Package cache stores compiled *nfa.Machine values behind a SQL
// table, keyed by a hash of the query text and the langs.Options used
// to compile it, so a fleet of hosts running the same structgrep
// query against many checkouts doesn't each pay component F's
// compile cost. It is entirely optional: the in-process path
// (structgrep.Compile) never imports this package; only the `serve`
// CLI subcommand does.
package cache

import (
	"context"
	"database/sql"
	"database/sql/driver"
)

// DB is the minimal slice of *sql.DB this package needs, unchanged in
// shape from the teacher's own dbintf.go: a database handle is useful
// here purely as "something that can run parameterized queries and
// open transactions and a dedicated *sql.Conn", regardless of what schema
// sits behind it.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	Conn(ctx context.Context) (*sql.Conn, error)
	BeginTx(ctx context.Context, txOptions *sql.TxOptions) (*sql.Tx, error)
	Driver() driver.Driver
}

var _ DB = &sql.DB{}

// createTableStatementMSSQL and createTableStatementPostgres create the
// same schema on first use, one row per (query_hash, options_hash) pair.
const createTableStatementMSSQL = `
if not exists (select 1 from sys.tables where name = 'structgrep_machine_cache')
begin
	create table structgrep_machine_cache (
		query_hash varchar(64) not null,
		options_hash varchar(64) not null,
		machine varbinary(max) not null,
		created_at datetime2 not null default sysutcdatetime(),
		primary key (query_hash, options_hash)
	)
end`

const createTableStatementPostgres = `
create table if not exists structgrep_machine_cache (
	query_hash text not null,
	options_hash text not null,
	machine bytea not null,
	created_at timestamptz not null default now(),
	primary key (query_hash, options_hash)
)`
