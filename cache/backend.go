package cache

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"
)

// Backend reads and writes the structgrep_machine_cache table. The two
// implementations below only differ in placeholder syntax, the
// create-table statement and the upsert statement; dispatch between
// them is by driver type,
// the same *mssql.Driver / *stdlib.Driver switch dbops.go uses for
// Exists and Drop.
type Backend interface {
	EnsureTable(ctx context.Context) error
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Put(ctx context.Context, key Key, machine []byte) error
}

// NewBackend picks PostgresBackend or MSSQLBackend by inspecting db's
// driver, exactly the way dbops.Exists dispatches its query text.
func NewBackend(db DB) (Backend, error) {
	switch db.Driver().(type) {
	case *mssql.Driver:
		return &MSSQLBackend{db: db}, nil
	case *stdlib.Driver:
		return &PostgresBackend{db: db}, nil
	default:
		return nil, ErrUnknownDriver
	}
}

// PostgresBackend stores machines in Postgres via pgx/v5's
// database/sql driver (github.com/jackc/pgx/v5/stdlib), grounded on
// dbops.go's *stdlib.Driver branch.
type PostgresBackend struct {
	db DB
}

func (b *PostgresBackend) EnsureTable(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, createTableStatementPostgres)
	return err
}

func (b *PostgresBackend) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	var machine []byte
	err := b.db.QueryRowContext(ctx,
		`select machine from structgrep_machine_cache where query_hash = @query_hash and options_hash = @options_hash`,
		pgx.NamedArgs{"query_hash": key.QueryHash, "options_hash": key.OptionsHash},
	).Scan(&machine)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return machine, true, nil
}

func (b *PostgresBackend) Put(ctx context.Context, key Key, machine []byte) error {
	_, err := b.db.ExecContext(ctx, `
		insert into structgrep_machine_cache (query_hash, options_hash, machine)
		values (@query_hash, @options_hash, @machine)
		on conflict (query_hash, options_hash) do update set machine = excluded.machine`,
		pgx.NamedArgs{"query_hash": key.QueryHash, "options_hash": key.OptionsHash, "machine": machine})
	return err
}

// MSSQLBackend stores machines in SQL Server via
// github.com/microsoft/go-mssqldb, grounded on dbops.go's *mssql.Driver
// branch. Connecting (including optional Azure AD auth and the
// SQL_SOCKS proxy) is handled by OpenMSSQL in open.go, grounded on
// cli/cmd/config.go's OpenSocks5Sql.
type MSSQLBackend struct {
	db DB
}

func (b *MSSQLBackend) EnsureTable(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, createTableStatementMSSQL)
	return err
}

func (b *MSSQLBackend) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	var machine []byte
	err := b.db.QueryRowContext(ctx,
		`select machine from structgrep_machine_cache where query_hash = @p1 and options_hash = @p2`,
		key.QueryHash, key.OptionsHash,
	).Scan(&machine)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return machine, true, nil
}

func (b *MSSQLBackend) Put(ctx context.Context, key Key, machine []byte) error {
	_, err := b.db.ExecContext(ctx, `
		merge structgrep_machine_cache as target
		using (select @p1 as query_hash, @p2 as options_hash) as src
		on target.query_hash = src.query_hash and target.options_hash = src.options_hash
		when matched then update set machine = @p3
		when not matched then insert (query_hash, options_hash, machine) values (src.query_hash, src.options_hash, @p3);`,
		key.QueryHash, key.OptionsHash, machine)
	return err
}
