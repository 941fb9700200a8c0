package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/azuread"
	"golang.org/x/net/proxy"
)

// OpenMSSQL opens a *sql.DB against SQL Server from a URI-style dsn,
// dispatching on its scheme exactly as cli/cmd/config.go's
// OpenSocks5Sql does: "sqlserver://" for password login, "azuresql://"
// for Azure AD login, both optionally tunneled through a SOCKS5 proxy
// named by the SQL_SOCKS environment variable.
func OpenMSSQL(dsn string) (*sql.DB, error) {
	var connector *mssql.Connector
	var err error

	switch {
	case strings.HasPrefix(dsn, "azuresql://"):
		connector, err = azuread.NewConnector(dsn)
	case strings.HasPrefix(dsn, "sqlserver://"):
		connector, err = mssql.NewConnector(dsn)
	default:
		return nil, errors.New("cache: expected a URI-style dsn; sqlserver:// for password login or azuresql:// for AD login")
	}
	if err != nil {
		return nil, err
	}

	if socksAddr := os.Getenv("SQL_SOCKS"); socksAddr != "" {
		dialer, err := proxy.SOCKS5("tcp", socksAddr, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("cache: could not connect with SOCKS5 to %s: %w", socksAddr, err)
		}
		connector.Dialer = dialer.(proxy.ContextDialer)
	}

	return sql.OpenDB(connector), nil
}

// OpenPostgres opens a *sql.DB against Postgres via pgx/v5's
// database/sql driver.
func OpenPostgres(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}
