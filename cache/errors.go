package cache

import "errors"

// ErrUnknownDriver is returned by NewBackend when db's underlying
// driver is neither *mssql.Driver nor *stdlib.Driver.
var ErrUnknownDriver = errors.New("cache: db's driver is neither mssql nor postgres (stdlib)")
