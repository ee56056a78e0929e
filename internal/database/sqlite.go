package database

import (
	"database/sql/driver"
	"strings"

	gosqlite "github.com/glebarez/go-sqlite"
)

// SQLite's built-in LOWER folds ASCII only. Replacing it with a Unicode-aware
// version keeps Contains case-insensitive for every driver.
func init() {
	gosqlite.MustRegisterDeterministicScalarFunction("lower", 1, sqliteLower)
}

func sqliteLower(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
