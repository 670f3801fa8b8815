package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect captures the per-engine differences the store has to care about.
// Queries in the repositories are written with ? placeholders; postgres
// rewrites them to $N.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// DSN returns the data source name for the connection.
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed.
	RewriteQuery(query string) string

	// AutoIncrementPK returns the column definition for an integer
	// auto-assigned primary key.
	AutoIncrementPK() string

	// IsUniqueViolation reports whether err is a unique-constraint failure,
	// used to surface duplicate usernames as a conflict.
	IsUniqueViolation(err error) bool

	// ConfigureConnection applies engine-specific connection settings.
	ConfigureConnection(db *sql.DB) error
}

// DialectConfig holds connection parameters; Path is used by sqlite, URL by
// the server engines.
type DialectConfig struct {
	Path string
	URL  string
}

var placeholderRe = regexp.MustCompile(`\?`)

// rewriteToNumbered converts ? placeholders to $1, $2, ... for postgres.
func rewriteToNumbered(query string) string {
	n := 0
	return placeholderRe.ReplaceAllStringFunc(query, func(string) string {
		n++
		return "$" + strconv.Itoa(n)
	})
}
