package database

import (
	"database/sql"
	"errors"
	"time"

	mysql "github.com/go-sql-driver/mysql"
)

type MySQLDialect struct{}

func NewMySQLDialect() *MySQLDialect { return &MySQLDialect{} }

func (d *MySQLDialect) DriverName() string { return "mysql" }

func (d *MySQLDialect) DSN(config DialectConfig) string {
	// parseTime is required so DATETIME columns scan into time.Time.
	// clientFoundRows makes RowsAffected count matched rows rather than
	// changed rows; without it a no-op UPDATE on an existing row reports 0
	// and the store would mistake it for a missing id.
	if config.URL == "" {
		return config.URL
	}
	sep := "?"
	for _, c := range config.URL {
		if c == '?' {
			sep = "&"
			break
		}
	}
	return config.URL + sep + "parseTime=true&clientFoundRows=true"
}

func (d *MySQLDialect) RewriteQuery(query string) string { return query }

func (d *MySQLDialect) AutoIncrementPK() string {
	return "BIGINT PRIMARY KEY AUTO_INCREMENT"
}

func (d *MySQLDialect) IsUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}
