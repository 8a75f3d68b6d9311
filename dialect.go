package parcels

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	_ "github.com/jackc/pgx/stdlib"
	"github.com/pkg/errors"
)

// All code interacting with a database is here

const (
	ch = "clickhouse"
	pg = "postgres"
)

// Dialect reads query results into a DF. Cells pass through the same inference as CSV files, so a
// table loaded from a database has the same schema as the file it was exported from.
type Dialect struct {
	db      *sql.DB
	dialect string
}

func NewDialect(dialect string, db *sql.DB) (*Dialect, error) {
	dialect = strings.ToLower(dialect)
	if dialect != ch && dialect != pg {
		return nil, errors.Wrapf(ErrConfig, "unsupported database %s", dialect)
	}

	return &Dialect{db: db, dialect: dialect}, nil
}

// NewConnectCH establishes a new connection to ClickHouse. host is the IP address (assumes port 9000).
func NewConnectCH(host, user, password, database string) (*sql.DB, error) {
	db := clickhouse.OpenDB(
		&clickhouse.Options{
			Addr: []string{host + ":9000"},
			Auth: clickhouse.Auth{
				Database: database,
				Username: user,
				Password: password,
			},
			DialTimeout: 300 * time.Second,
			Compression: &clickhouse.Compression{
				Method: clickhouse.CompressionLZ4,
				Level:  0,
			},
		})

	if e := db.Ping(); e != nil {
		_ = db.Close()
		return nil, e
	}

	return db, nil
}

// NewConnectPG establishes a new connection to Postgres through the pgx driver (assumes port 5432).
func NewConnectPG(host, user, password, dbName string) (*sql.DB, error) {
	connectionStr := fmt.Sprintf("postgres://%s:%s@%s:5432/%s", user, password, host, dbName)
	var (
		db *sql.DB
		e  error
	)
	if db, e = sql.Open("pgx", connectionStr); e != nil {
		return nil, e
	}

	if e = db.Ping(); e != nil {
		_ = db.Close()
		return nil, e
	}

	return db, nil
}

// ***************** Methods *****************

func (d *Dialect) DialectName() string {
	return d.dialect
}

func (d *Dialect) Close() error {
	return d.db.Close()
}

// Load runs qry and returns the result as a DF. Columns in textCols are kept as DTstring.
func (d *Dialect) Load(ctx context.Context, qry string, textCols ...string) (*DF, error) {
	var (
		rows *sql.Rows
		e    error
	)
	if rows, e = d.db.QueryContext(ctx, qry); e != nil {
		return nil, errors.Wrapf(e, "%s query", d.dialect)
	}
	defer rows.Close()

	var names []string
	if names, e = rows.Columns(); e != nil {
		return nil, e
	}

	var records [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(names))
		ptrs := make([]any, len(names))
		for ind := range cells {
			ptrs[ind] = &cells[ind]
		}

		if e = rows.Scan(ptrs...); e != nil {
			return nil, e
		}

		rec := make([]string, len(names))
		for ind, cell := range cells {
			if cell.Valid {
				rec[ind] = cell.String
			}
		}

		records = append(records, rec)
	}

	if e = rows.Err(); e != nil {
		return nil, e
	}

	return FromRecords(names, records, textCols...)
}
