package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/pkg/metrics"
)

const defaultStatsInterval = 15 * time.Second

// DBExecutor is the query surface shared by *sql.DB, *sql.Tx and the wrappers below
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor is a DBExecutor that can be committed or rolled back
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// DB wraps *sql.DB and records query timings. A nil collector disables recording.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap returns a DB without starting pool statistics collection
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault wraps db and, when m is set, exports pool statistics until stopCh is closed
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	if m != nil {
		go wrapped.collectPoolStats(defaultStatsInterval, stopCh)
	}
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveQuery(operationName(query), time.Since(start), err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveQuery(operationName(query), time.Since(start), err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveQuery(operationName(query), time.Since(start), row.Err())
	return row
}

// BeginTx starts a transaction whose queries are recorded like the pool's
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

// PingContext checks connectivity
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBOpenConns.Set(float64(stats.OpenConnections))
			d.metrics.DBInUseConns.Set(float64(stats.InUse))
			d.metrics.DBIdleConns.Set(float64(stats.Idle))
			d.metrics.DBWaitCountTotal.Set(float64(stats.WaitCount))
		}
	}
}

// Tx wraps *sql.Tx and records query timings
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.metrics.ObserveQuery(operationName(query), time.Since(start), err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.metrics.ObserveQuery(operationName(query), time.Since(start), err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.metrics.ObserveQuery(operationName(query), time.Since(start), row.Err())
	return row
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// operationName labels a query by its leading keyword and table
func operationName(query string) string {
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 {
		return "unknown"
	}

	verb := fields[0]
	var table string
	switch verb {
	case "select", "delete":
		table = wordAfter(fields, "from")
	case "insert":
		table = wordAfter(fields, "into")
	case "update":
		if len(fields) > 1 {
			table = fields[1]
		}
	}

	if table == "" {
		return verb
	}
	return verb + "_" + strings.Trim(table, `"(`)
}

func wordAfter(fields []string, keyword string) string {
	for i := 0; i < len(fields)-1; i++ {
		if fields[i] == keyword {
			return fields[i+1]
		}
	}
	return ""
}
