package query

import (
	"context"
	stdsql "database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mjovanc/njord/internal/dberr"
	"github.com/mjovanc/njord/internal/row"
)

// Executor is the backend collaborator that runs rendered SQL.
//
// Implementations convert driver-native values to canonical text before
// handing records back (see row.FormatDriverValue).
type Executor interface {
	// Execute runs a read query and returns its row stream.
	Execute(ctx context.Context, sql string) (Rows, error)

	// ExecuteStatement runs INSERT, UPDATE or DELETE and returns the number
	// of affected rows.
	ExecuteStatement(ctx context.Context, sql string) (int64, error)
}

// Rows is a forward-only stream of textual records.
type Rows interface {
	Next() bool
	Record() row.Record
	Err() error
	Close() error
}

// IDGenerator produces the query ids attached to execution log entries.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 query ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns predetermined ids in order, then repeats the
// last one. Used for deterministic log assertions.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewSequenceGenerator creates a generator returning ids in order.
func NewSequenceGenerator(ids ...string) *SequenceGenerator {
	if len(ids) == 0 {
		ids = []string{"query-default"}
	}
	return &SequenceGenerator{ids: ids}
}

// Generate returns the next id.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.ids[g.idx]
	if g.idx < len(g.ids)-1 {
		g.idx++
	}
	return id
}

// Option configures one execution call.
type Option func(*execConfig)

type execConfig struct {
	logger logrus.FieldLogger
	strict bool
	ids    IDGenerator
}

// WithLogger sets the logger for execution events. The default discards
// everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *execConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrictMapping promotes unknown columns and unparsable values to
// MappingError. By default both are skipped and population continues.
func WithStrictMapping() Option {
	return func(c *execConfig) { c.strict = true }
}

// WithIDGenerator overrides the query id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(c *execConfig) {
		if g != nil {
			c.ids = g
		}
	}
}

func newExecConfig(opts []Option) execConfig {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	cfg := execConfig{logger: discard, ids: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c execConfig) entry(sql string) *logrus.Entry {
	return c.logger.WithFields(logrus.Fields{
		"query_id": c.ids.Generate(),
		"sql":      sql,
	})
}

// fetch runs sql and maps every returned record into a fresh T.
// On any failure the partially built slice is discarded.
func fetch[T any, PT row.Pointer[T]](ctx context.Context, exec Executor, sql string, cfg execConfig) ([]T, error) {
	log := cfg.entry(sql)
	log.Info("executing query")

	rows, err := exec.Execute(ctx, sql)
	if err != nil {
		log.WithError(err).Error("query failed")
		return nil, backendError(sql, "execute query", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var v T
		if err := populate(PT(&v), rows.Record(), cfg.strict, log); err != nil {
			err.SQL = sql
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		log.WithError(err).Error("reading rows failed")
		return nil, backendError(sql, "read rows", err)
	}

	log.WithField("rows", len(out)).Debug("query complete")
	return out, nil
}

func populate(r row.Row, rec row.Record, strict bool, log logrus.FieldLogger) *dberr.Error {
	for _, cell := range rec {
		err := r.SetColumnValue(cell.Column, cell.Value)
		if err == nil {
			continue
		}
		if strict {
			return dberr.Mapping(cell.Column, "populate row", err)
		}
		if errors.Is(err, row.ErrUnknownColumn) {
			log.WithField("column", cell.Column).Debug("ignoring unmapped column")
			continue
		}
		log.WithError(err).WithField("column", cell.Column).Warn("skipping unparsable value")
	}
	return nil
}

func execStatement(ctx context.Context, exec Executor, sql string, cfg execConfig) (int64, error) {
	log := cfg.entry(sql)
	log.Info("executing statement")

	n, err := exec.ExecuteStatement(ctx, sql)
	if err != nil {
		log.WithError(err).Error("statement failed")
		return 0, backendError(sql, "execute statement", err)
	}
	log.WithField("rows_affected", n).Debug("statement complete")
	return n, nil
}

// backendError keeps typed errors raised by the backend (for example a
// ConnectionError from Open). A lost or closed connection becomes a
// ConnectionError; everything else is wrapped as InvalidQuery.
func backendError(sql, message string, err error) error {
	var typed *dberr.Error
	if errors.As(err, &typed) {
		return err
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, stdsql.ErrConnDone) {
		connErr := dberr.Connection(message, err)
		connErr.SQL = sql
		return connErr
	}
	return dberr.InvalidQuery(sql, message, err)
}

// Raw executes caller-supplied SQL and maps the results through the row
// contract, with the same population rules as Select.Build.
func Raw[T any, PT row.Pointer[T]](ctx context.Context, exec Executor, sql string, opts ...Option) ([]T, error) {
	return fetch[T, PT](ctx, exec, sql, newExecConfig(opts))
}

// RawStatement executes caller-supplied INSERT, UPDATE or DELETE text.
func RawStatement(ctx context.Context, exec Executor, sql string, opts ...Option) (int64, error) {
	return execStatement(ctx, exec, sql, newExecConfig(opts))
}
