package testutil

import (
	"context"
	"sync"

	"github.com/mjovanc/njord/internal/query"
	"github.com/mjovanc/njord/internal/row"
)

// FakeExecutor is an in-memory query.Executor for tests.
//
// It records every SQL string it receives and answers reads with Records
// and writes with Affected. Setting ExecuteErr, RowsErr or StatementErr
// makes the corresponding call fail.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FakeExecutor struct {
	mu sync.Mutex

	Records      []row.Record
	Affected     int64
	ExecuteErr   error
	RowsErr      error
	StatementErr error

	queries    []string
	statements []string
}

var _ query.Executor = (*FakeExecutor)(nil)

// Execute records sql and returns a stream over Records.
func (f *FakeExecutor) Execute(_ context.Context, sql string) (query.Rows, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, sql)
	if f.ExecuteErr != nil {
		return nil, f.ExecuteErr
	}
	return &fakeRows{records: append([]row.Record(nil), f.Records...), err: f.RowsErr}, nil
}

// ExecuteStatement records sql and returns Affected.
func (f *FakeExecutor) ExecuteStatement(_ context.Context, sql string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.statements = append(f.statements, sql)
	if f.StatementErr != nil {
		return 0, f.StatementErr
	}
	return f.Affected, nil
}

// Queries returns the read queries received so far.
func (f *FakeExecutor) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

// Statements returns the write statements received so far.
func (f *FakeExecutor) Statements() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.statements...)
}

// fakeRows yields every record and then reports err, mimicking a driver
// that fails after the last row it managed to read.
type fakeRows struct {
	records []row.Record
	idx     int
	current row.Record
	err     error
	closed  bool
}

func (r *fakeRows) Next() bool {
	if r.closed || r.idx >= len(r.records) {
		return false
	}
	r.current = r.records[r.idx]
	r.idx++
	return true
}

func (r *fakeRows) Record() row.Record { return r.current }
func (r *fakeRows) Err() error         { return r.err }

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}

// Rec builds a record from alternating column/value arguments:
//
//	Rec("id", "1", "username", "mjovanc")
func Rec(pairs ...string) row.Record {
	if len(pairs)%2 != 0 {
		panic("testutil.Rec: odd number of arguments")
	}
	rec := make(row.Record, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		rec = append(rec, row.Cell{Column: pairs[i], Value: pairs[i+1]})
	}
	return rec
}
