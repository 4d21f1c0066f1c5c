// Package query composes conditions, clause renderers and the row contract
// into complete statements and executes them against a backend.
//
// ARCHITECTURE:
//
//	[builder calls] → Select / Update / Delete / Insert state
//	                → BuildQuery (pure string assembly)
//	                → Executor (backend collaborator)
//	                → row.Record stream → row.Row population → []T
//
// STATEMENT SHAPE:
//
// Select renders its clauses in a fixed order with one space between every
// slot, including empty ones:
//
//	SELECT [DISTINCT ]<cols> FROM <table> <joins> <where> <group by> <having> <order by>[ <limit offset>]
//
// EXCEPT and UNION operands are appended afterwards, left to right in
// registration order. They never see the outer LIMIT or OFFSET.
//
// ERRORS:
//
// BuildQuery never fails. Build, Execute, Insert and Raw return
// *dberr.Error values: InvalidQuery for malformed builder state or SQL the
// backend rejected, ConnectionError passed through from the backend, and
// MappingError when strict mapping is enabled and a row cannot be
// populated. No partial results accompany an error.
//
// LOGGING:
//
// Execution entry points accept WithLogger. Every statement is logged at
// Info with a query_id (UUIDv7 by default) and the rendered sql.
package query
