package row

// Dynamic is a schemaless row that accepts every column it is given, in
// arrival order. It backs ad-hoc queries whose shape is only known at run
// time, such as those loaded from query files.
//
// The zero value is ready to use.
type Dynamic struct {
	table   string
	columns []string
	values  map[string]string
}

// NewDynamic returns an empty row bound to table.
func NewDynamic(table string) *Dynamic {
	return &Dynamic{table: table}
}

// TableName returns the bound table, or "" for a zero Dynamic.
func (d *Dynamic) TableName() string { return d.table }

// ColumnFields returns the columns seen so far in arrival order.
func (d *Dynamic) ColumnFields() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// ColumnValues returns values positionally matching ColumnFields.
func (d *Dynamic) ColumnValues() []string {
	out := make([]string, len(d.columns))
	for i, c := range d.columns {
		out[i] = d.values[c]
	}
	return out
}

// IsAutoIncrementPrimaryKey is always false; a Dynamic row declares no keys.
func (d *Dynamic) IsAutoIncrementPrimaryKey(string) bool { return false }

// SetColumnValue stores value, appending column on first sight. A repeated
// column keeps its original position.
func (d *Dynamic) SetColumnValue(column, value string) error {
	if d.values == nil {
		d.values = make(map[string]string)
	}
	if _, seen := d.values[column]; !seen {
		d.columns = append(d.columns, column)
	}
	d.values[column] = value
	return nil
}

// Get returns the value stored for column.
func (d *Dynamic) Get(column string) (string, bool) {
	v, ok := d.values[column]
	return v, ok
}

// Map returns a copy of the stored values keyed by column.
func (d *Dynamic) Map() map[string]string {
	out := make(map[string]string, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}
