package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/mjovanc/njord/internal/clause"
	"github.com/mjovanc/njord/internal/condition"
	"github.com/mjovanc/njord/internal/query"
	"github.com/mjovanc/njord/internal/row"
)

// LoadError represents an error that occurred while loading a query file.
type LoadError struct {
	Code    string
	Message string
	Path    string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// QueryFile describes one SELECT statement. It is decoded from YAML
// (.yaml, .yml) or CUE (.cue) files:
//
//	table: users
//	columns: [id, username]
//	where:
//	  eq: {column: username, value: mjovanc}
//	order_by:
//	  - {columns: [id], direction: desc}
//	limit: 10
type QueryFile struct {
	Table      string         `yaml:"table" json:"table"`
	Columns    []string       `yaml:"columns" json:"columns,omitempty"`
	SubQueries []SubQuerySpec `yaml:"sub_queries" json:"sub_queries,omitempty"`
	Distinct   bool           `yaml:"distinct" json:"distinct,omitempty"`
	Joins      []JoinSpec     `yaml:"joins" json:"joins,omitempty"`
	Where      *ConditionSpec `yaml:"where" json:"where,omitempty"`
	GroupBy    []string       `yaml:"group_by" json:"group_by,omitempty"`
	Having     *ConditionSpec `yaml:"having" json:"having,omitempty"`
	OrderBy    []OrderSpec    `yaml:"order_by" json:"order_by,omitempty"`
	Limit      *uint64        `yaml:"limit" json:"limit,omitempty"`
	Offset     *uint64        `yaml:"offset" json:"offset,omitempty"`
	Except     []QueryFile    `yaml:"except" json:"except,omitempty"`
	Union      []QueryFile    `yaml:"union" json:"union,omitempty"`
}

// SubQuerySpec is a nested SELECT projected as a column.
type SubQuerySpec struct {
	Alias string    `yaml:"alias" json:"alias,omitempty"`
	Query QueryFile `yaml:"query" json:"query"`
}

// JoinSpec is one JOIN clause. Kind defaults to inner.
type JoinSpec struct {
	Kind  string         `yaml:"kind" json:"kind,omitempty"`
	Table string         `yaml:"table" json:"table"`
	On    *ConditionSpec `yaml:"on" json:"on"`
}

// OrderSpec is one ORDER BY entry. Direction defaults to asc.
type OrderSpec struct {
	Columns   []string `yaml:"columns" json:"columns"`
	Direction string   `yaml:"direction" json:"direction,omitempty"`
}

// Comparison is a column compared with a literal value or pattern.
type Comparison struct {
	Column string `yaml:"column" json:"column"`
	Value  string `yaml:"value" json:"value"`
}

// ListSpec is a column tested against a list of literals.
type ListSpec struct {
	Column string   `yaml:"column" json:"column"`
	Values []string `yaml:"values" json:"values"`
}

// ColumnPair compares two columns.
type ColumnPair struct {
	Left  string `yaml:"left" json:"left"`
	Right string `yaml:"right" json:"right"`
}

// ConditionSpec is the file form of a condition tree. Exactly one field
// must be set. And/Or take two or more operands and fold left.
type ConditionSpec struct {
	Eq        *Comparison     `yaml:"eq" json:"eq,omitempty"`
	Ne        *Comparison     `yaml:"ne" json:"ne,omitempty"`
	Gt        *Comparison     `yaml:"gt" json:"gt,omitempty"`
	Ge        *Comparison     `yaml:"ge" json:"ge,omitempty"`
	Lt        *Comparison     `yaml:"lt" json:"lt,omitempty"`
	Le        *Comparison     `yaml:"le" json:"le,omitempty"`
	Like      *Comparison     `yaml:"like" json:"like,omitempty"`
	NotLike   *Comparison     `yaml:"not_like" json:"not_like,omitempty"`
	In        *ListSpec       `yaml:"in" json:"in,omitempty"`
	NotIn     *ListSpec       `yaml:"not_in" json:"not_in,omitempty"`
	IsNull    string          `yaml:"is_null" json:"is_null,omitempty"`
	IsNotNull string          `yaml:"is_not_null" json:"is_not_null,omitempty"`
	EqColumns *ColumnPair     `yaml:"eq_columns" json:"eq_columns,omitempty"`
	And       []ConditionSpec `yaml:"and" json:"and,omitempty"`
	Or        []ConditionSpec `yaml:"or" json:"or,omitempty"`
	Not       *ConditionSpec  `yaml:"not" json:"not,omitempty"`
}

// DynamicSelect is the builder type produced from query files. Results map
// into schemaless rows.
type DynamicSelect = query.Select[row.Dynamic, *row.Dynamic]

// LoadQueryFile reads and decodes a query file, choosing the decoder by
// extension.
func LoadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: err.Error(), Path: path}
	}

	qf := &QueryFile{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, qf); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("decoding YAML: %v", err), Path: path}
		}
	case ".cue":
		value := cuecontext.New().CompileBytes(data, cue.Filename(path))
		if err := value.Err(); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("building CUE value: %v", err), Path: path}
		}
		if err := value.Decode(qf); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("decoding CUE value: %v", err), Path: path}
		}
	default:
		return nil, &LoadError{
			Code:    ErrCodeParseFailed,
			Message: fmt.Sprintf("unsupported query file extension %q: use .yaml, .yml or .cue", filepath.Ext(path)),
			Path:    path,
		}
	}
	return qf, nil
}

// Build converts the file form into a SELECT builder.
func (qf *QueryFile) Build() (*DynamicSelect, error) {
	return qf.build("root")
}

func (qf *QueryFile) build(path string) (*DynamicSelect, error) {
	if qf.Table == "" {
		return nil, fmt.Errorf("%s: table is required", path)
	}

	columns := make([]query.Column, 0, len(qf.Columns)+len(qf.SubQueries))
	for _, c := range qf.Columns {
		columns = append(columns, parseColumn(c))
	}
	for i, sq := range qf.SubQueries {
		inner, err := sq.Query.build(fmt.Sprintf("%s.sub_queries[%d]", path, i))
		if err != nil {
			return nil, err
		}
		columns = append(columns, query.SubQueryOf(inner, sq.Alias))
	}

	q := query.NewSelect[row.Dynamic](columns...).From(row.Name(qf.Table))
	if qf.Distinct {
		q.Distinct()
	}

	for i, j := range qf.Joins {
		jpath := fmt.Sprintf("%s.joins[%d]", path, i)
		kind, err := clause.ParseJoinKind(j.Kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", jpath, err)
		}
		if j.Table == "" {
			return nil, fmt.Errorf("%s: table is required", jpath)
		}
		on, err := j.On.Condition(jpath + ".on")
		if err != nil {
			return nil, err
		}
		if on == nil {
			return nil, fmt.Errorf("%s: on is required", jpath)
		}
		q.Join(kind, row.Name(j.Table), on)
	}

	where, err := qf.Where.Condition(path + ".where")
	if err != nil {
		return nil, err
	}
	q.Where(where)

	having, err := qf.Having.Condition(path + ".having")
	if err != nil {
		return nil, err
	}
	q.GroupBy(qf.GroupBy...).Having(having)

	if len(qf.OrderBy) > 0 {
		var spec clause.OrderBy
		for i, o := range qf.OrderBy {
			dir := clause.Asc
			if o.Direction != "" {
				d, err := clause.ParseDirection(o.Direction)
				if err != nil {
					return nil, fmt.Errorf("%s.order_by[%d]: %w", path, i, err)
				}
				dir = d
			}
			spec = spec.Then(dir, o.Columns...)
		}
		q.OrderBy(spec)
	}

	if qf.Limit != nil {
		q.Limit(*qf.Limit)
	}
	if qf.Offset != nil {
		q.Offset(*qf.Offset)
	}

	for i := range qf.Except {
		sub, err := qf.Except[i].build(fmt.Sprintf("%s.except[%d]", path, i))
		if err != nil {
			return nil, err
		}
		q.Except(sub)
	}
	for i := range qf.Union {
		sub, err := qf.Union[i].build(fmt.Sprintf("%s.union[%d]", path, i))
		if err != nil {
			return nil, err
		}
		q.Union(sub)
	}

	return q, nil
}

// Conditions returns every condition in the file keyed by its path, for
// linting. Specs that fail to convert are reported through the error.
func (qf *QueryFile) Conditions() (map[string]condition.Condition, error) {
	out := make(map[string]condition.Condition)
	if err := qf.collect("root", out); err != nil {
		return nil, err
	}
	return out, nil
}

func (qf *QueryFile) collect(path string, out map[string]condition.Condition) error {
	add := func(p string, spec *ConditionSpec) error {
		c, err := spec.Condition(p)
		if err != nil {
			return err
		}
		if c != nil {
			out[p] = c
		}
		return nil
	}

	if err := add(path+".where", qf.Where); err != nil {
		return err
	}
	if err := add(path+".having", qf.Having); err != nil {
		return err
	}
	for i, j := range qf.Joins {
		if err := add(fmt.Sprintf("%s.joins[%d].on", path, i), j.On); err != nil {
			return err
		}
	}
	for i := range qf.SubQueries {
		if err := qf.SubQueries[i].Query.collect(fmt.Sprintf("%s.sub_queries[%d]", path, i), out); err != nil {
			return err
		}
	}
	for i := range qf.Except {
		if err := qf.Except[i].collect(fmt.Sprintf("%s.except[%d]", path, i), out); err != nil {
			return err
		}
	}
	for i := range qf.Union {
		if err := qf.Union[i].collect(fmt.Sprintf("%s.union[%d]", path, i), out); err != nil {
			return err
		}
	}
	return nil
}

// Condition converts the spec into a condition tree. A nil spec yields a
// nil condition.
func (s *ConditionSpec) Condition(path string) (condition.Condition, error) {
	if s == nil {
		return nil, nil
	}

	var (
		found []string
		out   condition.Condition
	)
	set := func(key string, c condition.Condition) {
		found = append(found, key)
		out = c
	}

	if s.Eq != nil {
		set("eq", condition.Eq{Column: s.Eq.Column, Value: s.Eq.Value})
	}
	if s.Ne != nil {
		set("ne", condition.Ne{Column: s.Ne.Column, Value: s.Ne.Value})
	}
	if s.Gt != nil {
		set("gt", condition.Gt{Column: s.Gt.Column, Value: s.Gt.Value})
	}
	if s.Ge != nil {
		set("ge", condition.Ge{Column: s.Ge.Column, Value: s.Ge.Value})
	}
	if s.Lt != nil {
		set("lt", condition.Lt{Column: s.Lt.Column, Value: s.Lt.Value})
	}
	if s.Le != nil {
		set("le", condition.Le{Column: s.Le.Column, Value: s.Le.Value})
	}
	if s.Like != nil {
		set("like", condition.Like{Column: s.Like.Column, Pattern: s.Like.Value})
	}
	if s.NotLike != nil {
		set("not_like", condition.NotLike{Column: s.NotLike.Column, Pattern: s.NotLike.Value})
	}
	if s.In != nil {
		set("in", condition.In{Column: s.In.Column, Values: s.In.Values})
	}
	if s.NotIn != nil {
		set("not_in", condition.NotIn{Column: s.NotIn.Column, Values: s.NotIn.Values})
	}
	if s.IsNull != "" {
		set("is_null", condition.IsNull{Column: s.IsNull})
	}
	if s.IsNotNull != "" {
		set("is_not_null", condition.IsNotNull{Column: s.IsNotNull})
	}
	if s.EqColumns != nil {
		set("eq_columns", condition.EqColumns{Left: s.EqColumns.Left, Right: s.EqColumns.Right})
	}
	if s.And != nil {
		ops, err := operands(path+".and", s.And)
		if err != nil {
			return nil, err
		}
		set("and", condition.All(ops...))
	}
	if s.Or != nil {
		ops, err := operands(path+".or", s.Or)
		if err != nil {
			return nil, err
		}
		set("or", condition.Any(ops...))
	}
	if s.Not != nil {
		inner, err := s.Not.Condition(path + ".not")
		if err != nil {
			return nil, err
		}
		set("not", condition.Not{Inner: inner})
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%s: condition has no operator", path)
	case 1:
		return out, nil
	default:
		return nil, fmt.Errorf("%s: condition sets several operators %v; nest them under and/or", path, found)
	}
}

func operands(path string, specs []ConditionSpec) ([]condition.Condition, error) {
	if len(specs) < 2 {
		return nil, fmt.Errorf("%s: needs at least two operands", path)
	}
	out := make([]condition.Condition, len(specs))
	for i := range specs {
		c, err := specs[i].Condition(fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

var (
	identPattern     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	qualifiedPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\.([A-Za-z_][A-Za-z0-9_]*)$`)
)

// parseColumn maps "name" to a plain column, "table.name" to a qualified
// one and anything else (aggregates, aliases, *) to a raw expression.
func parseColumn(s string) query.Column {
	s = strings.TrimSpace(s)
	if identPattern.MatchString(s) {
		return query.Name(s)
	}
	if m := qualifiedPattern.FindStringSubmatch(s); m != nil {
		return query.Qualified{Table: m[1], Column: m[2]}
	}
	return query.Expr(s)
}
