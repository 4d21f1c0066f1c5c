package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mjovanc/njord/internal/condition"
	"github.com/mjovanc/njord/internal/query"
)

func queryPath(name string) string {
	return filepath.Join("testdata", "queries", name)
}

func TestLoadQueryFile_YAML(t *testing.T) {
	qf, err := LoadQueryFile(queryPath("join_group_order.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "users", qf.Table)
	assert.Len(t, qf.Columns, 3)
	require.Len(t, qf.Joins, 1)
	assert.Equal(t, "left", qf.Joins[0].Kind)
	assert.Equal(t, []string{"users.id", "users.username"}, qf.GroupBy)
	require.NotNil(t, qf.Limit)
	assert.Equal(t, uint64(10), *qf.Limit)
	require.NotNil(t, qf.Offset)
	assert.Equal(t, uint64(5), *qf.Offset)
}

func TestLoadQueryFile_CUE(t *testing.T) {
	qf, err := LoadQueryFile(queryPath("except_union.cue"))
	require.NoError(t, err)

	assert.Equal(t, "users", qf.Table)
	require.NotNil(t, qf.Where)
	require.NotNil(t, qf.Where.Ge)
	assert.Equal(t, "1", qf.Where.Ge.Value)
	require.Len(t, qf.Except, 1)
	require.Len(t, qf.Union, 1)
	assert.Equal(t, "admins", qf.Union[0].Table)
}

func TestLoadQueryFile_Errors(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "query.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"table": "users"}`), 0o644))
	badCUE := filepath.Join(dir, "query.cue")
	require.NoError(t, os.WriteFile(badCUE, []byte(`table: "users`), 0o644))

	testCases := []struct {
		name     string
		path     string
		wantCode string
	}{
		{name: "missing file", path: filepath.Join(dir, "none.yaml"), wantCode: ErrCodeNotFound},
		{name: "broken yaml", path: queryPath("broken.yaml"), wantCode: ErrCodeParseFailed},
		{name: "broken cue", path: badCUE, wantCode: ErrCodeParseFailed},
		{name: "unsupported extension", path: jsonPath, wantCode: ErrCodeParseFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadQueryFile(tc.path)
			require.Error(t, err)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tc.wantCode, loadErr.Code)
			assert.Equal(t, tc.path, loadErr.Path)
		})
	}
}

func TestQueryFile_Build(t *testing.T) {
	qf, err := LoadQueryFile(queryPath("users.yaml"))
	require.NoError(t, err)

	q, err := qf.Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, username FROM users  WHERE username = 'mjovanc'   ", q.BuildQuery())
}

func TestQueryFile_BuildErrors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "missing table",
			input:   `columns: [id]`,
			wantErr: "root: table is required",
		},
		{
			name: "two operators",
			input: `
table: users
where:
  eq: {column: id, value: "1"}
  ne: {column: id, value: "2"}
`,
			wantErr: "root.where: condition sets several operators [eq ne]",
		},
		{
			name: "empty condition",
			input: `
table: users
having: {}
`,
			wantErr: "root.having: condition has no operator",
		},
		{
			name: "single and operand",
			input: `
table: users
where:
  and:
    - eq: {column: id, value: "1"}
`,
			wantErr: "root.where.and: needs at least two operands",
		},
		{
			name: "bad join kind",
			input: `
table: users
joins:
  - kind: cross
    table: products
    on: {eq_columns: {left: users.id, right: products.user_id}}
`,
			wantErr: "root.joins[0]: invalid join kind",
		},
		{
			name: "join without on",
			input: `
table: users
joins:
  - table: products
`,
			wantErr: "root.joins[0]: on is required",
		},
		{
			name: "bad direction",
			input: `
table: users
order_by:
  - columns: [id]
    direction: sideways
`,
			wantErr: "root.order_by[0]: invalid order direction",
		},
		{
			name: "nested union error",
			input: `
table: users
union:
  - columns: [id]
`,
			wantErr: "root.union[0]: table is required",
		},
		{
			name: "nested not error",
			input: `
table: users
where:
  not: {}
`,
			wantErr: "root.where.not: condition has no operator",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var qf QueryFile
			require.NoError(t, yaml.Unmarshal([]byte(tc.input), &qf))

			_, err := qf.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestQueryFile_Conditions(t *testing.T) {
	qf, err := LoadQueryFile(queryPath("join_group_order.yaml"))
	require.NoError(t, err)

	conds, err := qf.Conditions()
	require.NoError(t, err)
	assert.Len(t, conds, 3)
	assert.Contains(t, conds, "root.where")
	assert.Contains(t, conds, "root.having")
	assert.Equal(t, condition.EqColumns{Left: "users.id", Right: "products.user_id"}, conds["root.joins[0].on"])

	qf, err = LoadQueryFile(queryPath("products_by_owner.yaml"))
	require.NoError(t, err)
	conds, err = qf.Conditions()
	require.NoError(t, err)
	assert.Equal(t, []string{"root.sub_queries[0].where"}, keys(conds))
}

func TestConditionSpec_Condition(t *testing.T) {
	var spec ConditionSpec
	require.NoError(t, yaml.Unmarshal([]byte(`
or:
  - in: {column: id, values: ["1", "2"]}
  - not:
      like: {column: username, value: "adm%"}
  - is_null: address
`), &spec))

	c, err := spec.Condition("root")
	require.NoError(t, err)
	assert.Equal(t, condition.Or{
		Left: condition.Or{
			Left:  condition.In{Column: "id", Values: []string{"1", "2"}},
			Right: condition.Not{Inner: condition.Like{Column: "username", Pattern: "adm%"}},
		},
		Right: condition.IsNull{Column: "address"},
	}, c)

	var nilSpec *ConditionSpec
	c, err = nilSpec.Condition("root")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestParseColumn(t *testing.T) {
	testCases := []struct {
		input string
		want  query.Column
	}{
		{input: "id", want: query.Name("id")},
		{input: " username ", want: query.Name("username")},
		{input: "users.id", want: query.Qualified{Table: "users", Column: "id"}},
		{input: "COUNT(*)", want: query.Expr("COUNT(*)")},
		{input: "price AS cost", want: query.Expr("price AS cost")},
		{input: "*", want: query.Expr("*")},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, parseColumn(tc.input))
		})
	}
}

func keys(m map[string]condition.Condition) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
