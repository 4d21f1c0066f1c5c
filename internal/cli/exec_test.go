package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaPath = filepath.Join("testdata", "schema.sql")

func TestExec_Text(t *testing.T) {
	out, _, err := runCommand(t, "exec", "--schema", schemaPath, queryPath("users.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "id\tusername\n1\tmjovanc\n", out)
}

func TestExec_AllRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "all.yaml")
	writeFile(t, path, `
table: users
columns: [username, address]
order_by:
  - columns: [username]
`)

	out, _, err := runCommand(t, "exec", "--schema", schemaPath, path)
	require.NoError(t, err)
	assert.Equal(t, "username\taddress\nastrid\tNULL\nmjovanc\tGothenburg\n", out)
}

func TestExec_JSON(t *testing.T) {
	out, errOut, err := runCommand(t, "--format", "json", "exec", "--schema", schemaPath, queryPath("users.yaml"))
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   ExecResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"id", "username"}, resp.Data.Columns)
	assert.Equal(t, []map[string]string{{"id": "1", "username": "mjovanc"}}, resp.Data.Rows)
	assert.Equal(t, "SELECT id, username FROM users  WHERE username = 'mjovanc'   ", resp.Data.SQL)

	// Execution logs go to stderr as JSON and carry the same query id.
	require.NotEmpty(t, resp.Data.QueryID)
	assert.Contains(t, errOut, `"query_id":"`+resp.Data.QueryID+`"`)
	assert.Contains(t, errOut, `"msg":"executing query"`)
}

func TestExec_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "shop.db")
	cfgPath := filepath.Join(dir, "njord.hcl")
	writeFile(t, cfgPath, `driver = "sqlite3"
dsn = "`+dbPath+`"
log_level = "error"
`)

	// First run creates the table in the file database, second run reads it
	// back without --schema.
	_, _, err := runCommand(t, "--config", cfgPath, "exec", "--schema", schemaPath, queryPath("users.yaml"))
	require.NoError(t, err)

	out, errOut, err := runCommand(t, "--config", cfgPath, "exec", queryPath("users.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "id\tusername\n1\tmjovanc\n", out)
	assert.Empty(t, errOut)
}

func TestExec_Errors(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		args     []string
		wantCode string
		wantExit int
	}{
		{
			name:     "unknown table",
			args:     []string{"exec", queryPath("users.yaml")},
			wantCode: ErrCodeQueryFailed,
			wantExit: ExitFailure,
		},
		{
			name:     "bad driver",
			args:     []string{"--driver", "oracle", "exec", queryPath("users.yaml")},
			wantCode: ErrCodeConfig,
			wantExit: ExitCommandError,
		},
		{
			name:     "unreachable database",
			args:     []string{"--dsn", filepath.Join(dir, "missing", "shop.db"), "exec", queryPath("users.yaml")},
			wantCode: ErrCodeConnection,
			wantExit: ExitCommandError,
		},
		{
			name:     "missing schema file",
			args:     []string{"exec", "--schema", filepath.Join(dir, "none.sql"), queryPath("users.yaml")},
			wantCode: ErrCodeNotFound,
			wantExit: ExitCommandError,
		},
		{
			name:     "missing query file",
			args:     []string{"exec", queryPath("absent.yaml")},
			wantCode: ErrCodeNotFound,
			wantExit: ExitCommandError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runCommand(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, tc.wantExit, ExitCode(err))
			assert.Contains(t, out, "Error ["+tc.wantCode+"]")
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
