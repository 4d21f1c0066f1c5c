package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args and returns stdout,
// stderr and the command error.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRender_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	testCases := []struct {
		name string
		file string
	}{
		{name: "join_group_order", file: "join_group_order.yaml"},
		{name: "except_union", file: "except_union.cue"},
		{name: "products_by_owner", file: "products_by_owner.yaml"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runCommand(t, "render", queryPath(tc.file))
			require.NoError(t, err)
			g.Assert(t, tc.name, []byte(out))
		})
	}
}

func TestRender_JSON(t *testing.T) {
	out, _, err := runCommand(t, "--format", "json", "render", queryPath("users.yaml"))
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   RenderResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "SELECT id, username FROM users  WHERE username = 'mjovanc'   ", resp.Data.SQL)
}

func TestRender_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		file     string
		wantCode string
	}{
		{name: "missing file", file: "absent.yaml", wantCode: ErrCodeNotFound},
		{name: "broken yaml", file: "broken.yaml", wantCode: ErrCodeParseFailed},
		{name: "missing table", file: "missing_table.yaml", wantCode: ErrCodeInvalidQuery},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runCommand(t, "render", queryPath(tc.file))
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, ExitCode(err))
			assert.Contains(t, err.Error(), tc.wantCode)
			assert.Contains(t, out, "Error ["+tc.wantCode+"]")
		})
	}
}

func TestRender_JSONError(t *testing.T) {
	out, _, err := runCommand(t, "--format", "json", "render", queryPath("missing_table.yaml"))
	require.Error(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidQuery, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "table is required")
}
