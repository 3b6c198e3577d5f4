package harness

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/brettbedarf/foldertree"
	"github.com/brettbedarf/foldertree/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDemoScript(t *testing.T) {
	t.Parallel()
	tr := newTestTree(t)

	script := DemoScript()
	outcomes, err := RunScript(tr, script)
	require.NoError(t, err)
	require.Len(t, outcomes, len(script.Steps))
	for _, out := range outcomes {
		assert.Empty(t, out.Failure, out.Operation.String())
	}
}

func TestRunScript_ReportsMismatches(t *testing.T) {
	t.Parallel()
	tr := newTestTree(t)

	script := &Script{Steps: []Step{
		{Op: "create", Path: "/a/", Expect: "0"},
		{Op: "create", Path: "/a/", Expect: "0"},
		{Op: "list", Path: "/", Listing: util.Pointer("b")},
		{Op: "list", Path: "/", Listing: util.Pointer("a")},
	}}
	outcomes, err := RunScript(tr, script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 4 steps failed")

	require.Len(t, outcomes, 4)
	assert.Empty(t, outcomes[0].Failure)
	assert.Equal(t, "expected 0, got EEXIST", outcomes[1].Failure)
	assert.Equal(t, `expected listing "b", got "a"`, outcomes[2].Failure)
	assert.Empty(t, outcomes[3].Failure)
}

func TestRunScript_MalformedStep(t *testing.T) {
	t.Parallel()
	tr := newTestTree(t)

	_, err := RunScript(tr, &Script{Steps: []Step{{Op: "rename", Path: "/a/"}}})
	assert.ErrorContains(t, err, "step 1")

	_, err = RunScript(tr, &Script{Steps: []Step{{Op: "list", Path: "/", Expect: "EWHAT"}}})
	assert.ErrorContains(t, err, "unknown result code")
}

func TestLoadScript(t *testing.T) {
	t.Parallel()

	script := DemoScript()
	yamlData, err := yaml.Marshal(script)
	require.NoError(t, err)
	jsonData, err := json.Marshal(script)
	require.NoError(t, err)

	for name, data := range map[string][]byte{"demo.yaml": yamlData, "demo.json": jsonData} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			loaded, err := LoadScript(path)
			require.NoError(t, err)
			assert.Equal(t, script, loaded)
		})
	}
}

func TestLoadScript_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := LoadScript(filepath.Join(dir, "missing.yaml"))
	assert.True(t, os.IsNotExist(err))

	txt := filepath.Join(dir, "script.txt")
	require.NoError(t, os.WriteFile(txt, []byte("steps: []"), 0o600))
	_, err = LoadScript(txt)
	assert.ErrorContains(t, err, "unknown script file extension")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadScript(bad)
	assert.ErrorContains(t, err, "failed to unmarshal script")
}

func TestParseCode(t *testing.T) {
	for c := foldertree.OK; c <= foldertree.Unknown; c++ {
		got, err := ParseCode(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCode("nope")
	assert.Error(t, err)
}
