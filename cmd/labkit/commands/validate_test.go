package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCleanProject(t *testing.T) {
	root := writeProject(t, projectDocs())

	out, err := executeCommand(t, "validate", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed")
}

func TestValidateBrokenTemplate(t *testing.T) {
	docs := projectDocs()
	docs["files"] = "templates:\n  cube: \"{data.raw}/{galxy}_cube.fits\"\n"
	root := writeProject(t, docs)

	out, err := executeCommand(t, "validate", "--root", root)
	require.Error(t, err)
	assert.Contains(t, out, "templates.cube")
	assert.Contains(t, out, "galxy")
	// nearest existing key by edit distance
	assert.Contains(t, out, "galaxy")
}

func TestValidateJSONFormat(t *testing.T) {
	docs := projectDocs()
	docs["files"] = "templates:\n  cube: \"{missing.key}\"\n"
	root := writeProject(t, docs)

	out, err := executeCommand(t, "validate", "--root", root, "--format", "json")
	require.Error(t, err)

	var report struct {
		Issues []struct {
			Severity string `json:"severity"`
			Key      string `json:"key"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "error", report.Issues[0].Severity)
	assert.Equal(t, "templates.cube", report.Issues[0].Key)
}

func TestValidateMissingConfigs(t *testing.T) {
	root := t.TempDir()

	out, err := executeCommand(t, "validate", "--root", root)
	require.Error(t, err)
	assert.Contains(t, out, "paths.yaml")
	assert.Contains(t, out, "params.yaml")
	assert.Contains(t, out, "files.yaml")
}
