package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDownloadScript(t *testing.T) {
	argsJSON := `{"repo_id":"bert-base-uncased","repo_type":"model","etag_timeout":86400,"revision":"main"}`
	script := BuildDownloadScript(argsJSON)
	assert.Contains(t, script, `importlib.import_module("huggingface_download")`)
	assert.Contains(t, script, `getattr(m,"download")`)
	assert.Contains(t, script, argsJSON)
	assert.Contains(t, script, `"model_path":r`)
}

func TestBuildUploadScript(t *testing.T) {
	argsJSON := `{"folder_path":"/tmp/model","repo_id":"org/model"}`
	script := BuildUploadScript(argsJSON)
	assert.Contains(t, script, `importlib.import_module("huggingface_upload")`)
	assert.Contains(t, script, `getattr(m,"upload")`)
	assert.Contains(t, script, argsJSON)
	assert.NotContains(t, script, "model_path")
}

func TestBuildDownloadScript_ForwardsArgsUnmodified(t *testing.T) {
	args := map[string]interface{}{
		"repo_id":      "bert-base-uncased",
		"repo_type":    "model",
		"etag_timeout": 86400,
		"revision":     "main",
	}
	argsJSON, err := json.Marshal(args)
	assert.NoError(t, err)
	script := BuildDownloadScript(string(argsJSON))
	assert.Contains(t, script, `json.loads("""`+string(argsJSON)+`""")`)

	// The payload embedded in the script round-trips to the exact supplied values.
	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(argsJSON, &decoded))
	assert.Equal(t, "bert-base-uncased", decoded["repo_id"])
	assert.Equal(t, "model", decoded["repo_type"])
	assert.Equal(t, float64(86400), decoded["etag_timeout"])
	assert.Equal(t, "main", decoded["revision"])
}

func TestExtractDelegateScripts(t *testing.T) {
	scriptDir, cleanup, err := extractDelegateScripts()
	assert.NoError(t, err)
	defer cleanup()
	assert.True(t, filepath.IsAbs(scriptDir))

	for _, scriptName := range []string{"huggingface_download.py", "huggingface_upload.py"} {
		data, err := os.ReadFile(filepath.Join(scriptDir, scriptName))
		assert.NoError(t, err)
		assert.Contains(t, string(data), "huggingface_hub")
	}
}

func TestExtractDelegateScripts_CleanupRemovesDir(t *testing.T) {
	scriptDir, cleanup, err := extractDelegateScripts()
	assert.NoError(t, err)
	cleanup()
	_, err = os.Stat(scriptDir)
	assert.True(t, os.IsNotExist(err))
}

func TestParseDelegateOutput(t *testing.T) {
	testCases := []struct {
		testName   string
		output     string
		runErr     error
		expectErr  string
		expectPath string
	}{
		{
			testName:   "success with model path",
			output:     `{"success":true,"model_path":"/path/to/model"}`,
			expectPath: "/path/to/model",
		},
		{
			testName: "success without model path",
			output:   `{"success":true}`,
		},
		{
			testName:  "delegate error propagates unchanged",
			output:    `{"success":false,"error":"404 Client Error: Repository Not Found"}`,
			expectErr: "404 Client Error: Repository Not Found",
		},
		{
			testName:  "empty output",
			output:    "",
			expectErr: "produced no output",
		},
		{
			testName:  "invalid json",
			output:    "Traceback (most recent call last):",
			expectErr: "failed to parse Python script output",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			result, err := parseDelegateOutput([]byte(tc.output), tc.runErr)
			if tc.expectErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectPath, result.ModelPath)
		})
	}
}
