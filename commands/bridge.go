package commands

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

//go:embed scripts/*.py
var delegateScripts embed.FS

const (
	downloadModule   = "huggingface_download"
	downloadFunction = "download"
	uploadModule     = "huggingface_upload"
	uploadFunction   = "upload"
)

// delegateTemplate executes one of the embedded delegate functions via importlib and
// reports the outcome as a single JSON envelope on stdout.
// Format arguments: module name, function name, success block.
const delegateTemplate = `import sys,json,importlib
try:
	m=importlib.import_module("%s")
	f=getattr(m,"%s")
	%s
except Exception as e:
	print(json.dumps({"success":False,"error":str(e)}))
	sys.exit(1)`

const downloadSuccessBlock = `r=f(**json.loads("""%s"""))
	print(json.dumps({"success":True,"model_path":r}))`

const uploadSuccessBlock = `f(**json.loads("""%s"""))
	print(json.dumps({"success":True}))`

// delegateResult is the JSON envelope printed by the delegate wrapper.
type delegateResult struct {
	Success   bool   `json:"success"`
	ModelPath string `json:"model_path,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BuildDownloadScript builds the Python one-liner that invokes the download delegate
// with the given JSON-encoded keyword arguments.
func BuildDownloadScript(argsJSON string) string {
	successBlock := fmt.Sprintf(downloadSuccessBlock, argsJSON)
	return fmt.Sprintf(delegateTemplate, downloadModule, downloadFunction, successBlock)
}

// BuildUploadScript builds the Python one-liner that invokes the upload delegate
// with the given JSON-encoded keyword arguments.
func BuildUploadScript(argsJSON string) string {
	successBlock := fmt.Sprintf(uploadSuccessBlock, argsJSON)
	return fmt.Sprintf(delegateTemplate, uploadModule, uploadFunction, successBlock)
}

// extractDelegateScripts materializes the embedded delegate scripts into a temporary
// directory so the interpreter can import them regardless of where the binary runs from.
// The caller must invoke the returned cleanup function.
func extractDelegateScripts() (scriptDir string, cleanup func(), err error) {
	scriptDir, err = os.MkdirTemp("", "jfrog-huggingface-")
	if err != nil {
		return "", nil, errorutils.CheckErrorf("failed to create delegate scripts directory: %w", err)
	}
	cleanup = func() {
		if removeErr := os.RemoveAll(scriptDir); removeErr != nil {
			log.Warn("Failed to remove delegate scripts directory:", removeErr.Error())
		}
	}
	entries, err := delegateScripts.ReadDir("scripts")
	if err != nil {
		cleanup()
		return "", nil, errorutils.CheckError(err)
	}
	for _, entry := range entries {
		data, readErr := delegateScripts.ReadFile("scripts/" + entry.Name())
		if readErr != nil {
			cleanup()
			return "", nil, errorutils.CheckError(readErr)
		}
		if writeErr := os.WriteFile(filepath.Join(scriptDir, entry.Name()), data, 0o600); writeErr != nil {
			cleanup()
			return "", nil, errorutils.CheckErrorf("failed to write delegate script %s: %w", entry.Name(), writeErr)
		}
	}
	return scriptDir, cleanup, nil
}

// runSnapshotDownload forwards the given keyword arguments to the download delegate
// and returns the snapshot path it reports. Delegate failures surface as-is.
func runSnapshotDownload(pythonPath string, args map[string]interface{}) (string, error) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return "", errorutils.CheckErrorf("failed to marshal arguments to JSON: %w", err)
	}
	scriptDir, cleanup, err := extractDelegateScripts()
	if err != nil {
		return "", err
	}
	defer cleanup()
	log.Debug("Executing Python function to download ", args["repo_type"], ": ", args["repo_id"])
	cmd := exec.Command(pythonPath, "-c", BuildDownloadScript(string(argsJSON)))
	cmd.Dir = scriptDir
	output, err := cmd.CombinedOutput()
	result, err := parseDelegateOutput(output, err)
	if err != nil {
		return "", err
	}
	return result.ModelPath, nil
}

// runFolderUpload forwards the given keyword arguments to the upload delegate. Stdout is
// reserved for the JSON envelope; huggingface_hub progress output goes to stderr.
func runFolderUpload(pythonPath string, args map[string]interface{}) error {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return errorutils.CheckErrorf("failed to marshal arguments to JSON: %w", err)
	}
	scriptDir, cleanup, err := extractDelegateScripts()
	if err != nil {
		return err
	}
	defer cleanup()
	log.Debug("Executing Python function to upload ", args["repo_type"], ": ", args["folder_path"], " to ", args["repo_id"])
	cmd := exec.Command(pythonPath, "-u", "-c", BuildUploadScript(string(argsJSON)))
	cmd.Dir = scriptDir
	var stdoutBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = io.MultiWriter(os.Stderr)
	err = cmd.Run()
	_, err = parseDelegateOutput(stdoutBuf.Bytes(), err)
	return err
}

// parseDelegateOutput decodes the delegate's JSON envelope, preferring the delegate's
// own error message over the raw process exit error.
func parseDelegateOutput(output []byte, runErr error) (*delegateResult, error) {
	if len(output) == 0 {
		if runErr != nil {
			return nil, errorutils.CheckErrorf("Python script produced no output and exited with error: %w", runErr)
		}
		return nil, errorutils.CheckErrorf("Python script produced no output. The script may not be executing correctly.")
	}
	var result delegateResult
	if jsonErr := json.Unmarshal(output, &result); jsonErr != nil {
		if runErr != nil {
			return nil, errorutils.CheckErrorf("failed to execute Python script: %w, output: %s", runErr, string(output))
		}
		return nil, errorutils.CheckErrorf("failed to parse Python script output: %w, output: %s", jsonErr, string(output))
	}
	if !result.Success {
		return nil, errorutils.CheckErrorf("%s", result.Error)
	}
	if runErr != nil {
		return nil, errorutils.CheckErrorf("Python script execution failed: %w", runErr)
	}
	return &result, nil
}
