package commands

import (
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jfrog/gofrog/version"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

const minPythonVersion = "3.0"

// hfTransferEnv is the huggingface_hub switch for Rust-accelerated transfers. When the
// user turns it on, the hf_transfer package must be importable or the hub client fails.
const hfTransferEnv = "HF_HUB_ENABLE_HF_TRANSFER"

// GetPythonPath finds a Python 3 interpreter in PATH. It tries "python3" first, then
// falls back to "python", and verifies the interpreter's version in both cases.
func GetPythonPath() (string, error) {
	pythonPath, err := exec.LookPath("python3")
	if err == nil {
		log.Debug("Found Python interpreter: ", pythonPath)
		if err = verifyPythonVersion(pythonPath); err == nil {
			return pythonPath, nil
		}
	}
	pythonPath, err = exec.LookPath("python")
	if err != nil {
		return "", errorutils.CheckErrorf("neither python3 nor python found in PATH. Please ensure Python 3 is installed and available in your PATH")
	}
	log.Debug("Found Python interpreter: ", pythonPath)
	if err = verifyPythonVersion(pythonPath); err != nil {
		return "", err
	}
	return pythonPath, nil
}

// verifyPythonVersion checks that the interpreter is at least Python 3.
func verifyPythonVersion(pythonPath string) error {
	cmd := exec.Command(pythonPath, "-c", `import sys; print("%d.%d" % sys.version_info[:2])`)
	output, err := cmd.Output()
	if err != nil {
		return errorutils.CheckErrorf("failed to get Python version: %w", err)
	}
	pythonVersion := strings.TrimSpace(string(output))
	if !version.NewVersion(pythonVersion).AtLeast(minPythonVersion) {
		return errorutils.CheckErrorf("Python version %s found, but version %s or higher is required", pythonVersion, minPythonVersion)
	}
	log.Debug("Python version ", pythonVersion, " verified (minimum required: ", minPythonVersion, ")")
	return nil
}

// InstallHubClient makes sure the huggingface_hub library is importable, installing it
// with pip when missing.
func InstallHubClient(pythonPath string) error {
	return ensurePythonModule(pythonPath, "huggingface_hub")
}

// InstallTransferAccelerator makes sure the hf_transfer library is importable.
// hf_transfer speeds up transfers with HuggingFace-compatible endpoints.
func InstallTransferAccelerator(pythonPath string) error {
	return ensurePythonModule(pythonPath, "hf_transfer")
}

// transferAcceleratorEnabled reports whether the user opted into hf_transfer via
// HF_HUB_ENABLE_HF_TRANSFER.
func transferAcceleratorEnabled() bool {
	enabled, err := strconv.ParseBool(os.Getenv(hfTransferEnv))
	return err == nil && enabled
}

// ensurePythonModule installs the named module with pip if it cannot be imported.
// Uses --user for externally-managed environments (PEP 668), with
// --break-system-packages as a fallback.
func ensurePythonModule(pythonPath, moduleName string) error {
	checkCmd := exec.Command(pythonPath, "-c", "import "+moduleName)
	if err := checkCmd.Run(); err == nil {
		log.Debug(moduleName, " is already installed")
		return nil
	}
	log.Info("Installing ", moduleName, " library...")
	installCmd := exec.Command(pythonPath, "-m", "pip", "install", moduleName, "--user", "--quiet")
	installCmd.Stdout = os.Stdout
	installCmd.Stderr = os.Stderr
	if err := installCmd.Run(); err != nil {
		log.Debug("User install failed, trying with --break-system-packages")
		fallbackCmd := exec.Command(pythonPath, "-m", "pip", "install", moduleName, "--break-system-packages", "--quiet")
		fallbackCmd.Stdout = os.Stdout
		fallbackCmd.Stderr = os.Stderr
		if fallbackErr := fallbackCmd.Run(); fallbackErr != nil {
			return errorutils.CheckErrorf("failed to install %s: %w. Please install manually using: pip install %s --user", moduleName, err, moduleName)
		}
	}
	log.Info(moduleName, " installed successfully")
	return nil
}
