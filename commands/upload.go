package commands

import (
	"fmt"

	buildUtils "github.com/jfrog/jfrog-cli-core/v2/common/build"
	"github.com/jfrog/jfrog-cli-core/v2/utils/config"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// UploadCommand uploads a local folder to a HuggingFace-compatible repository. Transfer
// mechanics are delegated to huggingface_hub; when a build configuration is attached,
// the uploaded artifacts are collected into local build info after the transfer.
type UploadCommand struct {
	name               string
	folderPath         string
	repoId             string
	revision           string
	repoType           string
	hubArgs            map[string]interface{}
	serverDetails      *config.ServerDetails
	buildConfiguration *buildUtils.BuildConfiguration
}

// NewUploadCommand creates a new instance of UploadCommand
func NewUploadCommand() *UploadCommand {
	return &UploadCommand{}
}

// Run executes the upload command to push a model or dataset folder
func (hfu *UploadCommand) Run() error {
	if hfu.folderPath == "" {
		return errorutils.CheckErrorf("folder_path cannot be empty")
	}
	if hfu.repoId == "" {
		return errorutils.CheckErrorf("repo_id cannot be empty")
	}
	pythonPath, err := GetPythonPath()
	if err != nil {
		return err
	}
	if err = InstallHubClient(pythonPath); err != nil {
		return err
	}
	if transferAcceleratorEnabled() {
		if err = InstallTransferAccelerator(pythonPath); err != nil {
			return err
		}
	}
	if err = runFolderUpload(pythonPath, hfu.delegateArgs()); err != nil {
		return err
	}
	log.Info(fmt.Sprintf("Uploaded successfully to: %s", hfu.repoId))
	if hfu.buildConfiguration != nil {
		return hfu.collectBuildInfo()
	}
	return nil
}

// delegateArgs builds the keyword arguments forwarded to upload_folder. Revision and
// repo type are omitted entirely when unset so the delegate applies its own defaults;
// extra hub arguments pass through without filtering.
func (hfu *UploadCommand) delegateArgs() map[string]interface{} {
	args := map[string]interface{}{
		"folder_path": hfu.folderPath,
		"repo_id":     hfu.repoId,
	}
	if hfu.revision != "" {
		args["revision"] = hfu.revision
	}
	if hfu.repoType != "" {
		args["repo_type"] = hfu.repoType
	}
	for key, value := range hfu.hubArgs {
		args[key] = value
	}
	return args
}

// ServerDetails returns the server details configuration for the command
func (hfu *UploadCommand) ServerDetails() (*config.ServerDetails, error) {
	return hfu.serverDetails, nil
}

// CommandName returns the name of the command
func (hfu *UploadCommand) CommandName() string {
	return hfu.name
}

// SetFolderPath sets the folder path to upload for the upload command
func (hfu *UploadCommand) SetFolderPath(folderPath string) *UploadCommand {
	hfu.folderPath = folderPath
	return hfu
}

// SetRepoId sets the repository ID for the upload command
func (hfu *UploadCommand) SetRepoId(repoId string) *UploadCommand {
	hfu.repoId = repoId
	return hfu
}

// SetRevision sets the revision (branch, tag, or commit) for the upload command
func (hfu *UploadCommand) SetRevision(revision string) *UploadCommand {
	hfu.revision = revision
	return hfu
}

// SetRepoType sets the repository type (model or dataset) for the upload command
func (hfu *UploadCommand) SetRepoType(repoType string) *UploadCommand {
	hfu.repoType = repoType
	return hfu
}

// SetHubArg adds an extra keyword argument forwarded to upload_folder as-is
func (hfu *UploadCommand) SetHubArg(key string, value interface{}) *UploadCommand {
	if hfu.hubArgs == nil {
		hfu.hubArgs = make(map[string]interface{})
	}
	hfu.hubArgs[key] = value
	return hfu
}

// SetServerDetails sets the server details configuration for the upload command
func (hfu *UploadCommand) SetServerDetails(serverDetails *config.ServerDetails) *UploadCommand {
	hfu.serverDetails = serverDetails
	return hfu
}

// SetBuildConfiguration sets the build configuration for build info collection
func (hfu *UploadCommand) SetBuildConfiguration(buildConfiguration *buildUtils.BuildConfiguration) *UploadCommand {
	hfu.buildConfiguration = buildConfiguration
	return hfu
}

// SetName sets the name of the command
func (hfu *UploadCommand) SetName(name string) *UploadCommand {
	hfu.name = name
	return hfu
}
