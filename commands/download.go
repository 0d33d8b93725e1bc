package commands

import (
	"github.com/jfrog/jfrog-cli-core/v2/utils/config"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// DefaultEtagTimeout is the fallback ETag validation timeout, in seconds (24 hours).
const DefaultEtagTimeout = 86400

const defaultRepoType = "model"

// DownloadCommand downloads a model or dataset snapshot from a HuggingFace-compatible
// repository. All transfer mechanics (chunking, caching, retries) are delegated to the
// huggingface_hub library; this command only marshals parameters.
type DownloadCommand struct {
	name          string
	repoId        string
	revision      string
	repoType      string
	etagTimeout   int
	summaryFormat string
	hubArgs       map[string]interface{}
	serverDetails *config.ServerDetails
}

// NewDownloadCommand creates a new instance of DownloadCommand
func NewDownloadCommand() *DownloadCommand {
	return &DownloadCommand{}
}

// Run executes the download command to fetch a model or dataset snapshot
func (hfd *DownloadCommand) Run() error {
	if hfd.repoId == "" {
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
	snapshotPath, err := runSnapshotDownload(pythonPath, hfd.delegateArgs())
	if err != nil {
		return err
	}
	log.Info("Downloaded successfully to:", snapshotPath)
	if hfd.summaryFormat != "" {
		return PrintSnapshotSummary(snapshotPath, hfd.summaryFormat)
	}
	return nil
}

// delegateArgs builds the keyword arguments forwarded to snapshot_download. An unset
// revision stays absent so the delegate resolves the remote default branch itself;
// extra hub arguments pass through without filtering.
func (hfd *DownloadCommand) delegateArgs() map[string]interface{} {
	args := map[string]interface{}{
		"repo_id":      hfd.repoId,
		"etag_timeout": hfd.etagTimeout,
	}
	if hfd.revision != "" {
		args["revision"] = hfd.revision
	}
	if hfd.repoType != "" {
		args["repo_type"] = hfd.repoType
	} else {
		args["repo_type"] = defaultRepoType
	}
	for key, value := range hfd.hubArgs {
		args[key] = value
	}
	return args
}

// ServerDetails returns the server details configuration for the command
func (hfd *DownloadCommand) ServerDetails() (*config.ServerDetails, error) {
	return hfd.serverDetails, nil
}

// CommandName returns the name of the command
func (hfd *DownloadCommand) CommandName() string {
	return hfd.name
}

// SetRepoId sets the repository ID for the download command
func (hfd *DownloadCommand) SetRepoId(repoId string) *DownloadCommand {
	hfd.repoId = repoId
	return hfd
}

// SetRevision sets the revision (branch, tag, or commit) for the download command
func (hfd *DownloadCommand) SetRevision(revision string) *DownloadCommand {
	hfd.revision = revision
	return hfd
}

// SetRepoType sets the repository type (model, dataset, or space) for the download command
func (hfd *DownloadCommand) SetRepoType(repoType string) *DownloadCommand {
	hfd.repoType = repoType
	return hfd
}

// SetEtagTimeout sets the ETag validation timeout in seconds for the download command
func (hfd *DownloadCommand) SetEtagTimeout(etagTimeout int) *DownloadCommand {
	hfd.etagTimeout = etagTimeout
	return hfd
}

// SetSummaryFormat enables printing a snapshot contents summary after the download.
// Supported formats: "table", "json".
func (hfd *DownloadCommand) SetSummaryFormat(format string) *DownloadCommand {
	hfd.summaryFormat = format
	return hfd
}

// SetHubArg adds an extra keyword argument forwarded to snapshot_download as-is
func (hfd *DownloadCommand) SetHubArg(key string, value interface{}) *DownloadCommand {
	if hfd.hubArgs == nil {
		hfd.hubArgs = make(map[string]interface{})
	}
	hfd.hubArgs[key] = value
	return hfd
}

// SetServerDetails sets the server details configuration for the download command
func (hfd *DownloadCommand) SetServerDetails(serverDetails *config.ServerDetails) *DownloadCommand {
	hfd.serverDetails = serverDetails
	return hfd
}

// SetName sets the name of the command
func (hfd *DownloadCommand) SetName(name string) *DownloadCommand {
	hfd.name = name
	return hfd
}
