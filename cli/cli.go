package cli

import (
	"encoding/json"
	"strconv"
	"strings"

	buildUtils "github.com/jfrog/jfrog-cli-core/v2/common/build"
	commonCliUtils "github.com/jfrog/jfrog-cli-core/v2/common/cliutils"
	pluginsCommon "github.com/jfrog/jfrog-cli-core/v2/plugins/common"
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
	"github.com/jfrog/jfrog-cli-huggingface/commands"
	hfConfig "github.com/jfrog/jfrog-cli-huggingface/config"
	"github.com/jfrog/jfrog-cli-huggingface/docs/huggingfacedownload"
	"github.com/jfrog/jfrog-cli-huggingface/docs/huggingfaceupload"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"golang.org/x/exp/slices"
)

const huggingfaceCategory = "HuggingFace"

const (
	// Command flags keys
	revision    = "revision"
	repoType    = "repo-type"
	etagTimeout = "etag-timeout"
	format      = "format"
	hubArgs     = "hub-args"

	// Build info flags keys
	buildName   = "build-name"
	buildNumber = "build-number"
	module      = "module"
	project     = "project"

	// Server flags keys
	url         = "url"
	user        = "user"
	password    = "password"
	accessToken = "access-token"
	serverId    = "server-id"
)

var repoTypes = []string{"model", "dataset", "space"}

// Flag keys mapped to their corresponding components.Flag definition.
var flagsMap = map[string]components.Flag{
	revision:    components.NewStringFlag(revision, "Branch, tag, or commit to operate on. Defaults to the remote default branch.", components.SetMandatoryFalse()),
	repoType:    components.NewStringFlag(repoType, "Repository type. Supported types: 'model', 'dataset', 'space'. Defaults to 'model'.", components.SetMandatoryFalse()),
	etagTimeout: components.NewStringFlag(etagTimeout, "Timeout in seconds for ETag validation requests before falling back to cached data. Defaults to 86400 (24 hours).", components.SetMandatoryFalse()),
	format:      components.NewStringFlag(format, "Print a snapshot contents summary after the download. Supported formats: 'table', 'json'.", components.SetMandatoryFalse()),
	hubArgs:     components.NewStringFlag(hubArgs, "Semicolon-separated key=value pairs forwarded to huggingface_hub as-is. (example: --hub-args \"allow_patterns=*.safetensors;max_workers=4\")", components.SetMandatoryFalse()),

	buildName:   components.NewStringFlag(buildName, "Build name. For build-info collection.", components.SetMandatoryFalse()),
	buildNumber: components.NewStringFlag(buildNumber, "Build number. For build-info collection.", components.SetMandatoryFalse()),
	module:      components.NewStringFlag(module, "Optional module name for the build-info.", components.SetMandatoryFalse()),
	project:     components.NewStringFlag(project, "JFrog project key.", components.SetMandatoryFalse()),

	url:         components.NewStringFlag(url, "JFrog Artifactory URL. (example: https://acme.jfrog.io/artifactory)", components.SetMandatoryFalse()),
	user:        components.NewStringFlag(user, "JFrog username.", components.SetMandatoryFalse()),
	password:    components.NewStringFlag(password, "JFrog password.", components.SetMandatoryFalse()),
	accessToken: components.NewStringFlag(accessToken, "JFrog access token.", components.SetMandatoryFalse()),
	serverId:    components.NewStringFlag(serverId, "Server ID configured using the 'jf config' command.", components.SetMandatoryFalse()),
}

// GetJfrogCliHuggingFaceApp returns the components app exposing the HuggingFace
// commands, for embedding into the JFrog CLI or running as a plugin.
func GetJfrogCliHuggingFaceApp() components.App {
	app := components.CreateEmbeddedApp(
		"huggingface",
		GetCommands(),
	)
	app.Description = "Download and upload HuggingFace models and datasets through Artifactory."
	app.Version = "v1.0.0"
	return app
}

func GetCommands() []components.Command {
	return []components.Command{
		{
			Name:        "download",
			Aliases:     []string{"hfd"},
			Description: huggingfacedownload.GetDescription(),
			Arguments:   huggingfacedownload.GetArguments(),
			Flags:       getFlags(revision, repoType, etagTimeout, format, hubArgs),
			Action:      downloadCmd,
			Category:    huggingfaceCategory,
		},
		{
			Name:        "upload",
			Aliases:     []string{"hfu"},
			Description: huggingfaceupload.GetDescription(),
			Arguments:   huggingfaceupload.GetArguments(),
			Flags:       getFlags(revision, repoType, hubArgs, buildName, buildNumber, module, project, url, user, password, accessToken, serverId),
			Action:      uploadCmd,
			Category:    huggingfaceCategory,
		},
	}
}

func getFlags(keys ...string) []components.Flag {
	flags := make([]components.Flag, 0, len(keys))
	for _, key := range keys {
		flags = append(flags, flagsMap[key])
	}
	return flags
}

func downloadCmd(c *components.Context) error {
	if c.GetNumberOfArgs() != 1 {
		return wrongNumberOfArgs(c, "expected a single <repo-id> argument")
	}
	repoTypeValue, err := getRepoType(c)
	if err != nil {
		return err
	}
	etagTimeoutValue, err := getEtagTimeout(c)
	if err != nil {
		return err
	}
	extraArgs, err := parseHubArgs(c.GetStringFlagValue(hubArgs))
	if err != nil {
		return err
	}
	if endpoint := commands.GetHFEndpoint(); endpoint != "" {
		log.Info("Using HuggingFace endpoint:", endpoint)
	}
	downloadCommand := commands.NewDownloadCommand().
		SetName("download").
		SetRepoId(c.GetArgumentAt(0)).
		SetRevision(c.GetStringFlagValue(revision)).
		SetRepoType(repoTypeValue).
		SetEtagTimeout(etagTimeoutValue).
		SetSummaryFormat(c.GetStringFlagValue(format))
	for key, value := range extraArgs {
		downloadCommand.SetHubArg(key, value)
	}
	return downloadCommand.Run()
}

func uploadCmd(c *components.Context) error {
	if c.GetNumberOfArgs() != 2 {
		return wrongNumberOfArgs(c, "expected <folder-path> and <repo-id> arguments")
	}
	repoTypeValue, err := getRepoType(c)
	if err != nil {
		return err
	}
	extraArgs, err := parseHubArgs(c.GetStringFlagValue(hubArgs))
	if err != nil {
		return err
	}
	uploadCommand := commands.NewUploadCommand().
		SetName("upload").
		SetFolderPath(c.GetArgumentAt(0)).
		SetRepoId(c.GetArgumentAt(1)).
		SetRevision(c.GetStringFlagValue(revision)).
		SetRepoType(repoTypeValue)
	for key, value := range extraArgs {
		uploadCommand.SetHubArg(key, value)
	}
	if c.GetStringFlagValue(buildName) != "" || c.GetStringFlagValue(buildNumber) != "" {
		serverDetails, err := pluginsCommon.CreateServerDetailsWithConfigOffer(c, true, commonCliUtils.Platform)
		if err != nil {
			return err
		}
		uploadCommand.SetServerDetails(serverDetails)
		uploadCommand.SetBuildConfiguration(buildUtils.NewBuildConfiguration(
			c.GetStringFlagValue(buildName),
			c.GetStringFlagValue(buildNumber),
			c.GetStringFlagValue(module),
			c.GetStringFlagValue(project),
		))
	}
	return uploadCommand.Run()
}

func wrongNumberOfArgs(c *components.Context, message string) error {
	if c.PrintCommandHelp != nil {
		return pluginsCommon.WrongNumberOfArgumentsHandler(c)
	}
	return errorutils.CheckErrorf("wrong number of arguments: %s", message)
}

// getRepoType resolves the repository type from the flag or the defaults file, and
// validates it at the CLI boundary. Programmatic callers of the commands package are
// not gated; the hub client is the authority on repository types.
func getRepoType(c *components.Context) (string, error) {
	repoTypeValue := c.GetStringFlagValue(repoType)
	if repoTypeValue == "" {
		if cfg, err := hfConfig.LoadHuggingFaceConfig(); err == nil && cfg != nil && cfg.Download != nil {
			repoTypeValue = cfg.Download.RepoType
		}
	}
	if repoTypeValue != "" && !slices.Contains(repoTypes, repoTypeValue) {
		return "", errorutils.CheckErrorf("invalid repo type '%s'. Supported types are %s", repoTypeValue, strings.Join(repoTypes, ", "))
	}
	return repoTypeValue, nil
}

// getEtagTimeout resolves the ETag timeout from the flag, the defaults file, or the
// built-in default, in that order.
func getEtagTimeout(c *components.Context) (int, error) {
	if flagValue := c.GetStringFlagValue(etagTimeout); flagValue != "" {
		timeout, err := strconv.Atoi(flagValue)
		if err != nil {
			return 0, errorutils.CheckErrorf("failed to parse --%s value '%s': %w", etagTimeout, flagValue, err)
		}
		return timeout, nil
	}
	if cfg, err := hfConfig.LoadHuggingFaceConfig(); err == nil && cfg != nil && cfg.Download != nil && cfg.Download.EtagTimeout != nil {
		return *cfg.Download.EtagTimeout, nil
	}
	return commands.DefaultEtagTimeout, nil
}

// parseHubArgs parses the --hub-args flag value into keyword arguments forwarded to the
// hub client without further interpretation.
func parseHubArgs(flagValue string) (map[string]interface{}, error) {
	if flagValue == "" {
		return nil, nil
	}
	args := make(map[string]interface{})
	for _, pair := range strings.Split(flagValue, ";") {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, errorutils.CheckErrorf("invalid --%s entry '%s', expected key=value", hubArgs, pair)
		}
		args[key] = hubArgValue(value)
	}
	return args, nil
}

// hubArgValue keeps numeric, boolean, and null values typed on their way to the hub
// client. snapshot_download kwargs like max_workers must arrive as JSON numbers, not
// strings; anything that is not a JSON scalar stays a plain string.
func hubArgValue(value string) interface{} {
	var typed interface{}
	if err := json.Unmarshal([]byte(value), &typed); err == nil {
		switch typed.(type) {
		case float64, bool, nil:
			return typed
		}
	}
	return value
}
