package commands

import (
	"os"
	"regexp"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// hfEndpointEnv points the huggingface_hub client at the Artifactory proxy.
// Format: https://<server>/artifactory/api/huggingfaceml/<repo-key>
const hfEndpointEnv = "HF_ENDPOINT"

// timestampPattern matches the ISO 8601 suffix Artifactory appends to revision
// directories: _YYYY-MM-DDTHH:MM:SS.sssZ
var timestampPattern = regexp.MustCompile(`_\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

// HasTimestampSuffix reports whether a revision already carries a timestamp suffix.
// Example: "main_2026-02-09T09:01:17.646Z" returns true, "main" returns false.
func HasTimestampSuffix(revision string) bool {
	return timestampPattern.MatchString(revision)
}

// GetHFEndpoint returns the configured HuggingFace endpoint URL, if any.
func GetHFEndpoint() string {
	return os.Getenv(hfEndpointEnv)
}

// RepoKeyFromEndpoint extracts the Artifactory repository key from the HF_ENDPOINT
// environment variable.
func RepoKeyFromEndpoint() (string, error) {
	endpoint := GetHFEndpoint()
	if endpoint == "" {
		return "", errorutils.CheckErrorf("%s environment variable is not set", hfEndpointEnv)
	}
	endpoint = strings.TrimSuffix(endpoint, "/")
	parts := strings.Split(endpoint, "/")
	repoKey := parts[len(parts)-1]
	if repoKey == "" {
		return "", errorutils.CheckErrorf("could not extract repo key from %s: %s", hfEndpointEnv, endpoint)
	}
	log.Debug("Extracted repo key from ", hfEndpointEnv, ": ", repoKey)
	return repoKey, nil
}
