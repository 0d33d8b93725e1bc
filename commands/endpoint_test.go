package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasTimestampSuffix(t *testing.T) {
	testCases := []struct {
		testName string
		revision string
		expected bool
	}{
		{"branch with timestamp", "main_2026-02-09T09:01:17.646Z", true},
		{"bare branch", "main", false},
		{"empty revision", "", false},
		{"timestamp without millis", "main_2026-02-09T09:01:17Z", false},
		{"timestamp in the middle", "main_2026-02-09T09:01:17.646Z_extra", false},
		{"tag with timestamp", "v1.0_2025-12-31T23:59:59.999Z", true},
	}
	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			assert.Equal(t, tc.expected, HasTimestampSuffix(tc.revision))
		})
	}
}

func TestRepoKeyFromEndpoint(t *testing.T) {
	t.Setenv(hfEndpointEnv, "https://acme.jfrog.io/artifactory/api/huggingfaceml/hf-local")
	repoKey, err := RepoKeyFromEndpoint()
	assert.NoError(t, err)
	assert.Equal(t, "hf-local", repoKey)
}

func TestRepoKeyFromEndpoint_TrailingSlash(t *testing.T) {
	t.Setenv(hfEndpointEnv, "https://acme.jfrog.io/artifactory/api/huggingfaceml/hf-local/")
	repoKey, err := RepoKeyFromEndpoint()
	assert.NoError(t, err)
	assert.Equal(t, "hf-local", repoKey)
}

func TestRepoKeyFromEndpoint_NotSet(t *testing.T) {
	t.Setenv(hfEndpointEnv, "")
	_, err := RepoKeyFromEndpoint()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HF_ENDPOINT environment variable is not set")
}

func TestGetHFEndpoint(t *testing.T) {
	t.Setenv(hfEndpointEnv, "https://acme.jfrog.io/artifactory/api/huggingfaceml/hf-local")
	assert.Equal(t, "https://acme.jfrog.io/artifactory/api/huggingfaceml/hf-local", GetHFEndpoint())
}
