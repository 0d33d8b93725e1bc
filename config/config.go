package config

import (
	"path/filepath"

	"github.com/jfrog/jfrog-cli-core/v2/utils/coreutils"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/io/fileutils"
	"github.com/spf13/viper"
)

const (
	jfrogDir            = ".jfrog"
	huggingfaceDir      = "huggingface"
	huggingfaceFileYml  = "huggingface.yml"
	huggingfaceFileYaml = "huggingface.yaml"

	keyEtagTimeout = "download.etagTimeout"
	keyRepoType    = "download.repoType"

	envEtagTimeout = "HF_ETAG_TIMEOUT"
	envRepoType    = "HF_DEFAULT_REPO_TYPE"
)

// DownloadDefaults holds optional defaults applied to download commands when the
// corresponding flags are not set.
type DownloadDefaults struct {
	EtagTimeout *int   `yaml:"etagTimeout"`
	RepoType    string `yaml:"repoType"`
}

// HuggingFaceConfig is the optional configuration file for the HuggingFace commands.
type HuggingFaceConfig struct {
	Download *DownloadDefaults `yaml:"download"`
}

// LoadHuggingFaceConfig looks for a huggingface.yml under an upstream .jfrog directory,
// then under the JFrog home directory, then falls back to environment variables only.
// Returns nil when no configuration is present anywhere.
func LoadHuggingFaceConfig() (*HuggingFaceConfig, error) {
	if root, exists, _ := fileutils.FindUpstream(jfrogDir, fileutils.Dir); exists {
		if cfg := readConfigWithEnv(filepath.Join(root, jfrogDir, huggingfaceDir, huggingfaceFileYml)); cfg != nil {
			return cfg, nil
		}
		if cfg := readConfigWithEnv(filepath.Join(root, jfrogDir, huggingfaceDir, huggingfaceFileYaml)); cfg != nil {
			return cfg, nil
		}
	}

	if home, err := coreutils.GetJfrogHomeDir(); err == nil && home != "" {
		if cfg := readConfigWithEnv(filepath.Join(home, huggingfaceDir, huggingfaceFileYml)); cfg != nil {
			return cfg, nil
		}
		if cfg := readConfigWithEnv(filepath.Join(home, huggingfaceDir, huggingfaceFileYaml)); cfg != nil {
			return cfg, nil
		}
	}

	if cfg := readConfigWithEnv(""); cfg != nil {
		return cfg, nil
	}

	return nil, nil
}

func readConfigWithEnv(path string) *HuggingFaceConfig {
	v := viper.New()

	_ = v.BindEnv(keyEtagTimeout, envEtagTimeout)
	_ = v.BindEnv(keyRepoType, envRepoType)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		_ = v.ReadInConfig()
	}

	cfg := new(HuggingFaceConfig)
	if err := v.Unmarshal(&cfg); err != nil {
		_ = errorutils.CheckError(err)
		return nil
	}
	if cfg.Download == nil || (cfg.Download.EtagTimeout == nil && cfg.Download.RepoType == "") {
		return nil
	}
	return cfg
}
