package huggingfacedownload

import "github.com/jfrog/jfrog-cli-core/v2/plugins/components"

var Usage = []string{"hf download <repo-id>"}

func GetDescription() string {
	return "Download a model/dataset snapshot from a HuggingFace repository proxied by Artifactory."
}

func GetArguments() []components.Argument {
	return []components.Argument{
		{
			Name:        "repo-id",
			Description: "The HuggingFace repository ID (e.g., 'bert-base-uncased' or 'username/model-name').",
		},
	}
}
