package main

import (
	"github.com/jfrog/jfrog-cli-core/v2/plugins"
	"github.com/jfrog/jfrog-cli-huggingface/cli"
)

func main() {
	plugins.PluginMain(cli.GetJfrogCliHuggingFaceApp())
}
