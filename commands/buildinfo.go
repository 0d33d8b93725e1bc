package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/jfrog/build-info-go/entities"
	gofrogio "github.com/jfrog/gofrog/io"
	rtUtils "github.com/jfrog/jfrog-cli-core/v2/artifactory/utils"
	buildUtils "github.com/jfrog/jfrog-cli-core/v2/common/build"
	"github.com/jfrog/jfrog-client-go/artifactory"
	"github.com/jfrog/jfrog-client-go/artifactory/services"
	servicesUtils "github.com/jfrog/jfrog-client-go/artifactory/services/utils"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/io/content"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// collectBuildInfo records the uploaded model/dataset files as artifacts of the build
// named in the attached build configuration, and stamps the files in Artifactory with
// the build properties.
func (hfu *UploadCommand) collectBuildInfo() error {
	isCollectBuildInfo, err := hfu.buildConfiguration.IsCollectBuildInfo()
	if err != nil {
		return errorutils.CheckError(err)
	}
	if !isCollectBuildInfo {
		return nil
	}
	log.Info("Collecting build info for executed huggingface ", hfu.name, " command")
	buildName, err := hfu.buildConfiguration.GetBuildName()
	if err != nil {
		return errorutils.CheckError(err)
	}
	buildNumber, err := hfu.buildConfiguration.GetBuildNumber()
	if err != nil {
		return errorutils.CheckError(err)
	}
	project := hfu.buildConfiguration.GetProject()
	buildInfoService := buildUtils.CreateBuildInfoService()
	build, err := buildInfoService.GetOrCreateBuildWithProject(buildName, buildNumber, project)
	if err != nil {
		return fmt.Errorf("failed to create build info: %w", err)
	}
	buildInfo, err := build.ToBuildInfo()
	if err != nil {
		return fmt.Errorf("failed to build info: %w", err)
	}
	artifacts, err := hfu.searchUploadedArtifacts(buildProps(buildName, buildNumber, project))
	if err != nil {
		return errorutils.CheckError(err)
	}
	if len(artifacts) == 0 {
		return nil
	}
	if len(buildInfo.Modules) == 0 {
		buildInfo.Modules = append(buildInfo.Modules, entities.Module{
			Type: entities.ModuleType(hfu.repoType),
			Id:   hfu.repoId,
		})
	}
	buildInfo.Modules[0].Artifacts = artifacts
	if err = buildUtils.SaveBuildInfo(buildName, buildNumber, project, buildInfo); err != nil {
		log.Warn("Failed to save build info for jfrog-cli compatibility: ", err.Error())
		return err
	}
	log.Info("Build info saved locally. Use 'jf rt bp", buildName, buildNumber, "' to publish it to Artifactory.")
	return nil
}

func buildProps(buildName, buildNumber, project string) string {
	timestamp := strconv.FormatInt(time.Now().UnixNano()/int64(time.Millisecond), 10)
	props := fmt.Sprintf("build.name=%s;build.number=%s;build.timestamp=%s", buildName, buildNumber, timestamp)
	if project != "" {
		props += fmt.Sprintf(";build.project=%s", project)
	}
	return props
}

// searchUploadedArtifacts locates the files this command just uploaded by querying the
// proxied repository with AQL, scoped to the latest timestamped revision directory, and
// stamps them with the given build properties.
func (hfu *UploadCommand) searchUploadedArtifacts(buildProperties string) (artifacts []entities.Artifact, err error) {
	serviceManager, err := rtUtils.CreateServiceManager(hfu.serverDetails, -1, 0, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create services manager: %w", err)
	}
	repoKey, err := RepoKeyFromEndpoint()
	if err != nil {
		return nil, err
	}
	reader, err := serviceManager.SearchFiles(services.SearchParams{
		CommonParams: &servicesUtils.CommonParams{
			Aql: servicesUtils.Aql{ItemsFind: hfu.revisionQuery(repoKey)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search for HuggingFace artifacts: %w", err)
	}
	defer gofrogio.Close(reader, &err)
	var results []servicesUtils.ResultItem
	for item := new(servicesUtils.ResultItem); reader.NextRecord(item) == nil; item = new(servicesUtils.ResultItem) {
		results = append(results, *item)
	}
	if len(results) == 0 {
		return nil, nil
	}
	// Without an exact timestamped revision the query matches every upload of this
	// revision, newest directory first after sorting.
	if !HasTimestampSuffix(hfu.revision) {
		sort.Slice(results, func(i, j int) bool {
			return results[i].Path > results[j].Path
		})
	}
	latestDir := results[0].Path
	for _, resultItem := range results {
		if resultItem.Path != latestDir {
			break
		}
		artifacts = append(artifacts, entities.Artifact{
			Name: resultItem.Name,
			Type: resultItem.Type,
			Path: resultItem.Path,
			Checksum: entities.Checksum{
				Sha1:   resultItem.Actual_Sha1,
				Md5:    resultItem.Actual_Md5,
				Sha256: resultItem.Sha256,
			},
		})
	}
	if err = retargetReaderToDir(reader, repoKey, latestDir); err != nil {
		return nil, err
	}
	reader.Reset()
	setBuildPropsOnArtifacts(serviceManager, reader, buildProperties)
	return artifacts, nil
}

// revisionQuery builds the AQL items.find clause matching the uploaded revision's
// directory tree. A bare branch name matches any of its timestamped upload directories.
func (hfu *UploadCommand) revisionQuery(repoKey string) string {
	repoTypePath := hfu.repoType + "s"
	if hfu.repoType == "" {
		repoTypePath = defaultRepoType + "s"
	}
	revisionPattern := hfu.revision
	if !HasTimestampSuffix(hfu.revision) {
		revisionPattern = hfu.revision + "_*"
	}
	return fmt.Sprintf(`{"repo": "%s", "path": {"$match": "%s/%s/%s/*"}}`,
		repoKey, repoTypePath, hfu.repoId, revisionPattern)
}

// retargetReaderToDir rewrites the reader's result files to a single folder entry, so
// the recursive property update below covers the whole revision directory.
func retargetReaderToDir(reader *content.ContentReader, repoKey, dirPath string) error {
	if reader == nil {
		return fmt.Errorf("reader is nil")
	}
	jsonBytes, err := json.MarshalIndent(map[string]interface{}{
		"results": []map[string]interface{}{
			{
				"repo": repoKey,
				"path": dirPath,
				"name": "",
				"type": "folder",
			},
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	for _, filePath := range reader.GetFilesPaths() {
		if err = os.WriteFile(filePath, jsonBytes, 0644); err != nil {
			log.Warn(fmt.Sprintf("Failed to write JSON to file %s: %s", filePath, err))
			continue
		}
		log.Debug(fmt.Sprintf("Successfully updated file %s with JSON content", filePath))
	}
	return nil
}

func setBuildPropsOnArtifacts(serviceManager artifactory.ArtifactoryServicesManager, reader *content.ContentReader, buildProperties string) {
	_, _ = serviceManager.SetProps(services.PropsParams{
		Reader:      reader,
		Props:       buildProperties,
		IsRecursive: true,
	})
}
