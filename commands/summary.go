package commands

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jfrog/jfrog-cli-core/v2/utils/coreutils"
	clientutils "github.com/jfrog/jfrog-client-go/utils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

const summaryDisplayLimit = 20

type snapshotFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

type snapshotSummary struct {
	SnapshotPath string         `json:"snapshot_path"`
	FileCount    int            `json:"file_count"`
	TotalSize    int64          `json:"total_size"`
	Files        []snapshotFile `json:"files"`
}

type summaryTableRow struct {
	File string `col-name:"File"`
	Size string `col-name:"Size"`
}

// PrintSnapshotSummary prints the contents of a downloaded snapshot directory in the
// requested format ("table" or "json").
func PrintSnapshotSummary(snapshotPath, format string) error {
	summary, err := collectSnapshotSummary(snapshotPath)
	if err != nil {
		return err
	}
	switch format {
	case "json":
		jsonBytes, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		log.Output(clientutils.IndentJson(jsonBytes))
		return nil
	default:
		return printSnapshotSummaryTable(summary)
	}
}

func collectSnapshotSummary(snapshotPath string) (*snapshotSummary, error) {
	summary := &snapshotSummary{SnapshotPath: snapshotPath}
	err := filepath.WalkDir(snapshotPath, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(snapshotPath, path)
		if err != nil {
			return err
		}
		summary.Files = append(summary.Files, snapshotFile{Path: relPath, Size: info.Size()})
		summary.TotalSize += info.Size()
		return nil
	})
	if err != nil {
		return nil, err
	}
	summary.FileCount = len(summary.Files)
	return summary, nil
}

func printSnapshotSummaryTable(summary *snapshotSummary) error {
	loopRange := len(summary.Files)
	if loopRange > summaryDisplayLimit {
		loopRange = summaryDisplayLimit
	}
	var tableData []summaryTableRow
	for i := 0; i < loopRange; i++ {
		file := summary.Files[i]
		tableData = append(tableData, summaryTableRow{
			File: text.FgHiBlue.Sprint(file.Path),
			Size: text.FgGreen.Sprint(formatSize(file.Size)),
		})
	}
	footer := text.FgYellow.Sprintf("\nTotal: %d files, %s", summary.FileCount, formatSize(summary.TotalSize))
	if summary.FileCount > loopRange {
		footer = text.FgYellow.Sprintf("\n...and %d more files. Refer JSON output format for complete list.", summary.FileCount-loopRange) + footer
	}
	err := coreutils.PrintTableWithBorderless(tableData, text.FgCyan.Sprint("Snapshot Contents"), footer, "No files found in snapshot", false)
	if err != nil {
		return fmt.Errorf("failed to print snapshot summary table: %w", err)
	}
	return nil
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
