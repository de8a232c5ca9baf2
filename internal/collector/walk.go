package collector

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/gather/internal/config"
	"github.com/temirov/gather/internal/types"
	"github.com/temirov/gather/internal/utils"
)

const (
	logAccessFailed = "path not accessible"
	logSkipDir      = "directory skipped"
)

// candidate is a regular file reached by the traversal before any glob or content gate.
type candidate struct {
	matchKey     string
	absolutePath string
	size         int64
}

// enumerate walks the root and returns every regular file that is neither hidden
// nor ignored, in walk order. Hidden and ignored directories are not descended.
// A cancelled context stops the walk and returns the candidates found so far.
func (engine *Engine) enumerate(ctx context.Context, selection types.SelectionConfig) []candidate {
	rootPath := selection.Root
	if rootPath == "" {
		rootPath = types.DefaultRootPath
	}
	cleanedRootPath := filepath.Clean(rootPath)

	var rules *config.IgnoreRules
	if selection.UseGitignore || selection.UseIgnoreFile {
		rules = config.NewIgnoreRules(cleanedRootPath, config.IgnoreOptions{
			UseGitignore:  selection.UseGitignore,
			UseIgnoreFile: selection.UseIgnoreFile,
		}, engine.logger)
	}

	var candidates []candidate
	walkErr := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if contextErr := ctx.Err(); contextErr != nil {
			return contextErr
		}
		if accessError != nil {
			engine.logger.Debug(logAccessFailed, zap.String("path", walkedPath), zap.Error(accessError))
			if directoryEntry != nil && directoryEntry.IsDir() && walkedPath != cleanedRootPath {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRootPath)
		if relativePath == "." {
			return nil
		}
		entryName := directoryEntry.Name()
		isDirectory := directoryEntry.IsDir()

		if isDirectory && entryName == utils.GitDirectoryName {
			return filepath.SkipDir
		}
		if !selection.IncludeHidden && utils.IsHiddenPath(entryName) {
			engine.logSkip(relativePath, isDirectory, dropReasonHidden)
			return skipEntry(isDirectory)
		}

		segments := utils.SplitPathSegments(relativePath)
		if rules != nil && rules.Matches(segments, isDirectory) {
			engine.logSkip(relativePath, isDirectory, dropReasonIgnored)
			return skipEntry(isDirectory)
		}
		if isDirectory {
			if rules != nil {
				rules.LoadDirectory(segments)
			}
			return nil
		}

		fileInfo, statError := os.Stat(walkedPath)
		if statError != nil {
			engine.logSkip(relativePath, false, dropReasonUnreadable)
			return nil
		}
		if !fileInfo.Mode().IsRegular() {
			return nil
		}
		candidates = append(candidates, candidate{
			matchKey:     relativePath,
			absolutePath: walkedPath,
			size:         fileInfo.Size(),
		})
		return nil
	})
	if walkErr != nil {
		engine.logger.Debug(logAccessFailed, zap.String("path", cleanedRootPath), zap.Error(walkErr))
	}
	return candidates
}

func (engine *Engine) logSkip(relativePath string, isDirectory bool, reason string) {
	if isDirectory {
		engine.logger.Debug(logSkipDir, zap.String("path", relativePath), zap.String("reason", reason))
		return
	}
	engine.logger.Debug(logFileDropped, zap.String("path", relativePath), zap.String("reason", reason))
}

func skipEntry(isDirectory bool) error {
	if isDirectory {
		return filepath.SkipDir
	}
	return nil
}
