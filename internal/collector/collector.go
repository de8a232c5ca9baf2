// Package collector selects files beneath a root directory and reads their text content.
package collector

import (
	"context"
	"errors"
	"os"
	"runtime"
	"sort"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/gather/internal/types"
	"github.com/temirov/gather/internal/utils"
)

// ErrNoFiles reports that a selection produced no files.
var ErrNoFiles = errors.New("no files found matching the given criteria")

const (
	logFileDropped = "file dropped"

	dropReasonHidden      = "hidden"
	dropReasonIgnored     = "ignored"
	dropReasonOversized   = "oversized"
	dropReasonNotIncluded = "not-included"
	dropReasonExcluded    = "excluded"
	dropReasonBinary      = "binary"
	dropReasonUnreadable  = "unreadable"
	dropReasonInvalidUTF8 = "invalid-utf8"
)

// Engine runs the traversal and filter pipeline. The zero value is not usable; call NewEngine.
type Engine struct {
	logger      *zap.Logger
	workerLimit int
}

// NewEngine constructs an Engine logging drop reasons at debug level.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, workerLimit: runtime.NumCPU()}
}

// Collect returns the text files under the selection root that pass every gate,
// sorted by relative path. Files that cannot be read or decoded are dropped.
func (engine *Engine) Collect(ctx context.Context, selection types.SelectionConfig) []types.CollectedFile {
	fileSelector := newSelector(selection.Include, selection.Exclude, engine.logger)

	var accepted []candidate
	for _, entry := range engine.enumerate(ctx, selection) {
		if entry.size > selection.MaxSize {
			engine.logger.Debug(logFileDropped,
				zap.String("path", entry.matchKey),
				zap.String("reason", dropReasonOversized),
				zap.String("size", utils.FormatFileSize(entry.size)))
			continue
		}
		if reason := fileSelector.reject(entry.matchKey); reason != "" {
			engine.logger.Debug(logFileDropped, zap.String("path", entry.matchKey), zap.String("reason", reason))
			continue
		}
		accepted = append(accepted, entry)
	}

	var (
		collected []types.CollectedFile
		mutex     sync.Mutex
		group     errgroup.Group
	)
	group.SetLimit(engine.workerLimit)
	for _, entry := range accepted {
		entry := entry
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			file, ok := engine.inspect(entry)
			if !ok {
				return nil
			}
			mutex.Lock()
			collected = append(collected, file)
			mutex.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	sort.Slice(collected, func(left, right int) bool {
		return collected[left].RelativePath < collected[right].RelativePath
	})
	return collected
}

// ListPaths returns the relative paths under the selection root that pass the
// hidden, ignore and glob gates, sorted. File contents are never read.
func (engine *Engine) ListPaths(ctx context.Context, selection types.SelectionConfig) []string {
	fileSelector := newSelector(selection.Include, selection.Exclude, engine.logger)

	var paths []string
	for _, entry := range engine.enumerate(ctx, selection) {
		if reason := fileSelector.reject(entry.matchKey); reason != "" {
			engine.logger.Debug(logFileDropped, zap.String("path", entry.matchKey), zap.String("reason", reason))
			continue
		}
		paths = append(paths, entry.matchKey)
	}
	sort.Strings(paths)
	return paths
}

// inspect applies the binary and decode gates and reads the file content.
//
// #nosec G304
func (engine *Engine) inspect(entry candidate) (types.CollectedFile, bool) {
	if utils.IsFileBinary(entry.absolutePath) {
		engine.logger.Debug(logFileDropped, zap.String("path", entry.matchKey), zap.String("reason", dropReasonBinary))
		return types.CollectedFile{}, false
	}
	fileBytes, readError := os.ReadFile(entry.absolutePath)
	if readError != nil {
		engine.logger.Debug(logFileDropped, zap.String("path", entry.matchKey), zap.String("reason", dropReasonUnreadable), zap.Error(readError))
		return types.CollectedFile{}, false
	}
	if !utf8.Valid(fileBytes) {
		engine.logger.Debug(logFileDropped, zap.String("path", entry.matchKey), zap.String("reason", dropReasonInvalidUTF8))
		return types.CollectedFile{}, false
	}
	return types.CollectedFile{RelativePath: entry.matchKey, Content: string(fileBytes)}, true
}
