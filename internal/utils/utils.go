// Package utils contains general helper functions used across the gather tool.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// Ignore file constants used across the project.
const (
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// IgnoreFileName is the name of the tool-neutral ignore file.
	IgnoreFileName = ".ignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// GitInfoExcludePath is the repository exclude file relative to the repository root.
	GitInfoExcludePath = GitDirectoryName + "/info/exclude"
	// HiddenEntryPrefix marks hidden files and directories.
	HiddenEntryPrefix = "."
)

const pathSegmentSeparator = "/"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// RelativePathOrSelf calculates the slash separated path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)

	if cleanPath == cleanRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// SplitPathSegments splits a slash separated relative path into its segments.
// The root itself ("." or "") yields no segments.
func SplitPathSegments(relativePath string) []string {
	normalizedPath := strings.ReplaceAll(relativePath, "\\", pathSegmentSeparator)
	if normalizedPath == "" || normalizedPath == "." {
		return nil
	}
	return strings.Split(normalizedPath, pathSegmentSeparator)
}

// IsHiddenPath reports whether any segment of the relative path starts with a dot.
func IsHiddenPath(relativePath string) bool {
	for _, segment := range SplitPathSegments(relativePath) {
		if segment != "." && segment != ".." && strings.HasPrefix(segment, HiddenEntryPrefix) {
			return true
		}
	}
	return false
}

// ResolveRoot canonicalizes the root path. When the path cannot be made absolute
// or its symlinks cannot be evaluated, the path is returned as given.
func ResolveRoot(rootPath string) string {
	absolutePath, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return rootPath
	}
	resolvedPath, resolveError := filepath.EvalSymlinks(absolutePath)
	if resolveError != nil {
		return rootPath
	}
	return resolvedPath
}

// RootDisplayName returns the base name of the root followed by a slash.
func RootDisplayName(rootPath string) string {
	baseName := filepath.Base(filepath.Clean(rootPath))
	return strings.TrimSuffix(baseName, pathSegmentSeparator) + pathSegmentSeparator
}

// FindRepositoryRoot searches upward from the starting directory for a directory
// containing a .git folder. The boolean result is false when none exists.
func FindRepositoryRoot(startDirectory string) (string, bool) {
	absoluteStartDirectory, errorAbsolute := filepath.Abs(startDirectory)
	if errorAbsolute != nil {
		return "", false
	}

	currentDirectory := absoluteStartDirectory
	for {
		gitPath := filepath.Join(currentDirectory, GitDirectoryName)
		fileInformation, errorStat := os.Stat(gitPath)
		if errorStat == nil && fileInformation.IsDir() {
			return currentDirectory, true
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return "", false
		}
		currentDirectory = parentDirectory
	}
}
