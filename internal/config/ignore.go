package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"

	"github.com/temirov/gather/internal/utils"
)

const (
	commentPrefix            = "#"
	xdgConfigHomeEnvironment = "XDG_CONFIG_HOME"
	defaultConfigDirectory   = ".config"
	globalIgnoreRelativePath = "git/ignore"

	logIgnoreFileUnreadable = "ignore file unreadable"
	logGlobalPatternsFailed = "global ignore patterns unavailable"
	logIgnoreFileLoaded     = "ignore file loaded"
)

// IgnoreOptions selects the rule sources an IgnoreRules consults.
type IgnoreOptions struct {
	// UseGitignore enables the global excludes file, the repository exclude file
	// and .gitignore files. They apply only when the root is inside a Git repository.
	UseGitignore bool
	// UseIgnoreFile enables .ignore files, with or without a repository.
	UseIgnoreFile bool
}

// IgnoreRules evaluates ignore rule sources for a single traversal root.
//
// Git sources are consulted in ascending priority: the global excludes file, the
// repository exclude file, .gitignore files from the repository root down to the
// traversal root, then .gitignore files below the root as directories are loaded.
// .ignore files form a second group loaded the same way. A match in that group
// decides before any Git source is consulted. Within a group the last matching
// pattern decides, so negated patterns re-include paths.
// IgnoreRules is not safe for concurrent use.
type IgnoreRules struct {
	rootDirectoryPath  string
	domainPrefix       []string
	useGitignore       bool
	useIgnoreFile      bool
	gitPatterns        []gitignore.Pattern
	ignoreFilePatterns []gitignore.Pattern
	logger             *zap.Logger
}

// NewIgnoreRules gathers the global, repository and ancestor rule sources for the
// root directory and the ignore files of the root itself.
func NewIgnoreRules(rootDirectoryPath string, options IgnoreOptions, logger *zap.Logger) *IgnoreRules {
	if logger == nil {
		logger = zap.NewNop()
	}
	absoluteRoot, absoluteError := filepath.Abs(rootDirectoryPath)
	if absoluteError != nil {
		absoluteRoot = rootDirectoryPath
	}
	rules := &IgnoreRules{
		rootDirectoryPath: absoluteRoot,
		useIgnoreFile:     options.UseIgnoreFile,
		logger:            logger,
	}

	repositoryRoot, repositoryFound := utils.FindRepositoryRoot(absoluteRoot)
	rules.useGitignore = options.UseGitignore && repositoryFound
	if repositoryFound {
		rules.domainPrefix = utils.SplitPathSegments(utils.RelativePathOrSelf(absoluteRoot, repositoryRoot))
	}

	if rules.useGitignore {
		rules.gitPatterns = append(rules.gitPatterns, rules.loadGlobalPatterns()...)
		rules.gitPatterns = append(rules.gitPatterns, rules.readPatternFile(filepath.Join(repositoryRoot, filepath.FromSlash(utils.GitInfoExcludePath)), nil)...)
	}
	for depth := 0; depth < len(rules.domainPrefix); depth++ {
		domain := cloneSegments(rules.domainPrefix[:depth])
		ancestorDirectory := filepath.Join(append([]string{repositoryRoot}, domain...)...)
		rules.loadDirectoryFiles(ancestorDirectory, domain)
	}

	rules.LoadDirectory(nil)
	return rules
}

// LoadDirectory adds the patterns of the ignore files inside the directory
// identified by its root-relative segments. Missing files add nothing.
func (rules *IgnoreRules) LoadDirectory(relativeSegments []string) {
	directoryPath := filepath.Join(append([]string{rules.rootDirectoryPath}, relativeSegments...)...)
	domain := make([]string, 0, len(rules.domainPrefix)+len(relativeSegments))
	domain = append(domain, rules.domainPrefix...)
	domain = append(domain, relativeSegments...)
	rules.loadDirectoryFiles(directoryPath, domain)
}

// Matches reports whether the root-relative path is ignored.
func (rules *IgnoreRules) Matches(relativeSegments []string, isDirectory bool) bool {
	if rules.PatternCount() == 0 || len(relativeSegments) == 0 {
		return false
	}
	fullSegments := make([]string, 0, len(rules.domainPrefix)+len(relativeSegments))
	fullSegments = append(fullSegments, rules.domainPrefix...)
	fullSegments = append(fullSegments, relativeSegments...)
	if result := lastMatch(rules.ignoreFilePatterns, fullSegments, isDirectory); result != gitignore.NoMatch {
		return result == gitignore.Exclude
	}
	return lastMatch(rules.gitPatterns, fullSegments, isDirectory) == gitignore.Exclude
}

// PatternCount reports how many patterns have been loaded so far.
func (rules *IgnoreRules) PatternCount() int {
	return len(rules.gitPatterns) + len(rules.ignoreFilePatterns)
}

func (rules *IgnoreRules) loadDirectoryFiles(directoryPath string, domain []string) {
	if rules.useGitignore {
		rules.gitPatterns = append(rules.gitPatterns, rules.readPatternFile(filepath.Join(directoryPath, utils.GitIgnoreFileName), domain)...)
	}
	if rules.useIgnoreFile {
		rules.ignoreFilePatterns = append(rules.ignoreFilePatterns, rules.readPatternFile(filepath.Join(directoryPath, utils.IgnoreFileName), domain)...)
	}
}

// lastMatch returns the result of the last pattern matching the path.
func lastMatch(patterns []gitignore.Pattern, segments []string, isDirectory bool) gitignore.MatchResult {
	for index := len(patterns) - 1; index >= 0; index-- {
		if result := patterns[index].Match(segments, isDirectory); result != gitignore.NoMatch {
			return result
		}
	}
	return gitignore.NoMatch
}

func (rules *IgnoreRules) loadGlobalPatterns() []gitignore.Pattern {
	configuredPatterns, loadError := gitignore.LoadGlobalPatterns(osfs.New(string(filepath.Separator)))
	if loadError != nil {
		rules.logger.Debug(logGlobalPatternsFailed, zap.Error(loadError))
	}
	if len(configuredPatterns) > 0 {
		return configuredPatterns
	}
	defaultPath := defaultGlobalIgnorePath()
	if defaultPath == "" {
		return nil
	}
	return rules.readPatternFile(defaultPath, nil)
}

// readPatternFile parses an ignore file into patterns scoped to domain.
// Lines reach the pattern parser untrimmed: leading spaces are significant and
// the parser drops only unescaped trailing spaces.
//
// #nosec G304
func (rules *IgnoreRules) readPatternFile(ignoreFilePath string, domain []string) []gitignore.Pattern {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if !os.IsNotExist(openFileError) {
			rules.logger.Debug(logIgnoreFileUnreadable, zap.String("path", ignoreFilePath), zap.Error(openFileError))
		}
		return nil
	}
	defer fileHandle.Close()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
	}
	if scanError := scanner.Err(); scanError != nil {
		rules.logger.Debug(logIgnoreFileUnreadable, zap.String("path", ignoreFilePath), zap.Error(scanError))
		return nil
	}
	rules.logger.Debug(logIgnoreFileLoaded, zap.String("path", ignoreFilePath), zap.Int("patterns", len(patterns)))
	return patterns
}

// defaultGlobalIgnorePath returns the location git reads when core.excludesfile is unset.
func defaultGlobalIgnorePath() string {
	if configHome := strings.TrimSpace(os.Getenv(xdgConfigHomeEnvironment)); configHome != "" {
		return filepath.Join(configHome, filepath.FromSlash(globalIgnoreRelativePath))
	}
	homeDirectory, homeError := os.UserHomeDir()
	if homeError != nil || homeDirectory == "" {
		return ""
	}
	return filepath.Join(homeDirectory, defaultConfigDirectory, filepath.FromSlash(globalIgnoreRelativePath))
}

func cloneSegments(segments []string) []string {
	if len(segments) == 0 {
		return nil
	}
	return append([]string(nil), segments...)
}
