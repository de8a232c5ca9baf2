package collector

import (
	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

const logInvalidPattern = "invalid glob pattern skipped"

// patternSet is a compiled list of glob patterns matched against slash separated
// root-relative paths. A set built from a non-empty list stays configured even
// when every pattern was invalid, so an include gate then matches nothing.
type patternSet struct {
	patterns   []string
	configured bool
}

func newPatternSet(patterns []string, role string, logger *zap.Logger) patternSet {
	set := patternSet{configured: len(patterns) > 0}
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			logger.Warn(logInvalidPattern, zap.String("set", role), zap.String("pattern", pattern))
			continue
		}
		set.patterns = append(set.patterns, pattern)
	}
	return set
}

// matchesAny reports whether at least one valid pattern matches the key.
func (set patternSet) matchesAny(matchKey string) bool {
	for _, pattern := range set.patterns {
		if matched, _ := doublestar.Match(pattern, matchKey); matched {
			return true
		}
	}
	return false
}

// selector applies the include gate followed by the exclude gate.
type selector struct {
	include patternSet
	exclude patternSet
}

func newSelector(include []string, exclude []string, logger *zap.Logger) selector {
	return selector{
		include: newPatternSet(include, "include", logger),
		exclude: newPatternSet(exclude, "exclude", logger),
	}
}

// reject returns the drop reason for the key, or an empty string when the key is selected.
func (sel selector) reject(matchKey string) string {
	if sel.include.configured && !sel.include.matchesAny(matchKey) {
		return dropReasonNotIncluded
	}
	if sel.exclude.matchesAny(matchKey) {
		return dropReasonExcluded
	}
	return ""
}
