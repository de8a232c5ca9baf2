package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/gather/internal/utils"
)

// textFileName defines the name of the text file used in tests.
const textFileName = "sample.txt"

// binaryFileName defines the name of the binary file used in tests.
const binaryFileName = "sample.bin"

// nestedDirectoryName defines the directory used for nested path tests.
const nestedDirectoryName = "subdir"

// TestDeduplicatePatterns verifies that DeduplicatePatterns removes duplicate patterns.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		expected []string
	}{
		{
			testName: "removes duplicates",
			patterns: []string{"a", "b", "a"},
			expected: []string{"a", "b"},
		},
		{
			testName: "keeps unique",
			patterns: []string{"a", "b"},
			expected: []string{"a", "b"},
		},
	}
	for index, testCase := range testCases {
		actual := utils.DeduplicatePatterns(testCase.patterns)
		if len(actual) != len(testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected length %d, got %d", index, testCase.testName, len(testCase.expected), len(actual))
			continue
		}
		for position, value := range actual {
			if value != testCase.expected[position] {
				testingInstance.Errorf("case %d (%s): expected %s at position %d, got %s", index, testCase.testName, testCase.expected[position], position, value)
			}
		}
	}
}

// TestRelativePathOrSelf verifies relative path calculations.
func TestRelativePathOrSelf(testingInstance *testing.T) {
	temporaryRoot := testingInstance.TempDir()
	subPath := filepath.Join(temporaryRoot, textFileName)
	nestedPath := filepath.Join(temporaryRoot, nestedDirectoryName, textFileName)
	testCases := []struct {
		testName string
		fullPath string
		root     string
		expected string
	}{
		{
			testName: "root path returns dot",
			fullPath: temporaryRoot,
			root:     temporaryRoot,
			expected: ".",
		},
		{
			testName: "sub path returns relative",
			fullPath: subPath,
			root:     temporaryRoot,
			expected: textFileName,
		},
		{
			testName: "nested path uses forward slashes",
			fullPath: nestedPath,
			root:     temporaryRoot,
			expected: nestedDirectoryName + "/" + textFileName,
		},
	}
	for index, testCase := range testCases {
		actual := utils.RelativePathOrSelf(testCase.fullPath, testCase.root)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %s, got %s", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestIsHiddenPath verifies that any dot-prefixed segment marks a path as hidden.
func TestIsHiddenPath(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		path     string
		expected bool
	}{
		{testName: "plain file", path: "main.go", expected: false},
		{testName: "hidden file", path: ".env", expected: true},
		{testName: "file in hidden directory", path: "config/.secrets/key.txt", expected: true},
		{testName: "nested visible file", path: "src/lib/util.rs", expected: false},
		{testName: "root", path: ".", expected: false},
	}
	for index, testCase := range testCases {
		actual := utils.IsHiddenPath(testCase.path)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %t, got %t", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestSplitPathSegments verifies segment splitting for root and nested paths.
func TestSplitPathSegments(testingInstance *testing.T) {
	if segments := utils.SplitPathSegments("."); len(segments) != 0 {
		testingInstance.Fatalf("expected no segments for root, got %v", segments)
	}
	segments := utils.SplitPathSegments(`a\b/c.txt`)
	if len(segments) != 3 || segments[0] != "a" || segments[1] != "b" || segments[2] != "c.txt" {
		testingInstance.Fatalf("unexpected segments: %v", segments)
	}
}

// TestResolveRootFallsBackToInput verifies that an unresolvable root is returned unchanged.
func TestResolveRootFallsBackToInput(testingInstance *testing.T) {
	missingRoot := filepath.Join(testingInstance.TempDir(), "missing")
	if resolved := utils.ResolveRoot(missingRoot); resolved != missingRoot {
		testingInstance.Fatalf("expected %s, got %s", missingRoot, resolved)
	}
	existingRoot := testingInstance.TempDir()
	resolved := utils.ResolveRoot(existingRoot)
	if !filepath.IsAbs(resolved) {
		testingInstance.Fatalf("expected absolute path, got %s", resolved)
	}
}

// TestRootDisplayName verifies the tree header for a root directory.
func TestRootDisplayName(testingInstance *testing.T) {
	if name := utils.RootDisplayName("/tmp/project/"); name != "project/" {
		testingInstance.Fatalf("unexpected display name %q", name)
	}
}

// TestFindRepositoryRoot verifies upward discovery of the .git directory.
func TestFindRepositoryRoot(testingInstance *testing.T) {
	repositoryRoot := testingInstance.TempDir()
	nestedDirectory := filepath.Join(repositoryRoot, nestedDirectoryName, "deeper")
	if makeError := os.MkdirAll(nestedDirectory, 0o755); makeError != nil {
		testingInstance.Fatalf("mkdir: %v", makeError)
	}
	if makeError := os.Mkdir(filepath.Join(repositoryRoot, utils.GitDirectoryName), 0o755); makeError != nil {
		testingInstance.Fatalf("mkdir .git: %v", makeError)
	}
	foundRoot, found := utils.FindRepositoryRoot(nestedDirectory)
	if !found {
		testingInstance.Fatalf("expected repository root to be found")
	}
	if foundRoot != repositoryRoot {
		testingInstance.Fatalf("expected %s, got %s", repositoryRoot, foundRoot)
	}
}

// TestIsFileBinary verifies NUL detection and the unreadable-file policy.
func TestIsFileBinary(testingInstance *testing.T) {
	temporaryRoot := testingInstance.TempDir()
	textPath := filepath.Join(temporaryRoot, textFileName)
	binaryPath := filepath.Join(temporaryRoot, binaryFileName)
	latePath := filepath.Join(temporaryRoot, "late.txt")
	if writeError := os.WriteFile(textPath, []byte("hello world"), 0o600); writeError != nil {
		testingInstance.Fatalf("write text: %v", writeError)
	}
	if writeError := os.WriteFile(binaryPath, []byte{0x00, 0x01, 0x02, 0x03}, 0o600); writeError != nil {
		testingInstance.Fatalf("write binary: %v", writeError)
	}
	lateContent := make([]byte, utils.SniffLength+16)
	for index := range lateContent {
		lateContent[index] = 'a'
	}
	lateContent[utils.SniffLength+1] = 0
	if writeError := os.WriteFile(latePath, lateContent, 0o600); writeError != nil {
		testingInstance.Fatalf("write late: %v", writeError)
	}

	if utils.IsFileBinary(textPath) {
		testingInstance.Errorf("text file reported as binary")
	}
	if !utils.IsFileBinary(binaryPath) {
		testingInstance.Errorf("binary file reported as text")
	}
	if utils.IsFileBinary(latePath) {
		testingInstance.Errorf("NUL beyond the sniff window must not mark the file binary")
	}
	if !utils.IsFileBinary(filepath.Join(temporaryRoot, "missing.bin")) {
		testingInstance.Errorf("unreadable file must be reported as binary")
	}
}
