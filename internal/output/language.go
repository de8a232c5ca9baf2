package output

import (
	"path"
	"strings"
)

var languageTags = map[string]string{
	"rs":         "rust",
	"py":         "python",
	"js":         "javascript",
	"ts":         "typescript",
	"tsx":        "tsx",
	"jsx":        "jsx",
	"go":         "go",
	"rb":         "ruby",
	"java":       "java",
	"c":          "c",
	"cpp":        "cpp",
	"cc":         "cpp",
	"cxx":        "cpp",
	"h":          "cpp",
	"hpp":        "cpp",
	"sh":         "bash",
	"bash":       "bash",
	"zsh":        "zsh",
	"fish":       "fish",
	"json":       "json",
	"yaml":       "yaml",
	"yml":        "yaml",
	"toml":       "toml",
	"xml":        "xml",
	"html":       "html",
	"htm":        "html",
	"css":        "css",
	"scss":       "scss",
	"sql":        "sql",
	"md":         "markdown",
	"dockerfile": "dockerfile",
	"tf":         "hcl",
	"swift":      "swift",
	"kt":         "kotlin",
	"kts":        "kotlin",
	"r":          "r",
	"lua":        "lua",
	"zig":        "zig",
	"nix":        "nix",
}

// LanguageTag returns the fenced code block language for a slash separated path,
// or an empty string when the extension is unknown.
func LanguageTag(relativePath string) string {
	extension := strings.TrimPrefix(path.Ext(relativePath), ".")
	if extension == "" {
		return ""
	}
	return languageTags[strings.ToLower(extension)]
}
