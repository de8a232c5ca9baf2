package output_test

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/gather/internal/output"
	"github.com/temirov/gather/internal/tokenizer"
	"github.com/temirov/gather/internal/types"
)

const (
	rustFilePath      = "test.rs"
	rustFileContent   = "fn main() {}\n"
	markupFilePath    = "test.txt"
	markupFileContent = "a < b && c > d\n"
	expectedEscaped   = "a &lt; b &amp;&amp; c &gt; d"

	expectedMarkdownDocument = "## `test.rs`\n\n```rust\nfn main() {}\n```\n\n"
	expectedXMLDocument      = "<context>\n  <file path=\"test.rs\">\nfn main() {}\n  </file>\n</context>\n"
)

func sampleFiles() []types.CollectedFile {
	return []types.CollectedFile{
		{RelativePath: "cmd/main.go", Content: "package main\n\nfunc main() {}\n"},
		{RelativePath: "notes.md", Content: "# Notes\n"},
		{RelativePath: markupFilePath, Content: markupFileContent},
		{RelativePath: "no_newline.txt", Content: "tail"},
	}
}

func render(t *testing.T, format types.Format, files []types.CollectedFile, options output.Options) string {
	t.Helper()
	renderer, err := output.NewRenderer(format)
	require.NoError(t, err)
	document, err := renderer.Render(files, options)
	require.NoError(t, err)
	return document
}

func TestMarkdownRendersFencedBlock(t *testing.T) {
	files := []types.CollectedFile{{RelativePath: rustFilePath, Content: rustFileContent}}
	assert.Equal(t, expectedMarkdownDocument, render(t, types.FormatMarkdown, files, output.Options{}))
}

func TestMarkdownTrimsTrailingNewlines(t *testing.T) {
	files := []types.CollectedFile{
		{RelativePath: "a.txt", Content: "line\n\n\n"},
		{RelativePath: "empty", Content: ""},
	}
	assert.Equal(t, "## `a.txt`\n\n```\nline\n```\n\n## `empty`\n\n```\n\n```\n\n", render(t, types.FormatMarkdown, files, output.Options{}))
}

func TestMarkdownSummaryLine(t *testing.T) {
	files := []types.CollectedFile{{RelativePath: rustFilePath, Content: rustFileContent}}
	document := render(t, types.FormatMarkdown, files, output.Options{IncludeSummary: true})
	assert.Equal(t, "<!-- 1 files | 13 bytes | ~4 tokens -->\n\n"+expectedMarkdownDocument, document)
}

func TestMarkdownSummaryUsesCounter(t *testing.T) {
	files := []types.CollectedFile{{RelativePath: rustFilePath, Content: rustFileContent}}
	document := render(t, types.FormatMarkdown, files, output.Options{IncludeSummary: true, Counter: fixedCounter{tokens: 7}})
	assert.True(t, strings.HasPrefix(document, "<!-- 1 files | 13 bytes | ~7 tokens -->\n\n"))
}

func TestXMLRendersFileElement(t *testing.T) {
	files := []types.CollectedFile{{RelativePath: rustFilePath, Content: rustFileContent}}
	assert.Equal(t, expectedXMLDocument, render(t, types.FormatXML, files, output.Options{}))
}

func TestXMLEscapesMarkupCharacters(t *testing.T) {
	files := []types.CollectedFile{{RelativePath: markupFilePath, Content: markupFileContent}}
	document := render(t, types.FormatXML, files, output.Options{})
	assert.Contains(t, document, expectedEscaped)
	assert.Equal(t, "&amp;lt;", output.EscapeContent("&lt;"))
}

func TestXMLSummaryAndMissingNewline(t *testing.T) {
	files := []types.CollectedFile{
		{RelativePath: "a\"b.txt", Content: "tail"},
		{RelativePath: rustFilePath, Content: rustFileContent},
	}
	document := render(t, types.FormatXML, files, output.Options{IncludeSummary: true})
	expected := "<context>\n" +
		"  <meta files=\"2\" tokens=\"~5\"/>\n" +
		"  <file path=\"a&quot;b.txt\">\ntail\n  </file>\n" +
		"  <file path=\"test.rs\">\nfn main() {}\n  </file>\n" +
		"</context>\n"
	assert.Equal(t, expected, document)
}

func TestEmptySetRendersEnvelopeOnly(t *testing.T) {
	assert.Equal(t, "", render(t, types.FormatMarkdown, nil, output.Options{}))
	assert.Equal(t, "<context>\n</context>\n", render(t, types.FormatXML, nil, output.Options{}))
}

type decodedContext struct {
	Files []decodedFile `xml:"file"`
}

type decodedFile struct {
	Path string `xml:"path,attr"`
	Body string `xml:",chardata"`
}

func TestXMLRoundTrip(t *testing.T) {
	files := sampleFiles()
	document := render(t, types.FormatXML, files, output.Options{IncludeSummary: true})

	var decoded decodedContext
	require.NoError(t, xml.NewDecoder(bytes.NewBufferString(document)).Decode(&decoded))
	require.Len(t, decoded.Files, len(files))
	for index, file := range files {
		assert.Equal(t, file.RelativePath, decoded.Files[index].Path)
		body := strings.TrimPrefix(decoded.Files[index].Body, "\n")
		body = strings.TrimSuffix(body, "  ")
		expected := file.Content
		if !strings.HasSuffix(expected, "\n") {
			expected += "\n"
		}
		assert.Equal(t, expected, body)
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	files := sampleFiles()
	document := render(t, types.FormatMarkdown, files, output.Options{})

	sections := strings.Split(document, "## `")[1:]
	require.Len(t, sections, len(files))
	for index, section := range sections {
		headingEnd := strings.Index(section, "`\n\n```")
		require.GreaterOrEqual(t, headingEnd, 0)
		assert.Equal(t, files[index].RelativePath, section[:headingEnd])

		block := section[headingEnd+len("`\n\n```"):]
		languageEnd := strings.Index(block, "\n")
		assert.Equal(t, output.LanguageTag(files[index].RelativePath), block[:languageEnd])
		body := strings.TrimSuffix(block[languageEnd+1:], "```\n\n")
		assert.Equal(t, strings.TrimRight(files[index].Content, "\n")+"\n", body)
	}
}

func TestNewRendererRejectsUnknownFormat(t *testing.T) {
	_, err := output.NewRenderer(types.Format("json"))
	assert.Error(t, err)
}

func TestLanguageTag(t *testing.T) {
	testCases := map[string]string{
		"main.rs":          "rust",
		"app.py":           "python",
		"index.js":         "javascript",
		"config.toml":      "toml",
		"src/lib.HPP":      "cpp",
		"infra/main.tf":    "hcl",
		"build.gradle.kts": "kotlin",
		"Makefile":         "",
		".env":             "",
		"dir.d/file":       "",
	}
	for path, expected := range testCases {
		assert.Equal(t, expected, output.LanguageTag(path), path)
	}
}

func TestWriteTree(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, output.WriteTree(&buffer, "project/", []string{"README.md", "src/lib.rs", "src/nested/mod.rs"}))
	assert.Equal(t, "project/\nREADME.md\n  lib.rs\n    mod.rs\n\n3 files\n", buffer.String())
}

func TestWriteTokenReport(t *testing.T) {
	files := []types.CollectedFile{
		{RelativePath: "hello.rs", Content: rustFileContent},
		{RelativePath: "notes.md", Content: "# Notes\n"},
	}
	counts, totals, err := tokenizer.CountFiles(nil, files)
	require.NoError(t, err)

	var buffer bytes.Buffer
	require.NoError(t, output.WriteTokenReport(&buffer, counts, totals))

	expected := "       4 tokens        13 bytes  hello.rs\n" +
		"       2 tokens         8 bytes  notes.md\n" +
		"\n" +
		"       6 tokens        21 bytes  total (2 files)\n"
	assert.Equal(t, expected, buffer.String())
}

type fixedCounter struct {
	tokens int
}

func (counter fixedCounter) Name() string {
	return "fixed"
}

func (counter fixedCounter) CountString(string) (int, error) {
	return counter.tokens, nil
}
