package source

import (
	"path/filepath"
	"strings"
)

// SourceFile is a named piece of program text handed to the tokenizer.
type SourceFile struct {
	Name    string // Display name, e.g. "main.ph", "<stdin>", "<expr>"
	Path    string // File path, empty for inline input
	Content string
	lines   []string // lazily split
}

// NewSourceFile creates a source file with an explicit name and path.
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// NewExprSource wraps program text passed on the command line.
func NewExprSource(content string) *SourceFile {
	return &SourceFile{Name: "<expr>", Content: content}
}

// NewStdinSource wraps program text read from standard input.
func NewStdinSource(content string) *SourceFile {
	return &SourceFile{Name: "<stdin>", Content: content}
}

// FromFile creates a SourceFile named after the base name of filePath.
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}

// Lines returns the content split on '\n' (cached).
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// Line returns the 1-based line n without its trailing carriage return,
// or false when n is out of range.
func (sf *SourceFile) Line(n int) (string, bool) {
	lines := sf.Lines()
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// DisplayPath prefers the file path and falls back to the display name.
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// IsFile reports whether the source was read from disk.
func (sf *SourceFile) IsFile() bool {
	return sf.Path != ""
}
