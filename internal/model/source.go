// Package model defines the report documents exchanged between distill phases.
package model

import "time"

// Path represents a file system path.
type Path string

// Language identifies the syntax family used for import, function and comment detection.
type Language string

const (
	// LangPython covers .py sources.
	LangPython Language = "python"
	// LangGo covers .go sources.
	LangGo Language = "go"
	// LangJavaScript covers .js/.jsx/.ts/.tsx sources.
	LangJavaScript Language = "javascript"
	// LangShell covers .sh sources.
	LangShell Language = "shell"
	// LangConfig covers YAML and TOML files.
	LangConfig Language = "config"
	// LangText covers everything else (markdown, plain text).
	LangText Language = "text"
)

// FileRecord is a single entry of the file map produced by the map phase.
type FileRecord struct {
	Path          Path      `json:"path" yaml:"path"`
	Size          int64     `json:"size" yaml:"size"`
	ModTime       time.Time `json:"mod_time" yaml:"mod_time"`
	Language      Language  `json:"language" yaml:"language"`
	Imports       []string  `json:"imports" yaml:"imports"`
	FunctionCount int       `json:"function_count" yaml:"function_count"`
	ClassCount    int       `json:"class_count" yaml:"class_count"`
	IsTest        bool      `json:"is_test" yaml:"is_test"`
}

// SkippedFile records a file the mapper could not analyze.
type SkippedFile struct {
	Path   Path   `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// FileMap is the document written by the map phase (distill_map.json).
type FileMap struct {
	Root        Path          `json:"root" yaml:"root"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Files       []FileRecord  `json:"files" yaml:"files"`
	Skipped     []SkippedFile `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// TotalSize returns the summed size of all mapped files.
func (fm *FileMap) TotalSize() int64 {
	var total int64
	for _, f := range fm.Files {
		total += f.Size
	}

	return total
}
