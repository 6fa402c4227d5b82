package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	m "distill.dev/pkg/distill/internal/model"
)

func TestDetectLanguage(t *testing.T) {
	tests := map[m.Path]m.Language{
		"a.py":           m.LangPython,
		"cmd/main.go":    m.LangGo,
		"web/App.TSX":    m.LangJavaScript,
		"lib/index.mjs":  m.LangJavaScript,
		"scripts/run.sh": m.LangShell,
		"ci.yml":         m.LangConfig,
		"pyproject.toml": m.LangConfig,
		"README.md":      m.LangText,
		"Makefile":       m.LangText,
	}

	for path, want := range tests {
		assert.Equal(t, want, DetectLanguage(path), path)
	}
}

func TestIsTestFile(t *testing.T) {
	tests := []struct {
		path m.Path
		want bool
	}{
		{"test_scoring.py", true},
		{"scoring_test.py", true},
		{"pkg/scorer_test.go", true},
		{"web/button.test.tsx", true},
		{"web/button.spec.js", true},
		{"conftest.py", true},
		{"tests/helpers.py", true},
		{"src/__tests__/util.js", true},
		{"scoring.py", false},
		{"testing/scorer.go", false},
		{"contest.py", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.want, IsTestFile(tt.path))
		})
	}
}

func TestExtractImports(t *testing.T) {
	t.Run("python", func(t *testing.T) {
		src := "#!/usr/bin/env python\nimport os\nimport os.path as osp\nfrom . import sibling\nfrom pkg.mod import a, b\n\nx = 'import nothing'\n"

		got := ExtractImports(m.LangPython, []byte(src), 50)
		assert.Equal(t, []string{"import os", "import os.path as osp", "from . import sibling", "from pkg.mod import a, b"}, got)
	})

	t.Run("go import block", func(t *testing.T) {
		src := "package main\n\nimport (\n\t\"fmt\"\n\t// comment\n\tlru \"github.com/hashicorp/golang-lru/v2\"\n)\n\nimport \"os\"\n"

		got := ExtractImports(m.LangGo, []byte(src), 50)
		assert.Equal(t, []string{`"fmt"`, `lru "github.com/hashicorp/golang-lru/v2"`, `import "os"`}, got)
	})

	t.Run("javascript", func(t *testing.T) {
		src := "import React from 'react';\nimport './styles.css';\nconst fs = require('fs');\nexport const x = 1;\n"

		got := ExtractImports(m.LangJavaScript, []byte(src), 50)
		assert.Len(t, got, 3)
	})

	t.Run("shell source", func(t *testing.T) {
		got := ExtractImports(m.LangShell, []byte("#!/bin/sh\n. ./env.sh\nsource lib.sh\necho hi\n"), 50)
		assert.Equal(t, []string{". ./env.sh", "source lib.sh"}, got)
	})

	t.Run("only head lines are read", func(t *testing.T) {
		src := strings.Repeat("x = 1\n", 10) + "import late\n"

		assert.Empty(t, ExtractImports(m.LangPython, []byte(src), 10))
		assert.Equal(t, []string{"import late"}, ExtractImports(m.LangPython, []byte(src), 11))
	})

	t.Run("very long lines do not end the head", func(t *testing.T) {
		src := "x = '" + strings.Repeat("a", 1100*1024) + "'\nimport os\n"

		assert.Equal(t, []string{"import os"}, ExtractImports(m.LangPython, []byte(src), 50))
	})

	t.Run("text has no imports", func(t *testing.T) {
		assert.Nil(t, ExtractImports(m.LangText, []byte("import os\n"), 50))
	})
}

func TestCountFunctionsAndClasses(t *testing.T) {
	tests := []struct {
		name      string
		lang      m.Language
		src       string
		functions int
		classes   int
	}{
		{
			name:      "python",
			lang:      m.LangPython,
			src:       "class A:\n    def f(self):\n        pass\n\n    async def g(self):\n        pass\n\ndef h():\n    pass\n",
			functions: 3,
			classes:   1,
		},
		{
			name:      "go",
			lang:      m.LangGo,
			src:       "package x\n\ntype S struct{}\n\ntype I interface{ F() }\n\ntype N int\n\nfunc (S) F() {}\n\nfunc New() S { return S{} }\n",
			functions: 2,
			classes:   2,
		},
		{
			name:      "javascript",
			lang:      m.LangJavaScript,
			src:       "export default function App() {}\nconst add = (a, b) => a + b;\nasync function load() {}\nexport class Store {}\n",
			functions: 3,
			classes:   1,
		},
		{
			name:      "shell",
			lang:      m.LangShell,
			src:       "#!/bin/sh\nfunction setup {\n}\ncleanup() {\n}\n",
			functions: 2,
			classes:   0,
		},
		{
			name: "markdown",
			lang: m.LangText,
			src:  "# def heading\nclass notes\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.functions, CountFunctions(tt.lang, []byte(tt.src)))
			assert.Equal(t, tt.classes, CountClasses(tt.lang, []byte(tt.src)))
		})
	}
}
