package domain

import (
	"bytes"
	"path"
	"regexp"
	"strings"

	m "distill.dev/pkg/distill/internal/model"
)

type languageRules struct {
	imports       []*regexp.Regexp
	functions     *regexp.Regexp
	classes       *regexp.Regexp
	commentPrefix string
}

var rulesByLanguage = map[m.Language]languageRules{
	m.LangPython: {
		imports: []*regexp.Regexp{
			regexp.MustCompile(`^\s*import\s+[\w.]+`),
			regexp.MustCompile(`^\s*from\s+\.*[\w.]*\s+import\s+`),
		},
		functions:     regexp.MustCompile(`(?m)^\s*(?:async\s+)?def\s+\w+\s*\(`),
		classes:       regexp.MustCompile(`(?m)^\s*class\s+\w+`),
		commentPrefix: "#",
	},
	m.LangGo: {
		imports: []*regexp.Regexp{
			regexp.MustCompile(`^\s*import\s+(?:[\w.]+\s+)?"[^"]+"`),
		},
		functions:     regexp.MustCompile(`(?m)^func\s`),
		classes:       regexp.MustCompile(`(?m)^\s*type\s+\w+(?:\[[^\]]*\])?\s+(?:struct|interface)\b`),
		commentPrefix: "//",
	},
	m.LangJavaScript: {
		imports: []*regexp.Regexp{
			regexp.MustCompile(`^\s*import\s.*from\s+['"][^'"]+['"]`),
			regexp.MustCompile(`^\s*import\s+['"][^'"]+['"]`),
			regexp.MustCompile(`\brequire\(\s*['"][^'"]+['"]\s*\)`),
		},
		functions: regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\b|` +
			`^\s*(?:export\s+)?(?:const|let|var)\s+\w+\s*=\s*(?:async\s+)?(?:\([^)]*\)|\w+)\s*=>`),
		classes:       regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+\w+`),
		commentPrefix: "//",
	},
	m.LangShell: {
		imports: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:source|\.)\s+\S+`),
		},
		functions:     regexp.MustCompile(`(?m)^\s*(?:function\s+[\w-]+|[\w-]+\s*\(\s*\))\s*\{?`),
		commentPrefix: "#",
	},
	m.LangConfig: {
		commentPrefix: "#",
	},
}

var goImportBlockStart = regexp.MustCompile(`^\s*import\s*\(\s*$`)

var languageByExt = map[string]m.Language{
	".py":   m.LangPython,
	".go":   m.LangGo,
	".js":   m.LangJavaScript,
	".jsx":  m.LangJavaScript,
	".mjs":  m.LangJavaScript,
	".ts":   m.LangJavaScript,
	".tsx":  m.LangJavaScript,
	".sh":   m.LangShell,
	".bash": m.LangShell,
	".yaml": m.LangConfig,
	".yml":  m.LangConfig,
	".toml": m.LangConfig,
}

// DetectLanguage maps a file path onto its syntax family by extension.
func DetectLanguage(p m.Path) m.Language {
	if lang, ok := languageByExt[strings.ToLower(path.Ext(string(p)))]; ok {
		return lang
	}

	return m.LangText
}

// IsTestFile reports whether p follows a common test naming convention
// (test_x.py, x_test.py, x_test.go, x.test.ts, x.spec.js) or lives under a
// tests/test/__tests__ directory.
func IsTestFile(p m.Path) bool {
	slashed := filepathToSlash(string(p))
	base := strings.ToLower(path.Base(slashed))
	stem := strings.TrimSuffix(base, path.Ext(base))

	switch {
	case strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".py"):
		return true
	case strings.HasSuffix(stem, "_test"):
		return true
	case strings.HasSuffix(stem, ".test"), strings.HasSuffix(stem, ".spec"):
		return true
	case base == "conftest.py":
		return true
	}

	for _, dir := range strings.Split(path.Dir(slashed), "/") {
		switch dir {
		case "tests", "test", "__tests__":
			return true
		}
	}

	return false
}

// ExtractImports returns the import statements found in the first headLines
// lines of content. Go import blocks are expanded to one entry per import.
func ExtractImports(lang m.Language, content []byte, headLines int) []string {
	rules, ok := rulesByLanguage[lang]
	if !ok || len(rules.imports) == 0 {
		return nil
	}

	imports := []string{}
	inGoBlock := false

	if headLines <= 0 {
		return imports
	}

	head := bytes.SplitN(content, []byte("\n"), headLines+1)
	if len(head) > headLines {
		head = head[:headLines]
	}

	for _, raw := range head {
		text := strings.TrimSpace(string(raw))

		if lang == m.LangGo {
			if inGoBlock {
				if strings.HasPrefix(text, ")") {
					inGoBlock = false
					continue
				}

				if strings.Contains(text, `"`) && !strings.HasPrefix(text, "//") {
					imports = append(imports, text)
				}

				continue
			}

			if goImportBlockStart.MatchString(text) {
				inGoBlock = true
				continue
			}
		}

		for _, re := range rules.imports {
			if re.MatchString(text) {
				imports = append(imports, text)
				break
			}
		}
	}

	return imports
}

// CountFunctions counts function definitions in content.
func CountFunctions(lang m.Language, content []byte) int {
	return countMatches(rulesByLanguage[lang].functions, content)
}

// CountClasses counts class (or, for Go, struct and interface type) definitions.
func CountClasses(lang m.Language, content []byte) int {
	return countMatches(rulesByLanguage[lang].classes, content)
}

func countMatches(re *regexp.Regexp, content []byte) int {
	if re == nil {
		return 0
	}

	return len(re.FindAllIndex(content, -1))
}

func commentPrefix(lang m.Language) string {
	return rulesByLanguage[lang].commentPrefix
}
