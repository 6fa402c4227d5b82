package domain

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	m "distill.dev/pkg/distill/internal/model"
)

const diffContextLines = 2

var (
	heredocStart    = regexp.MustCompile(`(?:^|[^<])<<(-?)\s*(['"]?)([A-Za-z_][A-Za-z0-9_]*)`)
	yamlBlockHeader = regexp.MustCompile(`(?:^\s*|[:-]\s+)[|>][-+0-9]*\s*(?:#.*)?$`)
)

type thinLine struct {
	text     string
	verbatim bool
}

// openLiteral is a multi-line string literal whose lines must be copied
// byte for byte until it closes.
type openLiteral struct {
	delim       string
	escapes     bool
	heredoc     bool
	stripTabs   bool
	block       bool
	blockIndent int
}

// Thin compresses content for the thin tier. It drops full-line comments,
// whole-line Python docstrings and trailing whitespace, and collapses blank
// line runs. Shebangs, Go directives and the contents of multi-line string
// literals (Python and TOML triple quotes, Go and JS backtick strings, shell
// heredocs, YAML block scalars) are preserved. Thin(Thin(x)) == Thin(x).
func Thin(lang m.Language, content []byte) []byte {
	if len(content) == 0 {
		return content
	}

	text := strings.TrimSuffix(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	lines := strings.Split(text, "\n")
	prefix := commentPrefix(lang)
	out := make([]thinLine, 0, len(lines))

	var (
		open     *openLiteral
		lastCode string
		haveCode bool
	)

	for i := 0; i < len(lines); i++ {
		raw := lines[i]

		if open != nil {
			if open.holds(lines, i) {
				out = append(out, thinLine{text: raw, verbatim: true})
				if open.closedBy(raw) {
					open = nil
				}

				continue
			}

			open = nil
		}

		line := strings.TrimRight(raw, " \t\r\f\v")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			out = append(out, thinLine{})
			continue
		case i == 0 && strings.HasPrefix(trimmed, "#!"):
			out = append(out, thinLine{text: line})
			continue
		case lang == m.LangGo && (strings.HasPrefix(trimmed, "//go:") || strings.HasPrefix(trimmed, "// +build")):
			out = append(out, thinLine{text: line})
			continue
		case prefix != "" && strings.HasPrefix(trimmed, prefix):
			continue
		}

		if lang == m.LangPython {
			if delim := docstringDelimiter(trimmed); delim != "" && docstringAllowed(haveCode, lastCode) {
				if end, ok := docstringEnd(lines, i, delim); ok && docstringDroppable(lines, i, end, haveCode, prefix) {
					i = end
					continue
				}
			}
		}

		open = openedLiteral(lang, line)

		out = append(out, thinLine{text: line})
		haveCode = true
		lastCode = trimmed
	}

	return joinThinLines(out)
}

// openedLiteral returns the literal left open at the end of line, if any.
func openedLiteral(lang m.Language, line string) *openLiteral {
	switch lang {
	case m.LangPython:
		if delim := unclosedTripleQuote(line); delim != "" {
			return &openLiteral{delim: delim}
		}
	case m.LangGo:
		if countDelim(line, "`", false)%2 == 1 {
			return &openLiteral{delim: "`"}
		}
	case m.LangJavaScript:
		if countDelim(line, "`", true)%2 == 1 {
			return &openLiteral{delim: "`", escapes: true}
		}
	case m.LangShell:
		if match := heredocStart.FindStringSubmatch(line); match != nil {
			return &openLiteral{delim: match[3], heredoc: true, stripTabs: match[1] == "-"}
		}
	case m.LangConfig:
		if yamlBlockHeader.MatchString(line) {
			return &openLiteral{block: true, blockIndent: indentWidth(line)}
		}

		if delim := unclosedTripleQuote(line); delim != "" {
			return &openLiteral{delim: delim}
		}
	}

	return nil
}

// holds reports whether line i still belongs to the literal. Only YAML block
// scalars end implicitly, at the first non-blank line that is not indented
// deeper than their header. Blank lines belong to the block when more block
// content follows them.
func (o *openLiteral) holds(lines []string, i int) bool {
	if !o.block {
		return true
	}

	for j := i; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) != "" {
			return indentWidth(lines[j]) > o.blockIndent
		}
	}

	return false
}

// closedBy reports whether raw, already copied verbatim, ends the literal.
func (o *openLiteral) closedBy(raw string) bool {
	switch {
	case o.block:
		return false
	case o.heredoc:
		if o.stripTabs {
			raw = strings.TrimLeft(raw, "\t")
		}

		return raw == o.delim
	default:
		return countDelim(raw, o.delim, o.escapes)%2 == 1
	}
}

// countDelim counts occurrences of delim in s. With escapes, a delimiter
// preceded by an odd number of backslashes does not count.
func countDelim(s, delim string, escapes bool) int {
	if !escapes {
		return strings.Count(s, delim)
	}

	count := 0

	for i := 0; i+len(delim) <= len(s); i++ {
		if s[i:i+len(delim)] != delim {
			continue
		}

		backslashes := 0
		for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
			backslashes++
		}

		if backslashes%2 == 0 {
			count++
		}
	}

	return count
}

func joinThinLines(lines []thinLine) []byte {
	var sb strings.Builder

	pendingBlank := false
	wrote := false

	for _, l := range lines {
		if !l.verbatim && l.text == "" {
			pendingBlank = wrote
			continue
		}

		if pendingBlank {
			sb.WriteString("\n")

			pendingBlank = false
		}

		sb.WriteString(l.text)
		sb.WriteString("\n")

		wrote = true
	}

	return []byte(sb.String())
}

// docstringDelimiter returns the triple quote a trimmed line opens with,
// allowing a single string prefix letter such as r or u.
func docstringDelimiter(trimmed string) string {
	s := trimmed
	if len(s) > 0 && strings.ContainsRune("rRuU", rune(s[0])) {
		s = s[1:]
	}

	switch {
	case strings.HasPrefix(s, `"""`):
		return `"""`
	case strings.HasPrefix(s, `'''`):
		return `'''`
	}

	return ""
}

// docstringAllowed reports whether a string statement at this point is a
// module, class or function docstring.
func docstringAllowed(haveCode bool, lastCode string) bool {
	if !haveCode {
		return true
	}

	if !strings.HasSuffix(lastCode, ":") {
		return false
	}

	for _, kw := range []string{"def ", "async def ", "class "} {
		if strings.HasPrefix(lastCode, kw) {
			return true
		}
	}

	return false
}

// docstringEnd finds the line that closes the docstring opened on line start.
// The closing quote must end its line, otherwise the string is not a
// whole-line docstring.
func docstringEnd(lines []string, start int, delim string) (int, bool) {
	first := strings.TrimSpace(lines[start])
	body := first[strings.Index(first, delim)+len(delim):]

	if idx := strings.Index(body, delim); idx >= 0 {
		return start, idx+len(delim) == len(body)
	}

	for j := start + 1; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if idx := strings.Index(trimmed, delim); idx >= 0 {
			return j, idx+len(delim) == len(trimmed)
		}
	}

	return 0, false
}

// docstringDroppable keeps docstrings that are the only statement of a body,
// since removing them would leave the block empty.
func docstringDroppable(lines []string, start, end int, haveCode bool, prefix string) bool {
	if !haveCode {
		return true
	}

	docIndent := indentWidth(lines[start])

	for j := end + 1; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if trimmed == "" || (prefix != "" && strings.HasPrefix(trimmed, prefix)) {
			continue
		}

		return indentWidth(lines[j]) >= docIndent
	}

	return false
}

func unclosedTripleQuote(line string) string {
	for _, delim := range []string{`"""`, `'''`} {
		if strings.Count(line, delim)%2 == 1 {
			return delim
		}
	}

	return ""
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// UnifiedDiff renders a unified diff between before and after for name.
func UnifiedDiff(name string, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  diffContextLines,
	})
}
