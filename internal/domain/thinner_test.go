package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "distill.dev/pkg/distill/internal/model"
)

var thinFixtures = []struct {
	name string
	lang m.Language
	in   string
	want string
}{
	{
		name: "python comments and docstrings",
		lang: m.LangPython,
		in: `#!/usr/bin/env python3
"""Module docstring
spanning lines."""
# leading comment
import os   


def run(path):
    """Run the thing."""
    # explain
    return os.path.exists(path)  # trailing comment stays



class Store:
    '''Store docstring.'''

    def only_doc(self):
        """Only statement in the body."""
`,
		want: `#!/usr/bin/env python3
import os

def run(path):
    return os.path.exists(path)  # trailing comment stays

class Store:

    def only_doc(self):
        """Only statement in the body."""
`,
	},
	{
		name: "python multi-line strings are preserved",
		lang: m.LangPython,
		in: `QUERY = """
# not a comment


SELECT 1   
"""
x = 1
`,
		want: `QUERY = """
# not a comment


SELECT 1   
"""
x = 1
`,
	},
	{
		name: "docstring followed by code on the closing line is kept",
		lang: m.LangPython,
		in:   "def f():\n    \"\"\"doc\"\"\"; return 1\n",
		want: "def f():\n    \"\"\"doc\"\"\"; return 1\n",
	},
	{
		name: "go keeps build tags and directives",
		lang: m.LangGo,
		in: `//go:build linux

// Package x does things.
package x

import "embed"

//go:embed assets
var assets embed.FS

// F is documented.
func F() int {
	// inline
	return 1 // trailing
}
`,
		want: `//go:build linux

package x

import "embed"

//go:embed assets
var assets embed.FS

func F() int {
	return 1 // trailing
}
`,
	},
	{
		name: "yaml comments",
		lang: m.LangConfig,
		in:   "# config\nkey: value # note\n\n\n\nother: 1\n",
		want: "key: value # note\n\nother: 1\n",
	},
	{
		name: "go raw strings are preserved",
		lang: m.LangGo,
		in:   "var tmpl = `\n// keep me: part of the string\n\n\nline`\n// drop me\nvar x = 1\n",
		want: "var tmpl = `\n// keep me: part of the string\n\n\nline`\nvar x = 1\n",
	},
	{
		name: "go raw string without trailing newline",
		lang: m.LangGo,
		in:   "var tmpl = `\n// keep me: part of the string\n\n\nline`",
		want: "var tmpl = `\n// keep me: part of the string\n\n\nline`\n",
	},
	{
		name: "js template literals honor escaped backticks",
		lang: m.LangJavaScript,
		in:   "const s = `\n// literal\n\\` still open\n`;\n// gone\nexport default s;\n",
		want: "const s = `\n// literal\n\\` still open\n`;\nexport default s;\n",
	},
	{
		name: "shell heredoc bodies are preserved",
		lang: m.LangShell,
		in:   "#!/bin/sh\n# drop\ncat <<'EOF' > out.txt\n# header kept in generated file\n\n\nEOF\necho done  \n",
		want: "#!/bin/sh\ncat <<'EOF' > out.txt\n# header kept in generated file\n\n\nEOF\necho done\n",
	},
	{
		name: "shell tab-stripped heredoc",
		lang: m.LangShell,
		in:   "if true; then\n\tcat <<-END\n\t# kept\n\tEND\n\t# dropped\nfi\n",
		want: "if true; then\n\tcat <<-END\n\t# kept\n\tEND\nfi\n",
	},
	{
		name: "yaml block scalars are preserved",
		lang: m.LangConfig,
		in:   "# top\njob:\n  script: |\n    #!/bin/sh\n    # set -e\n\n\n    echo hi\n\n\n  # drop me\n  when: always\n",
		want: "job:\n  script: |\n    #!/bin/sh\n    # set -e\n\n\n    echo hi\n\n  when: always\n",
	},
	{
		name: "toml multi-line strings are preserved",
		lang: m.LangConfig,
		in:   "desc = \"\"\"\n# keep\n\"\"\"\n# drop\nname = \"x\"\n",
		want: "desc = \"\"\"\n# keep\n\"\"\"\nname = \"x\"\n",
	},
	{
		name: "text only gets whitespace normalization",
		lang: m.LangText,
		in:   "\n\n# Title   \n\n\n\nBody\r\n\n",
		want: "# Title\n\nBody\n",
	},
}

func TestThin(t *testing.T) {
	for _, tt := range thinFixtures {
		t.Run(tt.name, func(t *testing.T) {
			got := Thin(tt.lang, []byte(tt.in))
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestThin_IsIdempotent(t *testing.T) {
	for _, tt := range thinFixtures {
		t.Run(tt.name, func(t *testing.T) {
			once := Thin(tt.lang, []byte(tt.in))
			twice := Thin(tt.lang, once)
			assert.Equal(t, string(once), string(twice))
		})
	}
}

func TestThin_EmptyAndCommentOnly(t *testing.T) {
	assert.Empty(t, Thin(m.LangPython, nil))
	assert.Empty(t, Thin(m.LangPython, []byte("# a\n# b\n\n")))
}

func TestUnifiedDiff(t *testing.T) {
	before := []byte("# comment\nx = 1\n")
	after := Thin(m.LangPython, before)

	diff, err := UnifiedDiff("pkg/a.py", before, after)
	require.NoError(t, err)
	assert.Contains(t, diff, "--- a/pkg/a.py")
	assert.Contains(t, diff, "+++ b/pkg/a.py")
	assert.Contains(t, diff, "-# comment")

	same, err := UnifiedDiff("pkg/a.py", after, after)
	require.NoError(t, err)
	assert.Empty(t, same)
}
