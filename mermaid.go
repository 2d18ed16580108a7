package argmap

import "strings"

// CleanMermaidCode strips the markdown code fence models tend to wrap diagrams in.
func CleanMermaidCode(code string) string {
	code = strings.TrimSpace(code)
	if rest, ok := strings.CutPrefix(code, "```mermaid"); ok {
		code = rest
	} else if rest, ok := strings.CutPrefix(code, "```"); ok {
		code = rest
	}
	code = strings.TrimSuffix(code, "```")
	return strings.TrimSpace(code)
}
