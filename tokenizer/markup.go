package tokenizer

import "strings"

// ExtractDiagramText approximates the prose content of a Mermaid diagram by
// removing its syntax and unwrapping node labels. Case is preserved; it is not a
// parser and unknown constructs pass through unchanged.
func ExtractDiagramText(diagram string) string {
	return strings.TrimSpace(stripMarkup(diagram))
}
