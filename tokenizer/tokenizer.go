// Package tokenizer turns transcripts and diagram descriptions into word tokens
// suitable for TF-IDF comparison, and counts model tokens for prompt budgeting.
//
// Diagram text is Mermaid "graph TD" markup rather than prose, so its syntax is
// stripped before tokenization. The stripping is a best-effort heuristic tuned to
// that one flavour of graph description and its letter-plus-digits node ids.
package tokenizer

import (
	"regexp"
	"strings"
)

// MinTokenLength is the shortest token kept by Tokenize. Shorter words carry
// little meaning and are mostly articles, pronouns and node ids.
const MinTokenLength = 3

var (
	speakerLabelRe = regexp.MustCompile(`(?i)speaker [a-z]:`)
	graphHeaderRe  = regexp.MustCompile(`(?i)graph TD`)
	// style/linkStyle directives: "style A fill:#f9f", "linkStyle 0 stroke:#333".
	styleRe        = regexp.MustCompile(`(?im)^\s*(?:link)?style\s+[\w,]+\s+[a-z-]+:[^\n]*`)
	arrowRe        = regexp.MustCompile(`-+>`)
	nodeLabelRe    = regexp.MustCompile(`(?i)\b[a-z]\d*\[([^\]]+)\]`)
	bracketRe      = regexp.MustCompile(`[\[\]]`)
	punctuationRe  = regexp.MustCompile(`[^\w\s]`)
)

// Tokenize lowercases text, strips speaker labels and diagram markup, replaces
// punctuation with spaces and returns the remaining words that are at least
// MinTokenLength characters long, in source order and with duplicates kept.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	clean := strings.ToLower(text)
	clean = speakerLabelRe.ReplaceAllString(clean, "")
	clean = stripMarkup(clean)
	clean = punctuationRe.ReplaceAllString(clean, " ")

	var tokens []string
	for _, word := range strings.Fields(clean) {
		if len(word) >= MinTokenLength {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// stripMarkup removes the graph header, style directives and arrows, unwraps
// node labels and finally drops any brackets left over. Labels are unwrapped
// before brackets are removed so that "A[Some claim]" becomes "Some claim"
// rather than "ASome claim".
func stripMarkup(s string) string {
	s = graphHeaderRe.ReplaceAllString(s, "")
	s = styleRe.ReplaceAllString(s, "")
	s = arrowRe.ReplaceAllString(s, " ")
	s = nodeLabelRe.ReplaceAllString(s, "$1")
	return bracketRe.ReplaceAllString(s, "")
}
