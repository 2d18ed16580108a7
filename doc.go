// Package argmap turns debate transcripts into Mermaid argument maps and scores
// how faithfully a map reflects its transcript.
//
// The scoring core is CompareTexts, a TF-IDF and cosine comparison computed
// fresh for every pair of texts. The Analyzer wraps a completion provider to
// run the diagram pipeline: extract the main claim, draft a diagram, restyle
// it, make it more descriptive, then check it against the transcript.
package argmap
