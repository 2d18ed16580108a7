package argmap

import "testing"

func TestCleanMermaidCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "graph TD\nA[Claim]", "graph TD\nA[Claim]"},
		{"mermaid fence", "```mermaid\ngraph TD\nA[Claim]\n```", "graph TD\nA[Claim]"},
		{"bare fence", "```\ngraph TD\nA[Claim]\n```", "graph TD\nA[Claim]"},
		{"surrounding whitespace", "  \n```mermaid\ngraph TD\n```  \n", "graph TD"},
		{"opening fence only", "```mermaid\ngraph TD", "graph TD"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanMermaidCode(tt.in); got != tt.want {
				t.Errorf("CleanMermaidCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
