package argmap

import (
	"math"
	"testing"

	"github.com/botirk38/argmap/similarity"
)

const tolerance = 1e-9

func TestCompareTexts(t *testing.T) {
	tests := []struct {
		name  string
		text1 string
		text2 string
		want  float64
	}{
		{
			name:  "identical",
			text1: "Schools should ban phones during lessons",
			text2: "Schools should ban phones during lessons",
			want:  1,
		},
		{
			name:  "disjoint vocabularies",
			text1: "Phones distract students in class",
			text2: "Uniforms reduce bullying at school",
			want:  0,
		},
		{
			name:  "markup stripped",
			text1: "Children need clear boundaries",
			text2: "graph TD\nA[Children need clear boundaries]",
			want:  1,
		},
		{
			name:  "speaker labels and styles stripped",
			text1: "Speaker A: Homework should be optional.\nSpeaker B: Homework builds discipline.",
			text2: "graph TD\nA[Homework should be optional] --> B[Homework builds discipline]\nstyle A fill:#f9f",
			want:  1,
		},
		{
			name:  "short words only",
			text1: "ok",
			text2: "anything",
			want:  0,
		},
		{
			name:  "both empty",
			text1: "",
			text2: "",
			want:  0,
		},
		{
			name:  "one empty",
			text1: "",
			text2: "argument mapping",
			want:  0,
		},
		{
			name:  "whitespace only",
			text1: "  \n\t ",
			text2: "argument mapping",
			want:  0,
		},
		{
			name:  "partial overlap",
			text1: "alpha beta gamma delta",
			text2: "alpha beta",
			want:  0.5110374785703174,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareTexts(tt.text1, tt.text2)
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("CompareTexts() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompareTextsCaseAndShortWords(t *testing.T) {
	got := CompareTexts("THE CAT sat", "cat")
	if got <= 0 || got >= 1 {
		t.Errorf("CompareTexts(\"THE CAT sat\", \"cat\") = %v, want in (0, 1)", got)
	}
}

func TestCompareTextsKeepsStyleInProse(t *testing.T) {
	got := CompareTexts("lifestyle choices matter", "choices matter")
	if got <= 0 || got >= 1 {
		t.Errorf("CompareTexts() = %v, want in (0, 1)", got)
	}
}

func TestCompareTextsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Homework improves grades", "Homework causes stress and lowers grades"},
		{"graph TD\nA[Ban phones] --> B[Less distraction]", "Speaker A: we should ban phones, there is less distraction"},
		{"", "nothing here"},
	}
	for _, p := range pairs {
		ab := CompareTexts(p[0], p[1])
		ba := CompareTexts(p[1], p[0])
		if math.Abs(ab-ba) > tolerance {
			t.Errorf("CompareTexts not symmetric for %q / %q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestCompareTextsRange(t *testing.T) {
	texts := []string{
		"",
		"a b c",
		"Speaker A: Should homework be banned?",
		"graph TD\nA[Claim] --> B[Support]\nstyle A fill:#fff",
		"ünïcödé wörds and ascii words",
		"repeat repeat repeat repeat",
	}
	for _, a := range texts {
		for _, b := range texts {
			got := CompareTexts(a, b)
			if math.IsNaN(got) || got < 0 || got > 1 || math.Signbit(got) {
				t.Errorf("CompareTexts(%q, %q) = %v, out of range", a, b, got)
			}
		}
	}
}

func TestCompareTextsMonotonicOverlap(t *testing.T) {
	base := "alpha beta gamma delta"
	low := CompareTexts(base, "alpha omega")
	mid := CompareTexts(base, "alpha beta")
	high := CompareTexts(base, "alpha beta gamma")

	if !(low < mid && mid < high) {
		t.Errorf("expected increasing scores, got %v, %v, %v", low, mid, high)
	}
	if math.Abs(low-0.1659139006921719) > tolerance {
		t.Errorf("low overlap = %v", low)
	}
}

func TestCompareTextsWith(t *testing.T) {
	a, b := "alpha beta gamma delta", "alpha beta"

	if got, want := CompareTextsWith(nil, a, b), CompareTexts(a, b); math.Abs(got-want) > tolerance {
		t.Errorf("nil comparator = %v, want cosine %v", got, want)
	}

	got := CompareTextsWith(similarity.EuclideanSimilarity, a, b)
	if got <= 0 || got > 1 {
		t.Errorf("euclidean = %v, want in (0, 1]", got)
	}

	overshoot := func(x, y map[string]float64) float64 { return 7 }
	if got := CompareTextsWith(overshoot, a, b); got != 1 {
		t.Errorf("comparator output should be clamped, got %v", got)
	}
}

func TestExplain(t *testing.T) {
	c := Explain("Homework builds discipline and routine", "graph TD\nA[Homework builds discipline]", 2)

	if math.Abs(c.Score-CompareTexts("Homework builds discipline and routine", "graph TD\nA[Homework builds discipline]")) > tolerance {
		t.Errorf("Explain score %v differs from CompareTexts", c.Score)
	}
	if c.Tokens1 != 5 || c.Tokens2 != 3 {
		t.Errorf("token counts = %d/%d, want 5/3", c.Tokens1, c.Tokens2)
	}
	if len(c.SharedTerms) != 2 {
		t.Fatalf("expected 2 shared terms, got %v", c.SharedTerms)
	}
	for _, term := range c.SharedTerms {
		switch term.Term {
		case "homework", "builds", "discipline":
		default:
			t.Errorf("unexpected shared term %q", term.Term)
		}
	}
	if len(c.TopTerms1) != 2 || len(c.TopTerms2) != 2 {
		t.Errorf("expected 2 top terms per side, got %d/%d", len(c.TopTerms1), len(c.TopTerms2))
	}
	if c.TopTerms1[0].Term != "and" && c.TopTerms1[0].Term != "routine" {
		t.Errorf("distinctive terms should rank first, got %v", c.TopTerms1)
	}
}
