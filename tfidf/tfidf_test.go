package tfidf

import (
	"math"
	"testing"
)

const epsilon = 1e-12

func TestTermFrequency(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		tf := TermFrequency(nil)
		if tf == nil || len(tf) != 0 {
			t.Errorf("expected empty non-nil vector, got %v", tf)
		}
	})

	t.Run("counts normalised by total", func(t *testing.T) {
		tf := TermFrequency([]string{"cat", "dog", "cat", "bird"})
		want := map[string]float64{"cat": 0.5, "dog": 0.25, "bird": 0.25}
		if len(tf) != len(want) {
			t.Fatalf("expected %d terms, got %d", len(want), len(tf))
		}
		for term, w := range want {
			if math.Abs(tf[term]-w) > epsilon {
				t.Errorf("tf[%q] = %f, want %f", term, tf[term], w)
			}
		}
	})

	t.Run("sums to one", func(t *testing.T) {
		tf := TermFrequency([]string{"alpha", "beta", "gamma", "alpha", "delta", "beta", "alpha"})
		var sum float64
		for _, w := range tf {
			sum += w
		}
		if math.Abs(sum-1) > epsilon {
			t.Errorf("sum of tf = %f, want 1", sum)
		}
	})
}

func TestInverseDocumentFrequency(t *testing.T) {
	docs := [][]string{
		{"shared", "only", "only"},
		{"shared", "other"},
	}
	idf := InverseDocumentFrequency(docs)

	inBoth := math.Log(2.0/3.0) + 1
	inOne := math.Log(2.0/2.0) + 1

	tests := []struct {
		term string
		want float64
	}{
		{"shared", inBoth},
		{"only", inOne},
		{"other", inOne},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, ok := idf[tt.term]
			if !ok {
				t.Fatalf("missing idf for %q", tt.term)
			}
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("idf[%q] = %f, want %f", tt.term, got, tt.want)
			}
			if got <= 0 || math.IsInf(got, 0) || math.IsNaN(got) {
				t.Errorf("idf[%q] = %f, want finite and positive", tt.term, got)
			}
		})
	}

	if len(idf) != 3 {
		t.Errorf("expected 3 idf entries, got %d", len(idf))
	}
}

func TestInverseDocumentFrequencyEmptyCorpus(t *testing.T) {
	if idf := InverseDocumentFrequency(nil); len(idf) != 0 {
		t.Errorf("expected empty idf, got %v", idf)
	}
	if idf := InverseDocumentFrequency([][]string{nil, nil}); len(idf) != 0 {
		t.Errorf("expected empty idf for empty documents, got %v", idf)
	}
}

func TestWeight(t *testing.T) {
	tf := Vector{"kept": 0.5, "dropped": 0.5}
	idf := Vector{"kept": 2, "unused": 3}

	got := Weight(tf, idf)
	if len(got) != 1 {
		t.Fatalf("expected 1 weighted term, got %v", got)
	}
	if got["kept"] != 1 {
		t.Errorf("weight[kept] = %f, want 1", got["kept"])
	}
	if _, ok := got["dropped"]; ok {
		t.Error("term without idf should be omitted")
	}
}

func TestVectorize(t *testing.T) {
	vectors := Vectorize([]string{"school", "rules"}, []string{"school", "uniforms"})
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0]["school"] != vectors[1]["school"] {
		t.Errorf("shared term should weigh the same in equal-length documents: %f vs %f",
			vectors[0]["school"], vectors[1]["school"])
	}
	if vectors[0]["rules"] <= vectors[0]["school"] {
		t.Error("distinctive term should outweigh a term found in every document")
	}
}

func TestTopTerms(t *testing.T) {
	vec := Vector{
		"hello": 0.1,
		"world": 0.9,
		"test":  0.5,
		"foo":   0.3,
	}

	terms := TopTerms(vec, 2)
	if len(terms) != 2 {
		t.Fatalf("TopTerms() returned %d terms, want 2", len(terms))
	}
	if terms[0].Term != "world" || terms[1].Term != "test" {
		t.Errorf("unexpected order: %v", terms)
	}

	if all := TopTerms(vec, 0); len(all) != 4 {
		t.Errorf("TopTerms(k=0) returned %d terms, want 4", len(all))
	}
	if empty := TopTerms(nil, 3); empty != nil {
		t.Errorf("TopTerms(nil) = %v, want nil", empty)
	}
}

func TestTopTermsStableTies(t *testing.T) {
	vec := Vector{"beta": 1, "alpha": 1, "gamma": 1}
	terms := TopTerms(vec, 0)
	if terms[0].Term != "alpha" || terms[1].Term != "beta" || terms[2].Term != "gamma" {
		t.Errorf("ties should sort alphabetically, got %v", terms)
	}
}

func TestSharedTerms(t *testing.T) {
	a := Vector{"school": 0.5, "rules": 0.2, "lunch": 0.3}
	b := Vector{"school": 0.4, "rules": 0.5, "bus": 0.6}

	shared := SharedTerms(a, b)
	if len(shared) != 2 {
		t.Fatalf("expected 2 shared terms, got %v", shared)
	}
	if shared[0].Term != "school" || math.Abs(shared[0].Score-0.2) > epsilon {
		t.Errorf("first shared term = %v, want school/0.2", shared[0])
	}
	if shared[1].Term != "rules" {
		t.Errorf("second shared term = %v, want rules", shared[1])
	}

	if none := SharedTerms(Vector{"x": 1}, Vector{"y": 1}); len(none) != 0 {
		t.Errorf("disjoint vectors share nothing, got %v", none)
	}
}
