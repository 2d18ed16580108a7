package argmap

import (
	"context"
	"strings"
	"testing"

	"github.com/botirk38/argmap/backends"
	"github.com/botirk38/argmap/options"
	"github.com/botirk38/argmap/types"
)

func longTranscript(turns int) string {
	var b strings.Builder
	for i := 0; i < turns; i++ {
		if i%2 == 0 {
			b.WriteString("Speaker A: School uniforms reduce bullying and help students focus on learning.\n")
		} else {
			b.WriteString("Speaker B: Uniforms limit self expression and add costs for families every year.\n")
		}
	}
	return b.String()
}

func BenchmarkCompareTexts(b *testing.B) {
	sizes := []struct {
		name  string
		turns int
	}{
		{"Short", 4},
		{"Medium", 64},
		{"Long", 512},
	}

	diagram := "School uniforms reduce bullying   Uniforms limit self expression"
	for _, size := range sizes {
		transcript := longTranscript(size.turns)
		b.Run(size.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = CompareTexts(transcript, diagram)
			}
		})
	}
}

func BenchmarkCompletionCache(b *testing.B) {
	backendTypes := []types.BackendType{types.BackendLRU, types.BackendFIFO, types.BackendLFU}

	for _, bt := range backendTypes {
		b.Run(string(bt), func(b *testing.B) {
			factory := &backends.BackendFactory[string, string]{}
			cache, err := factory.NewBackend(bt, types.BackendConfig{Capacity: 128})
			if err != nil {
				b.Fatalf("Failed to create backend: %v", err)
			}

			provider := newMockProvider()
			analyzer, err := New(
				options.WithCustomProvider(provider),
				options.WithCustomCache(cache),
			)
			if err != nil {
				b.Fatalf("Failed to create analyzer: %v", err)
			}
			defer analyzer.Close()

			ctx := context.Background()
			transcript := longTranscript(8)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := analyzer.GetMainClaim(ctx, transcript); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
