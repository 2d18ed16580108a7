package history

import (
	"time"

	"github.com/botirk38/argmap"
)

// Run is one stored pipeline result.
type Run struct {
	ID            string        `json:"id"`
	CreatedAt     time.Time     `json:"createdAt"`
	Provider      string        `json:"provider"`
	Transcript    string        `json:"transcript"`
	MainClaim     string        `json:"mainClaim"`
	Diagram       string        `json:"diagram"`
	LocalScore    float64       `json:"localScore"`
	LLMScore      *float64      `json:"llmScore,omitempty"`
	LowSimilarity bool          `json:"lowSimilarity"`
	Duration      time.Duration `json:"duration"`
}

// FromResult copies the persisted fields of a pipeline result into a new Run.
// ID and CreatedAt are assigned by Save.
func FromResult(res *argmap.Result) *Run {
	return &Run{
		Provider:      res.Provider,
		Transcript:    res.Transcript,
		MainClaim:     res.MainClaim,
		Diagram:       res.Diagram,
		LocalScore:    res.LocalScore,
		LLMScore:      res.LLMScore,
		LowSimilarity: res.LowSimilarity,
		Duration:      res.Duration,
	}
}
