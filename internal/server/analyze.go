package server

import (
	"context"
	"net/http"

	"github.com/botirk38/argmap"
)

// analyzeRequest is the body of POST /api/analyze. Which fields are read
// depends on Action.
type analyzeRequest struct {
	Action      string `json:"action"`
	Transcript  string `json:"transcript"`
	MainClaim   string `json:"mainClaim"`
	Diagram     string `json:"diagram"`
	Instruction string `json:"instruction"`
}

type analyzeAction func(ctx context.Context, a *argmap.Analyzer, req analyzeRequest) (any, error)

var analyzeActions = map[string]analyzeAction{
	"getMainClaim": func(ctx context.Context, a *argmap.Analyzer, req analyzeRequest) (any, error) {
		return a.GetMainClaim(ctx, req.Transcript)
	},
	"generateDiagram": func(ctx context.Context, a *argmap.Analyzer, req analyzeRequest) (any, error) {
		return a.GenerateDiagram(ctx, req.Transcript, req.MainClaim)
	},
	"improveDiagram": func(ctx context.Context, a *argmap.Analyzer, req analyzeRequest) (any, error) {
		return a.ImproveDiagram(ctx, req.Diagram)
	},
	"makeMoreDescriptive": func(ctx context.Context, a *argmap.Analyzer, req analyzeRequest) (any, error) {
		return a.MakeMoreDescriptive(ctx, req.Diagram, req.Transcript)
	},
	"editGraph": func(ctx context.Context, a *argmap.Analyzer, req analyzeRequest) (any, error) {
		return a.EditDiagram(ctx, req.Diagram, req.Instruction)
	},
	"checkSimilarity": func(ctx context.Context, a *argmap.Analyzer, req analyzeRequest) (any, error) {
		return a.CheckSimilarityLLM(ctx, req.Transcript, req.Diagram)
	},
	"checkSemanticSimilarity": func(ctx context.Context, a *argmap.Analyzer, req analyzeRequest) (any, error) {
		check := a.CheckDiagram(ctx, req.Transcript, req.Diagram)
		return check.Score, check.Err
	},
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	action, ok := analyzeActions[req.Action]
	if !ok {
		s.writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}

	result, err := action(r.Context(), s.analyzer, req)
	if err != nil {
		s.fail(w, req.Action, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"result": result})
}
