package argmap

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/botirk38/argmap/types"
)

// completionKey identifies a request for the completion cache. Requests are
// always sent at temperature 0 so equal keys yield equal replies.
func completionKey(provider string, req types.CompletionRequest) string {
	h := sha256.New()
	for _, part := range []string{provider, strconv.Itoa(req.MaxTokens), req.System, req.Prompt} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// complete sends req through the completion cache. Cache failures are logged
// and never fail the request.
func (a *Analyzer) complete(ctx context.Context, op string, req types.CompletionRequest) (string, error) {
	if err := a.checkPromptBudget(ctx, req); err != nil {
		return "", err
	}

	var key string
	if a.cache != nil {
		key = completionKey(a.provider.Name(), req)
		cached, found, err := a.cache.Get(ctx, key)
		if err != nil {
			a.logger.Warn("completion cache read failed", "op", op, "error", err)
		} else if found {
			a.logger.Debug("completion cache hit", "op", op)
			return cached, nil
		}
	}

	a.logger.Debug("requesting completion", "op", op, "provider", a.provider.Name(), "max_tokens", req.MaxTokens)
	reply, err := a.provider.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, reply); err != nil {
			a.logger.Warn("completion cache write failed", "op", op, "error", err)
		}
	}
	return reply, nil
}

func (a *Analyzer) checkPromptBudget(ctx context.Context, req types.CompletionRequest) error {
	if a.maxPromptTokens <= 0 {
		return nil
	}
	n, err := a.provider.CountTokens(ctx, req.System+"\n"+req.Prompt)
	if err != nil {
		return fmt.Errorf("count prompt tokens: %w", err)
	}
	if n > a.maxPromptTokens {
		return fmt.Errorf("%w: %d tokens, limit %d", ErrPromptTooLong, n, a.maxPromptTokens)
	}
	return nil
}
