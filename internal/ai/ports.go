package ai

import "context"

// Classifier is the external knowledge oracle. Pure text in, text out,
// no state; callers never trust the reply beyond the parse contract.
type Classifier interface {
	Classify(ctx context.Context, prompt string, maxTokens int) (string, error)
}
