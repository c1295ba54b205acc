package poiscout

import "context"

// TokenCounter counts tokens in text for a specific model.
// Page readers use it to keep prompts within the model's context budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
