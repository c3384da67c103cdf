package validate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Iktahana/illusions-sub003/internal/model"
)

// DefaultMaxTokens bounds the validation response. The prompt demands a
// one-word answer, so a handful of tokens is plenty.
const DefaultMaxTokens = 8

// Config configures a Validator.
type Config struct {
	Client model.Client
	// PromptHint is the active correction mode's style description,
	// embedded into every validation prompt.
	PromptHint string
	// MaxTokens caps each inference response (default 8).
	MaxTokens int
	Logger    *slog.Logger
}

// Validator filters candidates through the model. Inference calls
// within one batch run strictly sequentially: the model handle is an
// exclusive singleton resource and must never see concurrent calls.
type Validator struct {
	client     model.Client
	promptHint string
	maxTokens  int
	logger     *slog.Logger
}

// New creates a validator.
func New(cfg *Config) (*Validator, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, fmt.Errorf("model client is required")
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		client:     cfg.Client,
		promptHint: cfg.PromptHint,
		maxTokens:  maxTokens,
		logger:     logger,
	}, nil
}

// Validate filters candidates and returns the survivors. Candidates
// with SkipValidation pass through unconditionally and precede the
// processed ones in the output; no other ordering is guaranteed.
//
// Cancellation is cooperative: the context is polled between sequential
// steps, and an aborted batch returns whatever was already accepted.
// Every ambiguous outcome keeps the candidate: surfacing a possible
// issue is cheaper than hiding a real one.
func (v *Validator) Validate(ctx context.Context, candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	var pending []Candidate
	for _, c := range candidates {
		if c.SkipValidation {
			out = append(out, c)
		} else {
			pending = append(pending, c)
		}
	}

	for _, c := range pending {
		if ctx.Err() != nil {
			v.logger.Debug("validation batch canceled", "accepted", len(out))
			return out
		}
		if !v.client.IsAvailable() || !v.client.IsModelLoaded() {
			// Fail open: no model, no filtering.
			out = append(out, c)
			continue
		}

		resp, err := v.client.Infer(ctx, v.buildPrompt(c), model.InferOptions{
			MaxTokens: v.maxTokens,
		})
		if err != nil {
			v.logger.Debug("validation inference failed, keeping candidate",
				"rule", c.Issue.RuleID, "error", err)
			out = append(out, c)
			continue
		}
		if isExplicitNegative(resp.Text) {
			v.logger.Debug("candidate rejected by model",
				"rule", c.Issue.RuleID, "from", c.Issue.From)
			continue
		}
		out = append(out, c)
	}
	return out
}

// buildPrompt renders the bounded-context validation prompt.
func (v *Validator) buildPrompt(c Candidate) string {
	var b strings.Builder
	b.WriteString("あなたは日本語の校正補助です。次の校正指摘がこの文脈で妥当なら「はい」、誤検出なら「いいえ」とだけ答えてください。\n")
	if v.promptHint != "" {
		b.WriteString(v.promptHint)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "指摘: %s\n", c.Issue.Message)
	fmt.Fprintf(&b, "位置: %d〜%d文字目\n", c.Issue.From, c.Issue.To)
	if c.Context != "" {
		fmt.Fprintf(&b, "前後の文脈: %s\n", c.Context)
	}
	b.WriteString("回答（はい／いいえ）: ")
	return b.String()
}

// isExplicitNegative reports whether the response is an unambiguous
// rejection. Anything else (hedges, explanations, empty output) keeps
// the candidate.
func isExplicitNegative(resp string) bool {
	s := strings.TrimSpace(resp)
	s = strings.TrimRight(s, "。．.!！ \t\n")
	switch strings.ToUpper(s) {
	case "いいえ", "NO":
		return true
	}
	return false
}
