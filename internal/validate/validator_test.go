package validate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iktahana/illusions-sub003/internal/lint"
	"github.com/Iktahana/illusions-sub003/internal/model"
)

// scriptedClient returns canned responses per prompt, in call order.
type scriptedClient struct {
	mu          sync.Mutex
	responses   []string
	err         error
	calls       int
	inflight    int
	maxInflight int
	available   bool
	loaded      bool
	delay       time.Duration
}

func newScriptedClient(responses ...string) *scriptedClient {
	return &scriptedClient{responses: responses, available: true, loaded: true}
}

func (s *scriptedClient) LoadModel(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	return nil
}

func (s *scriptedClient) UnloadModel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	return nil
}

func (s *scriptedClient) IsModelLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *scriptedClient) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

func (s *scriptedClient) Infer(ctx context.Context, prompt string, opts model.InferOptions) (*model.InferResult, error) {
	s.mu.Lock()
	s.inflight++
	if s.inflight > s.maxInflight {
		s.maxInflight = s.inflight
	}
	idx := s.calls
	s.calls++
	err := s.err
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	resp := "はい"
	if idx < len(s.responses) {
		resp = s.responses[idx]
	}
	return &model.InferResult{Text: resp}, nil
}

func candidate(ruleID string, from int, skip bool) Candidate {
	return Candidate{
		Issue:          lint.Issue{RuleID: ruleID, From: from, To: from + 1},
		SkipValidation: skip,
	}
}

func newTestValidator(t *testing.T, client model.Client) *Validator {
	t.Helper()
	v, err := New(&Config{Client: client, PromptHint: "テスト用"})
	require.NoError(t, err)
	return v
}

func TestValidateKeepsPositives(t *testing.T) {
	client := newScriptedClient("はい", "はい")
	v := newTestValidator(t, client)

	out := v.Validate(context.Background(), []Candidate{
		candidate("a", 0, false),
		candidate("b", 5, false),
	})
	assert.Len(t, out, 2)
}

func TestValidateDiscardsExplicitNegative(t *testing.T) {
	client := newScriptedClient("いいえ", "はい")
	v := newTestValidator(t, client)

	out := v.Validate(context.Background(), []Candidate{
		candidate("a", 0, false),
		candidate("b", 5, false),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].Issue.RuleID)
}

func TestValidateSkipCandidatesPassThroughFirst(t *testing.T) {
	client := newScriptedClient("はい")
	v := newTestValidator(t, client)

	out := v.Validate(context.Background(), []Candidate{
		candidate("validated", 0, false),
		candidate("skipped", 5, true),
	})
	require.Len(t, out, 2)
	assert.Equal(t, "skipped", out[0].Issue.RuleID, "skip candidates precede processed ones")
	assert.Equal(t, "validated", out[1].Issue.RuleID)
}

func TestValidateSkipCandidateSurvivesUnavailableModel(t *testing.T) {
	client := newScriptedClient()
	client.available = false
	client.loaded = false
	v := newTestValidator(t, client)

	out := v.Validate(context.Background(), []Candidate{
		candidate("skipped", 0, true),
		candidate("other", 3, false),
	})
	// Skip candidate always returned; the other fails open.
	require.Len(t, out, 2)
	assert.Zero(t, client.calls, "no inference against an unavailable model")
}

func TestValidateFailsOpenOnInferenceError(t *testing.T) {
	client := newScriptedClient()
	client.err = errors.New("timeout")
	v := newTestValidator(t, client)

	out := v.Validate(context.Background(), []Candidate{candidate("a", 0, false)})
	assert.Len(t, out, 1, "errors keep the candidate")
}

func TestValidateAmbiguousResponseKeeps(t *testing.T) {
	client := newScriptedClient("たぶん違うと思います", "いいえ、ただし文脈次第です", "")
	v := newTestValidator(t, client)

	out := v.Validate(context.Background(), []Candidate{
		candidate("a", 0, false),
		candidate("b", 1, false),
		candidate("c", 2, false),
	})
	assert.Len(t, out, 3, "only unambiguous negatives discard")
}

func TestValidateCancellationReturnsAcceptedSoFar(t *testing.T) {
	client := newScriptedClient("はい", "はい", "はい")
	client.delay = 20 * time.Millisecond
	v := newTestValidator(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	out := v.Validate(ctx, []Candidate{
		candidate("skip", 0, true),
		candidate("a", 1, false),
		candidate("b", 2, false),
		candidate("c", 3, false),
	})
	// The skip candidate and at least the first processed one survive;
	// the batch stopped early rather than erroring.
	assert.GreaterOrEqual(t, len(out), 1)
	assert.Less(t, len(out), 4)
	assert.Equal(t, "skip", out[0].Issue.RuleID)
}

func TestValidateSequentialInference(t *testing.T) {
	client := newScriptedClient("はい", "はい", "はい", "はい")
	client.delay = 5 * time.Millisecond
	v := newTestValidator(t, client)

	_ = v.Validate(context.Background(), []Candidate{
		candidate("a", 0, false),
		candidate("b", 1, false),
		candidate("c", 2, false),
		candidate("d", 3, false),
	})
	assert.Equal(t, 1, client.maxInflight, "inference calls must never overlap")
}

func TestIsExplicitNegative(t *testing.T) {
	negatives := []string{"いいえ", "いいえ。", " NO ", "no.", "No"}
	for _, s := range negatives {
		assert.True(t, isExplicitNegative(s), "%q should be negative", s)
	}
	positives := []string{"はい", "Yes", "", "いいえでもなくはいでもない", "maybe no"}
	for _, s := range positives {
		assert.False(t, isExplicitNegative(s), "%q should keep the candidate", s)
	}
}

func TestBuildCandidatesContextWindow(t *testing.T) {
	text := "これは検証対象の文章で、指摘の前後の文脈が切り出される。"
	issues := []lint.Issue{{RuleID: "a", From: 3, To: 5}}
	configs := map[string]lint.RuleConfig{
		"a": {Enabled: true, SkipLLMValidation: false},
	}
	cands := BuildCandidates(issues, text, configs)
	require.Len(t, cands, 1)
	assert.Contains(t, cands[0].Context, "検証対象")
	assert.False(t, cands[0].SkipValidation)
}

func TestBuildCandidatesSkipFlag(t *testing.T) {
	issues := []lint.Issue{
		{RuleID: "skip-me", From: 0, To: 1},
		{RuleID: "unknown-rule", From: 1, To: 2},
	}
	configs := map[string]lint.RuleConfig{
		"skip-me": {SkipLLMValidation: true},
	}
	cands := BuildCandidates(issues, "短い文", configs)
	require.Len(t, cands, 2)
	assert.True(t, cands[0].SkipValidation)
	assert.False(t, cands[1].SkipValidation, "unknown rules default to validation")
}

func TestServiceRunLoadsModelAndValidates(t *testing.T) {
	client := newScriptedClient("いいえ")
	client.loaded = false
	controller, err := model.NewController(&model.ControllerConfig{
		Client:   client,
		ModelID:  "test",
		Cooldown: time.Hour,
	})
	require.NoError(t, err)
	v := newTestValidator(t, client)
	svc, err := NewService(controller, v)
	require.NoError(t, err)

	out, err := svc.Run(context.Background(), []Candidate{candidate("a", 0, false)})
	require.NoError(t, err)
	assert.Empty(t, out, "model rejected the only candidate")
	assert.Equal(t, model.StateCooling, controller.State())
}
