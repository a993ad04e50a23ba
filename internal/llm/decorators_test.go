package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aipalm/aipalm/internal/store"
)

type recordingEventRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingEventRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEventRecord, error) {
	return nil, nil
}

func (r *recordingEventRepo) GetLLMEvent(context.Context, int) (*store.LLMEventRecord, error) {
	return nil, nil
}

func (r *recordingEventRepo) LLMUsageByPurpose(context.Context) ([]store.LLMUsageStats, error) {
	return nil, nil
}

func (r *recordingEventRepo) LLMUsageByModel(context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"summary":"s"}`),
		Usage:   Usage{InputTokens: 7, OutputTokens: 3},
	})
	p := WithLogging(mock, "openrouter", repo, nil)

	ctx := WithPurpose(context.Background(), "palm-analysis")
	_, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "look", Images: []Image{testPNG}}},
	})
	require.NoError(t, err)

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.Equal(t, "openrouter", ev.Provider)
	assert.Equal(t, "palm-analysis", ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 7, ev.InputTokens)
	assert.Contains(t, ev.RequestBody, "[image image/png, 4 bytes]")
	assert.NotContains(t, ev.RequestBody, testPNG.Base64())
	assert.Equal(t, `{"summary":"s"}`, ev.ResponseBody)
}

func TestLoggingProvider_RecordsFailureAndIgnoresRepoError(t *testing.T) {
	repo := &recordingEventRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, "mock", repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	require.True(t, errors.As(err, &unavail))

	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].Success)
	assert.True(t, strings.Contains(repo.events[0].ErrorMessage, "down"))
	assert.Equal(t, "unknown", repo.events[0].Purpose)
}

// blockingProvider waits for the context to end.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "blocking", p.ModelID())
}

func TestWithTimeout_ZeroIsPassThrough(t *testing.T) {
	mock := NewMockProvider()
	assert.Same(t, Provider(mock), WithTimeout(mock, 0))
}

func TestNewProviders_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	ps, err := NewProviders(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", ps.Text.ModelID())
	assert.Equal(t, "mock", ps.Vision.ModelID())
}

func TestNewProviders_OpenRouterUsesVisionModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OpenRouter.APIKey = "sk-or-test"
	ps, err := NewProviders(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "liquid/lfm-2.5-1.2b-thinking:free", ps.Text.ModelID())
	assert.Equal(t, "allenai/molmo-2-8b:free", ps.Vision.ModelID())
}

func TestNewProviders_MissingKey(t *testing.T) {
	_, err := NewProviders(context.Background(), DefaultConfig(), nil, nil)
	assert.Error(t, err)
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	require.NotNil(t, c)
	assert.InDelta(t, 0.75, c.Cost(1_000_000, 1_000_000), 1e-9)
	assert.Nil(t, LookupCost("no-such-model"))
}

func TestNewLimiter_DisabledWhenZero(t *testing.T) {
	assert.Nil(t, NewLimiter(0))
	mock := NewMockProvider()
	assert.Same(t, Provider(mock), WithRateLimit(mock, nil))
}

func TestRateLimit_SharedAcrossProviders(t *testing.T) {
	limiter := NewLimiter(1)
	text := WithRateLimit(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), limiter)
	vision := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	limitedVision := WithRateLimit(vision, limiter)

	_, err := text.Generate(context.Background(), Request{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = limitedVision.Generate(ctx, Request{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 0, vision.CallCount())
	assert.Equal(t, "mock", limitedVision.ModelID())
}

func TestRateLimit_NotRetried(t *testing.T) {
	limiter := NewLimiter(1)
	require.True(t, limiter.Allow())
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithRetry(WithRateLimit(mock, limiter), retryConfig(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, mock.CallCount())
}
