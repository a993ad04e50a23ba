package store

import (
	"context"
	"time"
)

// Setting keys read at startup to pick the first screen.
const (
	KeyAppLanguage            = "appLanguage"
	KeyHasCompletedOnboarding = "hasCompletedOnboarding"
)

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Purpose restricts LLM events to one request purpose. Ignored by
	// reading queries.
	Purpose string
}

// SettingsRepo is the persistent key-value store for user preferences.
type SettingsRepo interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// LLMUsageStats is token usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage is token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// ReadingRecord is a saved palm reading.
type ReadingRecord struct {
	ID         string
	Sequence   int64
	CreatedAt  time.Time
	Hand       string
	Language   string
	MediaType  string
	ImageBytes int
	HeartLine  string
	HeadLine   string
	LifeLine   string
	FateLine   string
	Summary    string
}

// ReadingRepo stores palm readings for the history screen.
type ReadingRepo interface {
	// Save stores rec. ID is assigned when empty; Sequence and CreatedAt
	// are always assigned by the store.
	Save(ctx context.Context, rec *ReadingRecord) error

	// List returns readings newest first.
	List(ctx context.Context, opts QueryOpts) ([]ReadingRecord, error)

	// DeleteAll removes every reading and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}
