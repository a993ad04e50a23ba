package llm

import "context"

type contextKey string

const (
	purposeKey     contextKey = "llm_purpose"
	correlationKey contextKey = "llm_correlation"
)

// Purposes label requests in events and logs.
const (
	PurposePalmAnalysis = "palm-analysis"
	PurposeChat         = "chat"
	purposeUnknown      = "unknown"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return purposeUnknown
}

// WithCorrelation tags requests made under ctx with id, such as the scan
// that triggered a palm analysis, so their log lines can be grouped.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey, id)
}

// CorrelationFrom returns the id set by WithCorrelation, or "".
func CorrelationFrom(ctx context.Context) string {
	v, _ := ctx.Value(correlationKey).(string)
	return v
}
