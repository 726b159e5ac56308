package llm

import "context"

type purposeKey struct{}

// PurposeCoach labels walkthrough requests.
const PurposeCoach = "coach"

// WithPurpose tags ctx so the logging decorator can record why a request was
// made.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
