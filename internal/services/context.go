package services

import "context"

// scope is the per-crop correlation data carried through a context. It is
// copied on every update so parent contexts never observe a child's stage.
type scope struct {
	requestID string
	stage     string
}

type scopeKey struct{}

func scopeFrom(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// WithStage records the current phase of a crop (for example "crop" or
// "encode"). An empty stage leaves ctx unchanged.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	s := scopeFrom(ctx)
	s.stage = stage
	return context.WithValue(ctx, scopeKey{}, s)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	s := scopeFrom(ctx)
	return s.stage, s.stage != ""
}

// WithRequestID tags ctx with the identifier shared by every log line of one
// crop. An empty id leaves ctx unchanged.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	s := scopeFrom(ctx)
	s.requestID = id
	return context.WithValue(ctx, scopeKey{}, s)
}

// RequestIDFromContext returns the request identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	s := scopeFrom(ctx)
	return s.requestID, s.requestID != ""
}
