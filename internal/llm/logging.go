package llm

import (
	"context"
	"time"

	"github.com/abhisek/lessonloop/internal/logger"
	"github.com/abhisek/lessonloop/internal/store"
)

// LoggingProvider records every request in the request log and on the
// application logger. Failing to record never fails the request.
type LoggingProvider struct {
	inner  Provider
	events store.EventRepo
	log    *logger.Logger
	now    func() time.Time
}

// WithLogging wraps p. A nil events repo skips persistence.
func WithLogging(p Provider, events store.EventRepo, log *logger.Logger) *LoggingProvider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, events: events, log: log, now: time.Now}
}

func (l *LoggingProvider) Name() string    { return l.inner.Name() }
func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.inner.Name(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: l.now().Sub(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("llm request failed",
			"provider", data.Provider, "model", data.Model, "purpose", data.Purpose, "error", err)
	} else {
		l.log.Debug("llm request",
			"provider", data.Provider, "model", data.Model, "purpose", data.Purpose,
			"input_tokens", data.InputTokens, "output_tokens", data.OutputTokens, "latency_ms", data.LatencyMs)
	}

	if l.events != nil {
		if logErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.log.Warn("record llm request", "error", logErr)
		}
	}
	return resp, err
}
