package llm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoggingProvider is a decorator that logs every completion call with a
// request-scoped correlation id, latency and token usage.
type LoggingProvider struct {
	inner Provider
	log   *zap.Logger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	reqID := uuid.NewString()
	start := time.Now()

	l.log.Debug("llm request",
		zap.String("request_id", reqID),
		zap.String("model", l.inner.ModelID()),
		zap.Int("prompt_len", len(req.Prompt)),
	)

	resp, err := l.inner.Complete(ctx, req)
	latency := time.Since(start)

	if err != nil {
		l.log.Warn("llm request failed",
			zap.String("request_id", reqID),
			zap.String("model", l.inner.ModelID()),
			zap.Duration("latency", latency),
			zap.Error(err),
		)
		return nil, err
	}

	l.log.Info("llm request done",
		zap.String("request_id", reqID),
		zap.String("model", resp.Model),
		zap.Duration("latency", latency),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
		zap.String("stop_reason", resp.StopReason),
	)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
