package dice

import "go.uber.org/zap"

// loggedSource decorates a Source, logging every draw at debug level.
type loggedSource struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedSource wraps src so that all draws are logged to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) Source {
	return &loggedSource{src: src, logger: logger}
}

func (l *loggedSource) Intn(n int) int {
	v := l.src.Intn(n)
	l.logger.Debug("random draw", zap.Int("n", n), zap.Int("value", v))
	return v
}

func (l *loggedSource) Float64() float64 {
	v := l.src.Float64()
	l.logger.Debug("random draw", zap.Float64("value", v))
	return v
}
