package dice

import "go.uber.org/zap"

// LoggedSource wraps a Source and logs every seed draw at debug level.
// Lottery decisions are replayed from these seeds, so the debug log is an
// audit trail sufficient to reproduce any single architectural choice.
type LoggedSource struct {
	src    Source
	logger *zap.Logger
	draws  int
}

// NewLoggedSource creates a LoggedSource that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

// Intn delegates to the wrapped Source.
func (l *LoggedSource) Intn(n int) int { return l.src.Intn(n) }

// Float64 delegates to the wrapped Source.
func (l *LoggedSource) Float64() float64 { return l.src.Float64() }

// Uint32 draws from the wrapped Source and logs the value.
//
// Postcondition: the draw is logged with its ordinal.
func (l *LoggedSource) Uint32() uint32 {
	v := l.src.Uint32()
	l.draws++
	l.logger.Debug("seed draw",
		zap.Int("ordinal", l.draws),
		zap.Uint32("seed", v),
	)
	return v
}

// Draws returns the number of seeds drawn so far.
func (l *LoggedSource) Draws() int { return l.draws }
