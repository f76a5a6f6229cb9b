package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/cannibal"
)

// Ensure LoggingTextExtractor implements cannibal.TextExtractor.
var _ cannibal.TextExtractor = (*LoggingTextExtractor)(nil)

// LoggingTextExtractor wraps a TextExtractor with debug logging.
type LoggingTextExtractor struct {
	next   cannibal.TextExtractor
	logger *slog.Logger
}

// NewLoggingTextExtractor creates a new LoggingTextExtractor.
func NewLoggingTextExtractor(next cannibal.TextExtractor, logger *slog.Logger) *LoggingTextExtractor {
	return &LoggingTextExtractor{next: next, logger: logger}
}

// ExtractText delegates to the wrapped extractor and logs input and
// output sizes.
func (e *LoggingTextExtractor) ExtractText(html string) (text string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract text",
			"html_bytes", len(html),
			"text_bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractText(html)
}
