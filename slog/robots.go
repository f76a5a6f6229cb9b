package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/cannibal"
)

// Ensure LoggingRobotsChecker implements cannibal.RobotsChecker.
var _ cannibal.RobotsChecker = (*LoggingRobotsChecker)(nil)

// LoggingRobotsChecker logs URLs that robots.txt disallows.
type LoggingRobotsChecker struct {
	next   cannibal.RobotsChecker
	logger *slog.Logger
}

// NewLoggingRobotsChecker creates a new LoggingRobotsChecker.
func NewLoggingRobotsChecker(next cannibal.RobotsChecker, logger *slog.Logger) *LoggingRobotsChecker {
	return &LoggingRobotsChecker{next: next, logger: logger}
}

// Allowed delegates to the wrapped checker.
func (c *LoggingRobotsChecker) Allowed(ctx context.Context, url string) bool {
	ok := c.next.Allowed(ctx, url)
	if !ok {
		c.logger.Info("robots disallowed", "url", url)
	}
	return ok
}
