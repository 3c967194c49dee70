package utils

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// CustomGormLogger is a GORM logger that drops trace lines for queries
// matching any of the configured patterns. The reminder dispatcher polls the
// queue on a short interval and its query is pure noise at Info level.
type CustomGormLogger struct {
	logger.Interface
	ignoredQueryPatterns []string
}

// NewCustomGormLogger creates a new custom logger with the given ignored query patterns
func NewCustomGormLogger(l logger.Interface, ignoredPatterns ...string) *CustomGormLogger {
	return &CustomGormLogger{
		Interface:            l,
		ignoredQueryPatterns: ignoredPatterns,
	}
}

// LogMode implements logger.Interface
func (l *CustomGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &CustomGormLogger{
		Interface:            l.Interface.LogMode(level),
		ignoredQueryPatterns: l.ignoredQueryPatterns,
	}
}

// Trace implements logger.Interface
func (l *CustomGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if err == nil {
		sql, _ := fc()
		for _, pattern := range l.ignoredQueryPatterns {
			if strings.Contains(sql, pattern) {
				return
			}
		}
	}
	l.Interface.Trace(ctx, begin, fc, err)
}
