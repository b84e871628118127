package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQueryThreshold is the duration after which a query is logged as slow.
const slowQueryThreshold = 200 * time.Millisecond

// dbLogger routes gorm log output to zerolog. Queries that only miss a
// record are not logged as errors since "not found" is an expected outcome
// for threshold and queue lookups.
type dbLogger struct {
	Logger zerolog.Logger
}

func (l *dbLogger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *dbLogger) Info(_ context.Context, format string, args ...interface{}) {
	l.Logger.Info().Msgf(format, args...)
}

func (l *dbLogger) Warn(_ context.Context, format string, args ...interface{}) {
	l.Logger.Warn().Msgf(format, args...)
}

func (l *dbLogger) Error(_ context.Context, format string, args ...interface{}) {
	l.Logger.Error().Msgf(format, args...)
}

func (l *dbLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	event := l.Logger.Debug()
	switch {
	case err != nil && !errors.Is(err, ErrResourceNotFound):
		event = l.Logger.Error().Err(err)
	case elapsed > slowQueryThreshold:
		event = l.Logger.Warn()
	}

	event.
		Str("sql", sql).
		Int64("rows", rows).
		Dur("duration", elapsed).
		Msg("database")
}
