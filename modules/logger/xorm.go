package logger

import (
	"context"
	"fmt"
	"log/slog"

	xormlog "xorm.io/xorm/log"
)

var _ xormlog.Logger = &XORMLogBridge{}

// XORMLogBridge a logger bridge from slog to xorm
type XORMLogBridge struct {
	logger  *slog.Logger
	level   xormlog.LogLevel
	showSQL bool
}

// NewXORMLogger with level from slog handler
func NewXORMLogger(logger *slog.Logger, showSQL bool) *XORMLogBridge {
	bridge := &XORMLogBridge{logger: logger, showSQL: showSQL, level: xormlog.LOG_OFF}
	ctx := context.Background()
	switch {
	case logger.Enabled(ctx, slog.LevelDebug):
		bridge.level = xormlog.LOG_DEBUG
	case logger.Enabled(ctx, slog.LevelInfo):
		bridge.level = xormlog.LOG_INFO
	case logger.Enabled(ctx, slog.LevelWarn):
		bridge.level = xormlog.LOG_WARNING
	case logger.Enabled(ctx, slog.LevelError):
		bridge.level = xormlog.LOG_ERR
	}
	return bridge
}

func (l *XORMLogBridge) log(level xormlog.LogLevel, slogLevel slog.Level, msg string) {
	if l.level <= level {
		l.logger.Log(context.Background(), slogLevel, msg, "from", "xorm")
	}
}

func (l *XORMLogBridge) Debug(v ...any) { l.log(xormlog.LOG_DEBUG, slog.LevelDebug, fmt.Sprint(v...)) }
func (l *XORMLogBridge) Info(v ...any)  { l.log(xormlog.LOG_INFO, slog.LevelInfo, fmt.Sprint(v...)) }
func (l *XORMLogBridge) Warn(v ...any)  { l.log(xormlog.LOG_WARNING, slog.LevelWarn, fmt.Sprint(v...)) }
func (l *XORMLogBridge) Error(v ...any) { l.log(xormlog.LOG_ERR, slog.LevelError, fmt.Sprint(v...)) }

func (l *XORMLogBridge) Debugf(format string, v ...any) {
	l.log(xormlog.LOG_DEBUG, slog.LevelDebug, fmt.Sprintf(format, v...))
}
func (l *XORMLogBridge) Infof(format string, v ...any) {
	l.log(xormlog.LOG_INFO, slog.LevelInfo, fmt.Sprintf(format, v...))
}
func (l *XORMLogBridge) Warnf(format string, v ...any) {
	l.log(xormlog.LOG_WARNING, slog.LevelWarn, fmt.Sprintf(format, v...))
}
func (l *XORMLogBridge) Errorf(format string, v ...any) {
	l.log(xormlog.LOG_ERR, slog.LevelError, fmt.Sprintf(format, v...))
}

func (l *XORMLogBridge) Level() xormlog.LogLevel         { return l.level }
func (l *XORMLogBridge) SetLevel(level xormlog.LogLevel) { l.level = level }
func (l *XORMLogBridge) IsShowSQL() bool                 { return l.showSQL }

func (l *XORMLogBridge) ShowSQL(show ...bool) {
	if len(show) == 0 {
		l.showSQL = true
		return
	}
	l.showSQL = show[0]
}
