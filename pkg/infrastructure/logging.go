// Package infrastructure adapts zap to the logging interfaces of the
// frameworks the service is built on.
package infrastructure

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// FxLoggerAdapter logs Fx events and prints through zap.
type FxLoggerAdapter struct {
	logger *zap.Logger
}

// NewFxLoggerAdapter creates an fxevent.Logger backed by logger.
func NewFxLoggerAdapter(logger *zap.Logger) fxevent.Logger {
	return &FxLoggerAdapter{logger: logger.Named("fx")}
}

// NewFxPrinter creates an fx.Printer backed by logger.
func NewFxPrinter(logger *zap.Logger) fx.Printer {
	return &FxLoggerAdapter{logger: logger.Named("fx")}
}

// LogEvent implements fxevent.Logger. Routine wiring events go to debug,
// lifecycle milestones to info and failures to error.
func (p *FxLoggerAdapter) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		p.logger.Debug("OnStart hook executing", zap.String("callee", e.FunctionName), zap.String("caller", e.CallerName))
	case *fxevent.OnStartExecuted:
		p.hookExecuted("OnStart", e.FunctionName, e.CallerName, e.Runtime.String(), e.Err)
	case *fxevent.OnStopExecuting:
		p.logger.Debug("OnStop hook executing", zap.String("callee", e.FunctionName), zap.String("caller", e.CallerName))
	case *fxevent.OnStopExecuted:
		p.hookExecuted("OnStop", e.FunctionName, e.CallerName, e.Runtime.String(), e.Err)
	case *fxevent.Supplied:
		p.withError(e.Err, "Supplied", zap.String("type", e.TypeName), zap.String("module", e.ModuleName))
	case *fxevent.Provided:
		p.withError(e.Err, "Provided",
			zap.String("constructor", e.ConstructorName),
			zap.Strings("types", e.OutputTypeNames),
			zap.String("module", e.ModuleName),
		)
	case *fxevent.Decorated:
		p.withError(e.Err, "Decorated", zap.String("decorator", e.DecoratorName), zap.Strings("types", e.OutputTypeNames))
	case *fxevent.Invoking:
		p.logger.Debug("Invoking", zap.String("function", e.FunctionName), zap.String("module", e.ModuleName))
	case *fxevent.Invoked:
		p.withError(e.Err, "Invoked", zap.String("function", e.FunctionName), zap.String("module", e.ModuleName))
	case *fxevent.Stopping:
		p.logger.Info("Received signal", zap.String("signal", e.Signal.String()))
	case *fxevent.Stopped:
		p.milestone("Stopped", e.Err)
	case *fxevent.RollingBack:
		p.logger.Error("Start failed, rolling back", zap.Error(e.StartErr))
	case *fxevent.RolledBack:
		p.milestone("Rolled back", e.Err)
	case *fxevent.Started:
		p.milestone("Started", e.Err)
	case *fxevent.LoggerInitialized:
		p.withError(e.Err, "Logger initialized", zap.String("constructor", e.ConstructorName))
	default:
		p.logger.Debug("Unhandled Fx event", zap.String("event", fmt.Sprintf("%T", event)))
	}
}

// Printf implements fx.Printer.
func (p *FxLoggerAdapter) Printf(format string, args ...any) {
	p.logger.Sugar().Infof(format, args...)
}

func (p *FxLoggerAdapter) hookExecuted(hook, callee, caller, runtime string, err error) {
	fields := []zap.Field{zap.String("callee", callee), zap.String("caller", caller)}
	if err != nil {
		p.logger.Error(hook+" hook failed", append(fields, zap.Error(err))...)

		return
	}

	p.logger.Debug(hook+" hook executed", append(fields, zap.String("runtime", runtime))...)
}

// withError logs msg at debug level, or at error level when err is set.
func (p *FxLoggerAdapter) withError(err error, msg string, fields ...zap.Field) {
	if err != nil {
		p.logger.Error(msg+" with error", append(fields, zap.Error(err))...)

		return
	}

	p.logger.Debug(msg, fields...)
}

func (p *FxLoggerAdapter) milestone(msg string, err error) {
	if err != nil {
		p.logger.Error(msg+" with error", zap.Error(err))

		return
	}

	p.logger.Info(msg)
}
