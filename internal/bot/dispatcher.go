package bot

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/commands"
	"github.com/sushiibot/sushii-interactions/internal/interaction"
	"github.com/sushiibot/sushii-interactions/internal/metrics"
)

const (
	errorReply     = "uh oh something broke"
	timeoutReply   = "uh oh that took too long, try again in a bit"
	guildOnlyReply = "This command can only be used in servers."

	// replyTimeout bounds the error reply sent after a handler failed.
	replyTimeout = 5 * time.Second
)

// ErrDispatchTimeout is returned when a handler does not finish before the
// dispatch deadline.
var ErrDispatchTimeout = errors.New("dispatch timed out")

// CheckFailedError is returned when a command's pre-check did not pass.
type CheckFailedError struct {
	Message string
}

func (e *CheckFailedError) Error() string {
	return "check failed: " + e.Message
}

// PanicError wraps a value recovered from a panicking handler.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}

// Dispatcher routes interactions to their registered handlers.
type Dispatcher struct {
	registry *commands.Registry
	deps     *commands.Deps
	timeout  time.Duration
	metrics  *metrics.Metrics
	hub      *sentry.Hub
	logger   *zap.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithMetrics records dispatch outcomes in m.
func WithMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithSentryHub reports handler failures to hub instead of the current hub.
func WithSentryHub(hub *sentry.Hub) DispatcherOption {
	return func(d *Dispatcher) { d.hub = hub }
}

// NewDispatcher creates a Dispatcher. A non-positive timeout disables the
// dispatch deadline.
func NewDispatcher(registry *commands.Registry, deps *commands.Deps, timeout time.Duration, logger *zap.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		deps:     deps,
		timeout:  timeout,
		hub:      sentry.CurrentHub(),
		logger:   logger.Named("dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Dispatch handles a single interaction. It never returns an error and never
// panics: failures are logged, reported and answered with a generic reply.
func (d *Dispatcher) Dispatch(ctx context.Context, in *interaction.Interaction) {
	start := time.Now()
	kind := in.Kind()

	logger := d.logger.With(
		zap.String("dispatchID", uuid.NewString()),
		zap.Stringer("interactionID", in.ID),
		zap.String("kind", kind),
		zap.String("handler", in.Key()),
	)

	outcome := d.dispatch(ctx, logger, in, kind)

	if d.metrics != nil {
		d.metrics.RecordDispatch(kind, outcome, time.Since(start).Seconds())
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, logger *zap.Logger, in *interaction.Interaction, kind string) string {
	var run func(context.Context) error

	switch kind {
	case interaction.KindCommand:
		cmd, ok := d.registry.Command(in.Data.Name)
		if !ok {
			logger.Error("Received unknown command")

			return metrics.OutcomeNotFound
		}
		run = func(ctx context.Context) error { return d.runCommand(ctx, cmd, in) }
	case interaction.KindButton:
		button, ok := d.registry.Button(in.Data.CustomID)
		if !ok {
			logger.Error("Received unknown button")

			return metrics.OutcomeNotFound
		}
		run = func(ctx context.Context) error { return button.HandleButton(ctx, d.deps, in) }
	case interaction.KindModal:
		modal, ok := d.registry.Modal(in.Data.CustomID)
		if !ok {
			logger.Error("Received unknown modal submit")

			return metrics.OutcomeNotFound
		}
		run = func(ctx context.Context) error { return modal.HandleModal(ctx, d.deps, in) }
	default:
		logger.Debug("Ignoring unhandled interaction",
			zap.Int("type", int(in.Type)),
			zap.Int("commandType", int(in.Data.CommandType)),
		)

		return metrics.OutcomeIgnored
	}

	logger.Info("Received interaction")

	err := d.invoke(ctx, run)

	var checkErr *CheckFailedError
	var panicErr *PanicError

	switch {
	case err == nil:
		logger.Debug("Handled interaction")

		return metrics.OutcomeSuccess
	case errors.As(err, &checkErr):
		logger.Info("Interaction failed check", zap.String("message", checkErr.Message))
		d.reply(ctx, logger, in, checkErr.Message)

		return metrics.OutcomeCheckFailed
	case errors.Is(err, ErrDispatchTimeout):
		logger.Error("Interaction handler timed out", zap.Duration("timeout", d.timeout), zap.Error(err))
		d.report(in, kind, err)
		d.reply(ctx, logger, in, timeoutReply)

		return metrics.OutcomeTimeout
	case errors.As(err, &panicErr):
		logger.Error("Interaction handler panicked",
			zap.Any("panic", panicErr.Value),
			zap.ByteString("stack", panicErr.Stack),
		)
		d.report(in, kind, err)
		d.reply(ctx, logger, in, errorReply)

		return metrics.OutcomePanic
	default:
		logger.Error("Interaction handler failed", zap.Error(err))
		d.report(in, kind, err)
		d.reply(ctx, logger, in, errorReply)

		return metrics.OutcomeError
	}
}

func (d *Dispatcher) runCommand(ctx context.Context, cmd commands.Command, in *interaction.Interaction) error {
	if commands.IsGuildOnly(cmd) && !in.IsGuild() {
		return &CheckFailedError{Message: guildOnlyReply}
	}

	if checker, ok := cmd.(commands.Checker); ok {
		res, err := checker.Check(ctx, d.deps, in)
		if err != nil {
			return fmt.Errorf("check errored: %w", err)
		}
		if !res.OK {
			return &CheckFailedError{Message: res.Message}
		}
	}

	return cmd.Execute(ctx, d.deps, in)
}

// invoke runs fn under the dispatch deadline and converts a panic into a
// *PanicError.
func (d *Dispatcher) invoke(ctx context.Context, fn func(context.Context) error) (err error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	err = fn(ctx)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrDispatchTimeout, err)
	}

	return err
}

// reply sends a best-effort plain text response. The dispatch context may
// already be past its deadline, so the reply gets its own.
func (d *Dispatcher) reply(ctx context.Context, logger *zap.Logger, in *interaction.Interaction, content string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), replyTimeout)
	defer cancel()

	if err := commands.ReplyText(ctx, d.deps, in, content); err != nil {
		logger.Warn("Failed to send reply", zap.Error(err))
	}
}

func (d *Dispatcher) report(in *interaction.Interaction, kind string, err error) {
	// Dispatches run concurrently, each gets its own scope.
	hub := d.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("kind", kind)
		scope.SetTag("handler", in.Key())
		scope.SetTag("interaction_id", in.ID.String())
		if in.GuildID != 0 {
			scope.SetTag("guild_id", in.GuildID.String())
		}
		if user := in.Sender(); user != nil {
			scope.SetUser(sentry.User{ID: user.ID.String(), Username: user.Username})
		}
	})
	hub.CaptureException(err)
}
