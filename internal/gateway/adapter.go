package gateway

import (
	"context"
	"errors"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/diamondburned/arikawa/v3/gateway"
	"go.uber.org/zap"

	"github.com/sushiibot/sushii-interactions/internal/interaction"
	"github.com/sushiibot/sushii-interactions/internal/metrics"
)

// AMQP message results.
const (
	resultDispatched = "dispatched"
	resultIgnored    = "ignored"
	resultMalformed  = "malformed"
	resultDropped    = "dropped"
)

// Dispatcher handles a single decoded interaction.
type Dispatcher interface {
	Dispatch(ctx context.Context, in *interaction.Interaction)
}

// Adapter feeds interactions from AMQP messages or gateway events into a
// Dispatcher. Each interaction is dispatched on its own goroutine.
type Adapter struct {
	dispatcher Dispatcher
	ctx        context.Context
	cancel     context.CancelFunc

	// mu guards closed and every wg.Add so none can race wg.Wait.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup

	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewAdapter creates an Adapter. m may be nil.
func NewAdapter(dispatcher Dispatcher, m *metrics.Metrics, logger *zap.Logger) *Adapter {
	ctx, cancel := context.WithCancel(context.Background())

	return &Adapter{
		dispatcher: dispatcher,
		ctx:        ctx,
		cancel:     cancel,
		metrics:    m,
		logger:     logger.Named("gateway"),
	}
}

// HandleMessage is the watermill handler for the interaction queue. It always
// returns nil so the message is acked on receipt: a redelivered interaction
// would be past Discord's response window anyway.
func (a *Adapter) HandleMessage(msg *message.Message) error {
	in, err := DecodeEnvelope(msg.Payload)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotInteraction):
		a.logger.Debug("Ignoring non-interaction message", zap.String("messageID", msg.UUID), zap.Error(err))
		a.record(resultIgnored)

		return nil
	default:
		a.logger.Error("Dropping malformed message", zap.String("messageID", msg.UUID), zap.Error(err))
		a.record(resultMalformed)

		return nil
	}

	if !a.dispatch(in) {
		a.record(resultDropped)

		return nil
	}
	a.record(resultDispatched)

	return nil
}

// HandleGatewayEvent dispatches an interaction received directly from the
// Discord gateway.
func (a *Adapter) HandleGatewayEvent(e *gateway.InteractionCreateEvent) {
	in, err := interaction.FromGatewayEvent(e)
	if err != nil {
		a.logger.Error("Failed to convert gateway interaction", zap.Stringer("interactionID", e.ID), zap.Error(err))

		return
	}

	a.dispatch(in)
}

// dispatch reports false when the adapter is already draining.
func (a *Adapter) dispatch(in *interaction.Interaction) bool {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.logger.Warn("Dropping interaction received during shutdown",
			zap.Stringer("interactionID", in.ID),
			zap.String("key", in.Key()),
		)

		return false
	}
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()
		a.dispatcher.Dispatch(a.ctx, in)
	}()

	return true
}

// Wait stops accepting new interactions and blocks until every in-flight
// dispatch has finished. When ctx is done first, the remaining dispatches are
// cancelled and ctx's error is returned.
func (a *Adapter) Wait(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		a.cancel()

		return ctx.Err()
	}
}

func (a *Adapter) record(result string) {
	if a.metrics != nil {
		a.metrics.RecordAMQPMessage(result)
	}
}
